package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"My Day in SF!", "my-day-in-sf"},
		{"Hello, World!", "hello-world"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"multiple   spaces", "multiple-spaces"},
		{"already-hyphenated title", "already-hyphenated-title"},
		{"--- ---", ""},
		{"CamelCase Title 42", "camelcase-title-42"},
		{"¿Qué tal? Ünïcode", "qu-tal-ncode"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.title), "title %q", tc.title)
	}
}

func TestUniqueSlugDisambiguatesCollisions(t *testing.T) {
	env := newTestEnv()
	author := env.db.addUser("jane")
	ctx := context.Background()

	first, err := env.articles.Create(ctx, author.ID, CreateArticleInput{
		Title: "My Day", Description: "d", Body: "b",
	})
	require.NoError(t, err)
	assert.Equal(t, "my-day", first.Article.Slug)

	second, err := env.articles.Create(ctx, author.ID, CreateArticleInput{
		Title: "My Day", Description: "d", Body: "b",
	})
	require.NoError(t, err)
	assert.Equal(t, "my-day-1", second.Article.Slug)

	third, err := env.articles.Create(ctx, author.ID, CreateArticleInput{
		Title: "My Day", Description: "d", Body: "b",
	})
	require.NoError(t, err)
	assert.Equal(t, "my-day-2", third.Article.Slug)
}

func TestUpdateKeepsSlugWhenTitleUnchanged(t *testing.T) {
	env := newTestEnv()
	author := env.db.addUser("jane")
	ctx := context.Background()

	created, err := env.articles.Create(ctx, author.ID, CreateArticleInput{
		Title: "Stable Title", Description: "d", Body: "b",
	})
	require.NoError(t, err)

	body := "new body"
	updated, err := env.articles.Update(ctx, author.ID, created.Article.Slug, UpdateArticleInput{Body: &body})
	require.NoError(t, err)
	assert.Equal(t, created.Article.Slug, updated.Article.Slug)
	assert.Equal(t, "new body", updated.Article.Body)
}
