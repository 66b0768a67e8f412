package application

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduitapp/conduit-api/pkg/apperror"
)

func TestListByUnknownAuthorReturnsEmptyPage(t *testing.T) {
	env := newTestEnv()
	author := env.db.addUser("jane")
	ctx := context.Background()

	_, err := env.articles.Create(ctx, author.ID, CreateArticleInput{
		Title: "One", Description: "d", Body: "b",
	})
	require.NoError(t, err)

	res, err := env.articles.List(ctx, "", ListArticlesQuery{Author: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, res.Articles)
	assert.Equal(t, 0, res.ArticlesCount)
}

func TestListByUnknownTagReturnsEmptyPage(t *testing.T) {
	env := newTestEnv()
	author := env.db.addUser("jane")
	ctx := context.Background()

	_, err := env.articles.Create(ctx, author.ID, CreateArticleInput{
		Title: "One", Description: "d", Body: "b", TagList: []string{"go"},
	})
	require.NoError(t, err)

	res, err := env.articles.List(ctx, "", ListArticlesQuery{Tag: "rust"})
	require.NoError(t, err)
	assert.Empty(t, res.Articles)
}

func TestListFiltersByTag(t *testing.T) {
	env := newTestEnv()
	author := env.db.addUser("jane")
	ctx := context.Background()

	_, err := env.articles.Create(ctx, author.ID, CreateArticleInput{
		Title: "Go Post", Description: "d", Body: "b", TagList: []string{"go"},
	})
	require.NoError(t, err)
	_, err = env.articles.Create(ctx, author.ID, CreateArticleInput{
		Title: "Web Post", Description: "d", Body: "b", TagList: []string{"web"},
	})
	require.NoError(t, err)

	res, err := env.articles.List(ctx, "", ListArticlesQuery{Tag: "go"})
	require.NoError(t, err)
	require.Len(t, res.Articles, 1)
	assert.Equal(t, "go-post", res.Articles[0].Slug)
}

func TestListNewestFirst(t *testing.T) {
	env := newTestEnv()
	author := env.db.addUser("jane")
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		_, err := env.articles.Create(ctx, author.ID, CreateArticleInput{
			Title: title, Description: "d", Body: "b",
		})
		require.NoError(t, err)
	}

	res, err := env.articles.List(ctx, "", ListArticlesQuery{})
	require.NoError(t, err)
	require.Len(t, res.Articles, 3)
	assert.Equal(t, "third", res.Articles[0].Slug)
	assert.Equal(t, "second", res.Articles[1].Slug)
	assert.Equal(t, "first", res.Articles[2].Slug)
}

func TestFeedOnlyFollowedAuthors(t *testing.T) {
	env := newTestEnv()
	jane := env.db.addUser("jane")
	bob := env.db.addUser("bob")
	viewer := env.db.addUser("viewer")
	ctx := context.Background()

	_, err := env.articles.Create(ctx, jane.ID, CreateArticleInput{
		Title: "By Jane", Description: "d", Body: "b",
	})
	require.NoError(t, err)
	_, err = env.articles.Create(ctx, bob.ID, CreateArticleInput{
		Title: "By Bob", Description: "d", Body: "b",
	})
	require.NoError(t, err)

	// following nobody: empty feed
	res, err := env.articles.Feed(ctx, viewer.ID, FeedQuery{})
	require.NoError(t, err)
	assert.Empty(t, res.Articles)

	_, err = env.profiles.Follow(ctx, viewer.ID, "jane")
	require.NoError(t, err)

	res, err = env.articles.Feed(ctx, viewer.ID, FeedQuery{})
	require.NoError(t, err)
	require.Len(t, res.Articles, 1)
	assert.Equal(t, "by-jane", res.Articles[0].Slug)
	assert.True(t, res.Articles[0].Author.Following)
}

func TestFavoriteIsIdempotent(t *testing.T) {
	env := newTestEnv()
	author := env.db.addUser("jane")
	viewer := env.db.addUser("viewer")
	ctx := context.Background()

	created, err := env.articles.Create(ctx, author.ID, CreateArticleInput{
		Title: "Fav Me", Description: "d", Body: "b",
	})
	require.NoError(t, err)

	res, err := env.articles.Favorite(ctx, viewer.ID, created.Article.Slug)
	require.NoError(t, err)
	assert.True(t, res.Article.Favorited)
	assert.Equal(t, 1, res.Article.FavoritesCount)

	res, err = env.articles.Favorite(ctx, viewer.ID, created.Article.Slug)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Article.FavoritesCount)

	res, err = env.articles.Unfavorite(ctx, viewer.ID, created.Article.Slug)
	require.NoError(t, err)
	assert.False(t, res.Article.Favorited)
	assert.Equal(t, 0, res.Article.FavoritesCount)

	// unfavoriting again stays at zero
	res, err = env.articles.Unfavorite(ctx, viewer.ID, created.Article.Slug)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Article.FavoritesCount)
}

func TestUpdateRejectsNonAuthor(t *testing.T) {
	env := newTestEnv()
	author := env.db.addUser("jane")
	other := env.db.addUser("bob")
	ctx := context.Background()

	created, err := env.articles.Create(ctx, author.ID, CreateArticleInput{
		Title: "Mine", Description: "d", Body: "b",
	})
	require.NoError(t, err)

	title := "Stolen"
	_, err = env.articles.Update(ctx, other.ID, created.Article.Slug, UpdateArticleInput{Title: &title})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.Status)

	err = env.articles.Delete(ctx, other.ID, created.Article.Slug)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.Status)
}

func TestCreateNormalizesTagList(t *testing.T) {
	env := newTestEnv()
	author := env.db.addUser("jane")
	ctx := context.Background()

	created, err := env.articles.Create(ctx, author.ID, CreateArticleInput{
		Title: "Tag Soup", Description: "d", Body: "b", TagList: []string{"b", "a", "a"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, created.Article.TagList)

	fetched, err := env.articles.Get(ctx, "", created.Article.Slug)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, fetched.Article.TagList)
}

func TestUpdateTagListReplacement(t *testing.T) {
	env := newTestEnv()
	author := env.db.addUser("jane")
	ctx := context.Background()

	created, err := env.articles.Create(ctx, author.ID, CreateArticleInput{
		Title: "Tagged", Description: "d", Body: "b", TagList: []string{"old", "keep"},
	})
	require.NoError(t, err)

	// nil TagList leaves tags untouched
	desc := "new description"
	updated, err := env.articles.Update(ctx, author.ID, created.Article.Slug, UpdateArticleInput{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep", "old"}, updated.Article.TagList)

	// explicit TagList replaces the set
	tags := []string{"fresh"}
	updated, err = env.articles.Update(ctx, author.ID, created.Article.Slug, UpdateArticleInput{TagList: &tags})
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, updated.Article.TagList)

	// unlinked tags keep their rows
	assert.Contains(t, env.db.tagIDByName, "old")
	assert.Contains(t, env.db.tagIDByName, "keep")

	// empty TagList clears it
	empty := []string{}
	updated, err = env.articles.Update(ctx, author.ID, created.Article.Slug, UpdateArticleInput{TagList: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Article.TagList)
}

func TestUpdateTitleRecomputesSlug(t *testing.T) {
	env := newTestEnv()
	author := env.db.addUser("jane")
	ctx := context.Background()

	created, err := env.articles.Create(ctx, author.ID, CreateArticleInput{
		Title: "Old Title", Description: "d", Body: "b",
	})
	require.NoError(t, err)

	title := "New Title"
	updated, err := env.articles.Update(ctx, author.ID, created.Article.Slug, UpdateArticleInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new-title", updated.Article.Slug)

	// the old slug no longer resolves
	_, err = env.articles.Get(ctx, "", created.Article.Slug)
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestGetUnknownSlugIsNotFound(t *testing.T) {
	env := newTestEnv()
	_, err := env.articles.Get(context.Background(), "", "missing")
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, []string{"not found"}, appErr.Fields["article"])
}

func TestListPaginationLimits(t *testing.T) {
	env := newTestEnv()
	author := env.db.addUser("jane")
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		_, err := env.articles.Create(ctx, author.ID, CreateArticleInput{
			Title: title, Description: "d", Body: "b",
		})
		require.NoError(t, err)
	}

	res, err := env.articles.List(ctx, "", ListArticlesQuery{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, res.Articles, 2)

	res, err = env.articles.List(ctx, "", ListArticlesQuery{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, res.Articles, 1)
}
