package application

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/conduitapp/conduit-api/internal/domain/repository"
)

var (
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	hyphenRun     = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe slug from a title: lower-case, strip anything
// outside [a-z0-9\s-], turn whitespace runs into single hyphens, collapse
// repeated hyphens, trim leading and trailing hyphens.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// uniqueSlug derives a slug from title and disambiguates collisions by
// appending -1, -2, ... until a free slug is found. excludeID keeps an
// article's own slug from counting as a collision against itself on update.
func uniqueSlug(ctx context.Context, articles repository.ArticleRepository, title, excludeID string) (string, error) {
	base := Slugify(title)
	slug := base
	for i := 1; ; i++ {
		taken, err := articles.SlugExists(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
