package repository

import (
	"context"

	"github.com/conduitapp/conduit-api/internal/domain/entity"
)

// ArticleFilter is resolved once per request from the raw query parameters
// (tag/author/favorited usernames resolved to ids) and then passed to a single
// List query. All set fields are AND'd.
type ArticleFilter struct {
	AuthorID    string   // only articles by this author
	FavoritedBy string   // only articles favorited by this user id
	TagID       string   // only articles linked to this tag
	AuthorIDs   []string // feed: only articles by these authors
	Limit       int
	Offset      int
}

// ArticleRepository loads and mutates articles together with their author and
// tag names. Ordering is created_at descending with id as the stable tiebreak.
type ArticleRepository interface {
	Create(ctx context.Context, a *entity.Article, tagNames []string) error
	GetBySlug(ctx context.Context, slug string) (*entity.ArticleWithData, error)
	GetByID(ctx context.Context, id string) (*entity.ArticleWithData, error)
	List(ctx context.Context, f ArticleFilter) ([]entity.ArticleWithData, error)
	Update(ctx context.Context, a *entity.Article) error
	Delete(ctx context.Context, id string) error
	// SlugExists reports whether slug is taken by an article other than
	// excludeID. Pass an empty excludeID on create.
	SlugExists(ctx context.Context, slug string, excludeID string) (bool, error)
}
