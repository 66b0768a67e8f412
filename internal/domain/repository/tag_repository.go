package repository

import (
	"context"

	"github.com/conduitapp/conduit-api/internal/domain/entity"
)

// TagRepository manages tag rows and article-tag links.
type TagRepository interface {
	ListNames(ctx context.Context) ([]string, error)
	GetByName(ctx context.Context, name string) (*entity.Tag, error)
	// Ensure creates any missing tags and returns the rows for every name.
	// Concurrent duplicate creates resolve to the existing row, never an error.
	Ensure(ctx context.Context, names []string) ([]entity.Tag, error)
	// ReplaceArticleTags atomically relinks the article to exactly the given
	// names: ensure tags exist, drop current links, insert fresh ones.
	ReplaceArticleTags(ctx context.Context, articleID string, names []string) error
}
