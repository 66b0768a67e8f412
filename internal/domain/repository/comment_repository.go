package repository

import (
	"context"

	"github.com/conduitapp/conduit-api/internal/domain/entity"
)

// CommentRepository manages comments on articles.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.CommentWithAuthor, error)
	// ListByArticle returns comments with their authors, newest first.
	ListByArticle(ctx context.Context, articleID string) ([]entity.CommentWithAuthor, error)
	Delete(ctx context.Context, id string) error
}
