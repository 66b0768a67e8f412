package application

import (
	"context"
	"errors"

	"github.com/conduitapp/conduit-api/internal/domain/entity"
	"github.com/conduitapp/conduit-api/internal/domain/repository"
	"github.com/conduitapp/conduit-api/pkg/apperror"
)

// CommentService implements listing, creating and deleting comments scoped to
// an article slug.
type CommentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	follows  repository.FollowRepository
}

func NewCommentService(
	comments repository.CommentRepository,
	articles repository.ArticleRepository,
	follows repository.FollowRepository,
) *CommentService {
	return &CommentService{comments: comments, articles: articles, follows: follows}
}

type CreateCommentInput struct {
	Body string `json:"body" binding:"required,min=1"`
}

func (s *CommentService) articleBySlug(ctx context.Context, slug string) (*entity.ArticleWithData, error) {
	a, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("article")
		}
		return nil, err
	}
	return a, nil
}

// List returns the article's comments newest first, with the author's
// following flag resolved for the viewer in one batched lookup.
func (s *CommentService) List(ctx context.Context, viewerID, slug string) (*CommentsResponse, error) {
	a, err := s.articleBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	rows, err := s.comments.ListByArticle(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	e := &Enrichment{ViewerID: viewerID, ViewerFollows: map[string]bool{}}
	if viewerID != "" && len(rows) > 0 {
		authorIDs := make([]string, 0, len(rows))
		seen := make(map[string]struct{}, len(rows))
		for i := range rows {
			id := rows[i].Author.ID
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			authorIDs = append(authorIDs, id)
		}
		set, err := s.follows.FollowedSet(ctx, viewerID, authorIDs)
		if err != nil {
			return nil, err
		}
		e.ViewerFollows = set
	}

	views := make([]CommentView, 0, len(rows))
	for i := range rows {
		views = append(views, e.CommentView(&rows[i]))
	}
	return &CommentsResponse{Comments: views}, nil
}

// Create adds a comment by the viewer to the article behind slug.
func (s *CommentService) Create(ctx context.Context, viewerID, slug string, in CreateCommentInput) (*SingleCommentResponse, error) {
	a, err := s.articleBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	c := &entity.Comment{
		Body:      in.Body,
		ArticleID: a.ID,
		AuthorID:  viewerID,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	created, err := s.comments.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	// The viewer authored the comment, so following is false by definition.
	e := &Enrichment{ViewerID: viewerID}
	return &SingleCommentResponse{Comment: e.CommentView(created)}, nil
}

// Delete removes the viewer's own comment. The comment must belong to the
// article named by slug; a mismatch reads as a missing comment.
func (s *CommentService) Delete(ctx context.Context, viewerID, slug, commentID string) error {
	a, err := s.articleBySlug(ctx, slug)
	if err != nil {
		return err
	}

	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("comment")
		}
		return err
	}
	if c.ArticleID != a.ID {
		return apperror.NotFound("comment")
	}
	if c.AuthorID != viewerID {
		return apperror.Forbidden("comment", "you can only delete your own comments")
	}
	return s.comments.Delete(ctx, commentID)
}
