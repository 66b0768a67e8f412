package application

import (
	"context"
	"errors"

	"github.com/conduitapp/conduit-api/internal/domain/entity"
	"github.com/conduitapp/conduit-api/internal/domain/repository"
	"github.com/conduitapp/conduit-api/pkg/apperror"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ArticleService implements the article lifecycle plus listing, feeds and
// favorites. Every returned view is enriched relative to the viewer.
type ArticleService struct {
	articles  repository.ArticleRepository
	users     repository.UserRepository
	tags      repository.TagRepository
	favorites repository.FavoriteRepository
	follows   repository.FollowRepository
	events    EventPublisher
}

func NewArticleService(
	articles repository.ArticleRepository,
	users repository.UserRepository,
	tags repository.TagRepository,
	favorites repository.FavoriteRepository,
	follows repository.FollowRepository,
	events EventPublisher,
) *ArticleService {
	return &ArticleService{
		articles:  articles,
		users:     users,
		tags:      tags,
		favorites: favorites,
		follows:   follows,
		events:    events,
	}
}

type CreateArticleInput struct {
	Title       string   `json:"title" binding:"required,min=1,max=200"`
	Description string   `json:"description" binding:"required"`
	Body        string   `json:"body" binding:"required"`
	TagList     []string `json:"tagList" binding:"omitempty,dive,min=1,max=50"`
}

// UpdateArticleInput fields are nil when absent from the request. A nil
// TagList leaves tags unchanged; an empty one clears them.
type UpdateArticleInput struct {
	Title       *string   `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string   `json:"description" binding:"omitempty,min=1"`
	Body        *string   `json:"body" binding:"omitempty,min=1"`
	TagList     *[]string `json:"tagList" binding:"omitempty,dive,min=1,max=50"`
}

// ListArticlesQuery holds the raw query parameters of GET /api/articles.
type ListArticlesQuery struct {
	Tag       string `form:"tag"`
	Author    string `form:"author"`
	Favorited string `form:"favorited"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

type FeedQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func emptyArticles() *ArticlesResponse {
	return &ArticlesResponse{Articles: []ArticleListItem{}, ArticlesCount: 0}
}

// resolveFilter translates the raw query into id-based filter terms. A filter
// naming a nonexistent user or tag matches nothing rather than erroring, so
// the caller returns an empty page.
func (s *ArticleService) resolveFilter(ctx context.Context, q ListArticlesQuery) (repository.ArticleFilter, bool, error) {
	f := repository.ArticleFilter{}
	f.Limit, f.Offset = clampPage(q.Limit, q.Offset)

	if q.Author != "" {
		u, err := s.users.GetByUsername(ctx, q.Author)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return f, false, nil
			}
			return f, false, err
		}
		f.AuthorID = u.ID
	}
	if q.Favorited != "" {
		u, err := s.users.GetByUsername(ctx, q.Favorited)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return f, false, nil
			}
			return f, false, err
		}
		f.FavoritedBy = u.ID
	}
	if q.Tag != "" {
		t, err := s.tags.GetByName(ctx, q.Tag)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return f, false, nil
			}
			return f, false, err
		}
		f.TagID = t.ID
	}
	return f, true, nil
}

func (s *ArticleService) listPage(ctx context.Context, viewerID string, f repository.ArticleFilter) (*ArticlesResponse, error) {
	rows, err := s.articles.List(ctx, f)
	if err != nil {
		return nil, err
	}

	e, err := loadArticleEnrichment(ctx, s.favorites, s.follows, viewerID, rows)
	if err != nil {
		return nil, err
	}

	items := make([]ArticleListItem, 0, len(rows))
	for i := range rows {
		items = append(items, e.ArticleListItem(&rows[i]))
	}
	return &ArticlesResponse{Articles: items, ArticlesCount: len(items)}, nil
}

// List returns the global article page matching the query filters.
func (s *ArticleService) List(ctx context.Context, viewerID string, q ListArticlesQuery) (*ArticlesResponse, error) {
	f, ok, err := s.resolveFilter(ctx, q)
	if err != nil {
		return nil, err
	}
	if !ok {
		return emptyArticles(), nil
	}
	return s.listPage(ctx, viewerID, f)
}

// Feed returns articles authored by users the viewer follows, newest first.
// A viewer who follows nobody gets an empty page without a storage round trip.
func (s *ArticleService) Feed(ctx context.Context, viewerID string, q FeedQuery) (*ArticlesResponse, error) {
	authorIDs, err := s.follows.FollowedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(authorIDs) == 0 {
		return emptyArticles(), nil
	}

	f := repository.ArticleFilter{AuthorIDs: authorIDs}
	f.Limit, f.Offset = clampPage(q.Limit, q.Offset)
	return s.listPage(ctx, viewerID, f)
}

func (s *ArticleService) getBySlug(ctx context.Context, slug string) (*entity.ArticleWithData, error) {
	a, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("article")
		}
		return nil, err
	}
	return a, nil
}

func (s *ArticleService) singleResponse(ctx context.Context, viewerID string, a *entity.ArticleWithData) (*SingleArticleResponse, error) {
	e, err := loadSingleArticleEnrichment(ctx, s.favorites, s.follows, viewerID, a)
	if err != nil {
		return nil, err
	}
	return &SingleArticleResponse{Article: e.ArticleView(a)}, nil
}

// Get returns one article by slug, enriched for the viewer.
func (s *ArticleService) Get(ctx context.Context, viewerID, slug string) (*SingleArticleResponse, error) {
	a, err := s.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.singleResponse(ctx, viewerID, a)
}

// Create persists a new article with its tags in one transaction. Slug
// collisions against existing titles are disambiguated with a numeric suffix.
func (s *ArticleService) Create(ctx context.Context, authorID string, in CreateArticleInput) (*SingleArticleResponse, error) {
	slug, err := uniqueSlug(ctx, s.articles, in.Title, "")
	if err != nil {
		return nil, err
	}

	a := &entity.Article{
		Slug:        slug,
		Title:       in.Title,
		Description: in.Description,
		Body:        in.Body,
		AuthorID:    authorID,
	}
	if err := s.articles.Create(ctx, a, in.TagList); err != nil {
		return nil, err
	}

	created, err := s.articles.GetByID(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.events, Event{
		Type: EventArticlePublished,
		Payload: map[string]string{
			"article_id": created.ID,
			"slug":       created.Slug,
			"author_id":  created.AuthorID,
		},
	})

	// A fresh article has no favorites and its author view never shows
	// following, so the zero enrichment is exact.
	e := &Enrichment{ViewerID: authorID}
	return &SingleArticleResponse{Article: e.ArticleView(created)}, nil
}

// Update mutates title, description, body and tags. Only the author may
// update; the slug is recomputed only when the title actually changes.
func (s *ArticleService) Update(ctx context.Context, viewerID, slug string, in UpdateArticleInput) (*SingleArticleResponse, error) {
	existing, err := s.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != viewerID {
		return nil, apperror.Forbidden("article", "you can only update your own articles")
	}

	a := existing.Article
	if in.Title != nil && *in.Title != a.Title {
		a.Title = *in.Title
		a.Slug, err = uniqueSlug(ctx, s.articles, a.Title, a.ID)
		if err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		a.Description = *in.Description
	}
	if in.Body != nil {
		a.Body = *in.Body
	}

	if err := s.articles.Update(ctx, &a); err != nil {
		return nil, err
	}
	if in.TagList != nil {
		if err := s.tags.ReplaceArticleTags(ctx, a.ID, *in.TagList); err != nil {
			return nil, err
		}
	}

	updated, err := s.articles.GetByID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	return s.singleResponse(ctx, viewerID, updated)
}

// Delete removes the article; cascades drop its tags links, favorites and
// comments. Only the author may delete.
func (s *ArticleService) Delete(ctx context.Context, viewerID, slug string) error {
	existing, err := s.getBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if existing.AuthorID != viewerID {
		return apperror.Forbidden("article", "you can only delete your own articles")
	}
	return s.articles.Delete(ctx, existing.ID)
}

// Favorite marks the article as favorited by the viewer. Repeating the call
// does not change the count. The returned view reflects the state after the
// mutation.
func (s *ArticleService) Favorite(ctx context.Context, viewerID, slug string) (*SingleArticleResponse, error) {
	a, err := s.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.favorites.Add(ctx, viewerID, a.ID); err != nil {
		return nil, err
	}
	return s.singleResponse(ctx, viewerID, a)
}

// Unfavorite removes the favorite; removing a non-favorite is a no-op.
func (s *ArticleService) Unfavorite(ctx context.Context, viewerID, slug string) (*SingleArticleResponse, error) {
	a, err := s.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.favorites.Remove(ctx, viewerID, a.ID); err != nil {
		return nil, err
	}
	return s.singleResponse(ctx, viewerID, a)
}
