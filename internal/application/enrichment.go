package application

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/conduitapp/conduit-api/internal/domain/entity"
	"github.com/conduitapp/conduit-api/internal/domain/repository"
)

// Enrichment holds the viewer-relative relation sets an article or comment
// view is assembled from. Its view builders are pure over these inputs: an
// anonymous viewer (empty ViewerID) always yields favorited=false and
// following=false, and an author never appears followed by themselves even if
// an inconsistent self-edge exists in storage.
type Enrichment struct {
	ViewerID        string
	FavoritesCounts map[string]int  // favorite row counts keyed by article id
	ViewerFavorites map[string]bool // article ids the viewer has favorited
	ViewerFollows   map[string]bool // author ids the viewer follows
}

func (e *Enrichment) favorited(articleID string) bool {
	return e.ViewerID != "" && e.ViewerFavorites[articleID]
}

func (e *Enrichment) following(authorID string) bool {
	if e.ViewerID == "" || e.ViewerID == authorID {
		return false
	}
	return e.ViewerFollows[authorID]
}

func (e *Enrichment) author(u *entity.User) Author {
	return Author{
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Following: e.following(u.ID),
	}
}

// ArticleView assembles the full, viewer-relative article representation.
func (e *Enrichment) ArticleView(a *entity.ArticleWithData) ArticleView {
	return ArticleView{
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		Body:           a.Body,
		TagList:        normalizeTagList(a.TagList),
		CreatedAt:      isoTime(a.CreatedAt),
		UpdatedAt:      isoTime(a.UpdatedAt),
		Favorited:      e.favorited(a.ID),
		FavoritesCount: e.FavoritesCounts[a.ID],
		Author:         e.author(&a.Author),
	}
}

// ArticleListItem is ArticleView without the body.
func (e *Enrichment) ArticleListItem(a *entity.ArticleWithData) ArticleListItem {
	return ArticleListItem{
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		TagList:        normalizeTagList(a.TagList),
		CreatedAt:      isoTime(a.CreatedAt),
		UpdatedAt:      isoTime(a.UpdatedAt),
		Favorited:      e.favorited(a.ID),
		FavoritesCount: e.FavoritesCounts[a.ID],
		Author:         e.author(&a.Author),
	}
}

// CommentView assembles the viewer-relative comment representation.
func (e *Enrichment) CommentView(c *entity.CommentWithAuthor) CommentView {
	return CommentView{
		ID:        c.ID,
		CreatedAt: isoTime(c.CreatedAt),
		UpdatedAt: isoTime(c.UpdatedAt),
		Body:      c.Body,
		Author:    e.author(&c.Author),
	}
}

// normalizeTagList returns the names sorted ascending with duplicates
// collapsed. The storage layer already delivers them this way; views hold the
// invariant regardless of the source.
func normalizeTagList(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// loadArticleEnrichment batch-fetches the three independent relation sets for
// a page of articles: grouped favorite counts, the viewer's favorites among
// the candidates, and the viewer's follow edges among the candidate authors.
// The reads are independent, so they run concurrently and are joined here.
func loadArticleEnrichment(
	ctx context.Context,
	favorites repository.FavoriteRepository,
	follows repository.FollowRepository,
	viewerID string,
	articles []entity.ArticleWithData,
) (*Enrichment, error) {
	articleIDs := make([]string, 0, len(articles))
	authorIDs := make([]string, 0, len(articles))
	seenAuthors := make(map[string]struct{}, len(articles))
	for i := range articles {
		articleIDs = append(articleIDs, articles[i].ID)
		if _, ok := seenAuthors[articles[i].Author.ID]; !ok {
			seenAuthors[articles[i].Author.ID] = struct{}{}
			authorIDs = append(authorIDs, articles[i].Author.ID)
		}
	}

	e := &Enrichment{
		ViewerID:        viewerID,
		FavoritesCounts: map[string]int{},
		ViewerFavorites: map[string]bool{},
		ViewerFollows:   map[string]bool{},
	}
	if len(articles) == 0 {
		return e, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := favorites.CountByArticle(gctx, articleIDs)
		if err != nil {
			return err
		}
		e.FavoritesCounts = counts
		return nil
	})
	if viewerID != "" {
		g.Go(func() error {
			set, err := favorites.FavoritedSet(gctx, viewerID, articleIDs)
			if err != nil {
				return err
			}
			e.ViewerFavorites = set
			return nil
		})
		g.Go(func() error {
			set, err := follows.FollowedSet(gctx, viewerID, authorIDs)
			if err != nil {
				return err
			}
			e.ViewerFollows = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return e, nil
}

// loadSingleArticleEnrichment fetches the relation state for one article with
// point queries, concurrently like the batched variant.
func loadSingleArticleEnrichment(
	ctx context.Context,
	favorites repository.FavoriteRepository,
	follows repository.FollowRepository,
	viewerID string,
	a *entity.ArticleWithData,
) (*Enrichment, error) {
	e := &Enrichment{
		ViewerID:        viewerID,
		FavoritesCounts: map[string]int{},
		ViewerFavorites: map[string]bool{},
		ViewerFollows:   map[string]bool{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := favorites.Count(gctx, a.ID)
		if err != nil {
			return err
		}
		e.FavoritesCounts[a.ID] = count
		return nil
	})
	if viewerID != "" {
		g.Go(func() error {
			ok, err := favorites.Exists(gctx, viewerID, a.ID)
			if err != nil {
				return err
			}
			e.ViewerFavorites[a.ID] = ok
			return nil
		})
		if viewerID != a.Author.ID {
			g.Go(func() error {
				ok, err := follows.Exists(gctx, viewerID, a.Author.ID)
				if err != nil {
					return err
				}
				e.ViewerFollows[a.Author.ID] = ok
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return e, nil
}
