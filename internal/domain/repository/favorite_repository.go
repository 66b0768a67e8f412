package repository

import "context"

// FavoriteRepository manages (user, article) favorite rows. Add and Remove
// are idempotent; counts are always derived, never stored.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, articleID string) error
	Remove(ctx context.Context, userID, articleID string) error
	Exists(ctx context.Context, userID, articleID string) (bool, error)
	Count(ctx context.Context, articleID string) (int, error)
	// CountByArticle returns favorite counts grouped by article id for the
	// given candidates. Articles with zero favorites may be absent.
	CountByArticle(ctx context.Context, articleIDs []string) (map[string]int, error)
	// FavoritedSet returns, out of articleIDs, the subset favorited by userID.
	FavoritedSet(ctx context.Context, userID string, articleIDs []string) (map[string]bool, error)
}
