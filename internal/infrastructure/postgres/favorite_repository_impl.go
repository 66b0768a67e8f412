package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conduitapp/conduit-api/internal/domain/repository"
)

type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, articleID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO favorites (user_id, article_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, articleID)
	return err
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, articleID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM favorites WHERE user_id = $1 AND article_id = $2
	`, userID, articleID)
	return err
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, articleID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM favorites WHERE user_id = $1 AND article_id = $2
		)
	`, userID, articleID).Scan(&exists)
	return exists, err
}

func (r *FavoriteRepository) Count(ctx context.Context, articleID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM favorites WHERE article_id = $1
	`, articleID).Scan(&count)
	return count, err
}

func (r *FavoriteRepository) CountByArticle(ctx context.Context, articleIDs []string) (map[string]int, error) {
	if len(articleIDs) == 0 {
		return map[string]int{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT article_id, count(*) FROM favorites
		WHERE article_id = ANY($1::uuid[])
		GROUP BY article_id
	`, articleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int, len(articleIDs))
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

func (r *FavoriteRepository) FavoritedSet(ctx context.Context, userID string, articleIDs []string) (map[string]bool, error) {
	if len(articleIDs) == 0 {
		return map[string]bool{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT article_id FROM favorites
		WHERE user_id = $1 AND article_id = ANY($2::uuid[])
	`, userID, articleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]bool, len(articleIDs))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		set[id] = true
	}
	return set, rows.Err()
}

var _ repository.FavoriteRepository = (*FavoriteRepository)(nil)
