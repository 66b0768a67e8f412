package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conduitapp/conduit-api/internal/domain/repository"
)

type FollowRepository struct {
	pool *pgxpool.Pool
}

func NewFollowRepository(pool *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{pool: pool}
}

func (r *FollowRepository) Add(ctx context.Context, followerID, followedID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, followerID, followedID)
	return err
}

func (r *FollowRepository) Remove(ctx context.Context, followerID, followedID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2
	`, followerID, followedID)
	return err
}

func (r *FollowRepository) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2
		)
	`, followerID, followedID).Scan(&exists)
	return exists, err
}

func (r *FollowRepository) FollowedIDs(ctx context.Context, followerID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT followed_id FROM follows WHERE follower_id = $1
	`, followerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *FollowRepository) FollowedSet(ctx context.Context, followerID string, candidateIDs []string) (map[string]bool, error) {
	if len(candidateIDs) == 0 {
		return map[string]bool{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT followed_id FROM follows
		WHERE follower_id = $1 AND followed_id = ANY($2::uuid[])
	`, followerID, candidateIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]bool, len(candidateIDs))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		set[id] = true
	}
	return set, rows.Err()
}

var _ repository.FollowRepository = (*FollowRepository)(nil)
