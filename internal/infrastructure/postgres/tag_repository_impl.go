package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conduitapp/conduit-api/internal/domain/entity"
	"github.com/conduitapp/conduit-api/internal/domain/repository"
)

type TagRepository struct {
	pool *pgxpool.Pool
}

func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

func (r *TagRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT name FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *TagRepository) GetByName(ctx context.Context, name string) (*entity.Tag, error) {
	var t entity.Tag
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM tags WHERE name = $1`, name).Scan(&t.ID, &t.Name)
	if err != nil {
		return nil, mapScanErr(err)
	}
	return &t, nil
}

// dedupe collapses duplicate names preserving first-seen order.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// ensureTags inserts any missing tags and returns the rows for every name.
// The conflict-tolerant insert means a concurrent create of the same name
// resolves to the winner's row instead of failing.
func ensureTags(ctx context.Context, q dbtx, names []string) ([]entity.Tag, error) {
	names = dedupe(names)
	if len(names) == 0 {
		return nil, nil
	}

	if _, err := q.Exec(ctx, `
		INSERT INTO tags (name)
		SELECT unnest($1::text[])
		ON CONFLICT (name) DO NOTHING
	`, names); err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, `SELECT id, name FROM tags WHERE name = ANY($1::text[])`, names)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]entity.Tag, 0, len(names))
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func linkArticleTags(ctx context.Context, q dbtx, articleID string, tags []entity.Tag) error {
	for _, t := range tags {
		if _, err := q.Exec(ctx, `
			INSERT INTO articles_to_tags (article_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, articleID, t.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *TagRepository) Ensure(ctx context.Context, names []string) ([]entity.Tag, error) {
	return ensureTags(ctx, r.pool, names)
}

func (r *TagRepository) ReplaceArticleTags(ctx context.Context, articleID string, names []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tags, err := ensureTags(ctx, tx, names)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM articles_to_tags WHERE article_id = $1`, articleID); err != nil {
		return err
	}
	if err := linkArticleTags(ctx, tx, articleID, tags); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

var _ repository.TagRepository = (*TagRepository)(nil)
