package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conduitapp/conduit-api/internal/domain/entity"
	"github.com/conduitapp/conduit-api/internal/domain/repository"
)

type ArticleRepository struct {
	pool *pgxpool.Pool
}

func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

// articleSelect joins the author row and aggregates tag names sorted
// ascending. The array_agg PK source guarantees the list is deduplicated.
const articleSelect = `
	SELECT a.id, a.slug, a.title, a.description, a.body, a.author_id,
	       a.created_at, a.updated_at,
	       u.id, u.email, u.username, u.bio, u.image, u.password_hash,
	       u.created_at, u.updated_at,
	       COALESCE(array_agg(t.name ORDER BY t.name) FILTER (WHERE t.name IS NOT NULL), '{}')
	FROM articles a
	JOIN users u ON u.id = a.author_id
	LEFT JOIN articles_to_tags att ON att.article_id = a.id
	LEFT JOIN tags t ON t.id = att.tag_id
`

const articleGroup = ` GROUP BY a.id, u.id`

func scanArticle(row interface{ Scan(dest ...any) error }) (*entity.ArticleWithData, error) {
	a := &entity.ArticleWithData{}
	if err := row.Scan(
		&a.ID, &a.Slug, &a.Title, &a.Description, &a.Body, &a.AuthorID,
		&a.CreatedAt, &a.UpdatedAt,
		&a.Author.ID, &a.Author.Email, &a.Author.Username, &a.Author.Bio,
		&a.Author.Image, &a.Author.Password, &a.Author.CreatedAt, &a.Author.UpdatedAt,
		&a.TagList,
	); err != nil {
		return nil, mapScanErr(err)
	}
	return a, nil
}

func (r *ArticleRepository) Create(ctx context.Context, a *entity.Article, tagNames []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO articles (slug, title, description, body, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, a.Slug, a.Title, a.Description, a.Body, a.AuthorID)
	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if _, ok := uniqueViolation(err); ok {
			return &repository.DuplicateError{Field: "slug"}
		}
		return err
	}

	if len(tagNames) > 0 {
		tags, err := ensureTags(ctx, tx, tagNames)
		if err != nil {
			return err
		}
		if err := linkArticleTags(ctx, tx, a.ID, tags); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*entity.ArticleWithData, error) {
	return scanArticle(r.pool.QueryRow(ctx, articleSelect+` WHERE a.slug = $1`+articleGroup, slug))
}

func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*entity.ArticleWithData, error) {
	return scanArticle(r.pool.QueryRow(ctx, articleSelect+` WHERE a.id = $1`+articleGroup, id))
}

func (r *ArticleRepository) List(ctx context.Context, f repository.ArticleFilter) ([]entity.ArticleWithData, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 6)

	if f.AuthorID != "" {
		args = append(args, f.AuthorID)
		where = append(where, fmt.Sprintf("a.author_id = $%d", len(args)))
	}
	if len(f.AuthorIDs) > 0 {
		args = append(args, f.AuthorIDs)
		where = append(where, fmt.Sprintf("a.author_id = ANY($%d::uuid[])", len(args)))
	}
	if f.FavoritedBy != "" {
		args = append(args, f.FavoritedBy)
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM favorites fv WHERE fv.article_id = a.id AND fv.user_id = $%d)", len(args)))
	}
	if f.TagID != "" {
		args = append(args, f.TagID)
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM articles_to_tags x WHERE x.article_id = a.id AND x.tag_id = $%d)", len(args)))
	}

	sql := articleSelect
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += articleGroup
	// Stable pagination: id breaks created_at ties.
	sql += " ORDER BY a.created_at DESC, a.id DESC"
	args = append(args, f.Limit)
	sql += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, f.Offset)
	sql += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.ArticleWithData, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *ArticleRepository) Update(ctx context.Context, a *entity.Article) error {
	a.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE articles
		SET slug = $1, title = $2, description = $3, body = $4, updated_at = $5
		WHERE id = $6
	`, a.Slug, a.Title, a.Description, a.Body, a.UpdatedAt, a.ID)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return &repository.DuplicateError{Field: "slug"}
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ArticleRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	var exists bool
	var row pgx.Row
	if excludeID == "" {
		row = r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM articles WHERE slug = $1)`, slug)
	} else {
		row = r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM articles WHERE slug = $1 AND id <> $2)`, slug, excludeID)
	}
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

var _ repository.ArticleRepository = (*ArticleRepository)(nil)
