package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conduitapp/conduit-api/internal/domain/entity"
	"github.com/conduitapp/conduit-api/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

const commentSelect = `
	SELECT c.id, c.body, c.article_id, c.author_id, c.created_at, c.updated_at,
	       u.id, u.email, u.username, u.bio, u.image, u.password_hash,
	       u.created_at, u.updated_at
	FROM comments c
	JOIN users u ON u.id = c.author_id
`

func scanComment(row interface{ Scan(dest ...any) error }) (*entity.CommentWithAuthor, error) {
	c := &entity.CommentWithAuthor{}
	if err := row.Scan(
		&c.ID, &c.Body, &c.ArticleID, &c.AuthorID, &c.CreatedAt, &c.UpdatedAt,
		&c.Author.ID, &c.Author.Email, &c.Author.Username, &c.Author.Bio,
		&c.Author.Image, &c.Author.Password, &c.Author.CreatedAt, &c.Author.UpdatedAt,
	); err != nil {
		return nil, mapScanErr(err)
	}
	return c, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (body, article_id, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, c.Body, c.ArticleID, c.AuthorID)
	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.CommentWithAuthor, error) {
	return scanComment(r.pool.QueryRow(ctx, commentSelect+` WHERE c.id = $1`, id))
}

func (r *CommentRepository) ListByArticle(ctx context.Context, articleID string) ([]entity.CommentWithAuthor, error) {
	rows, err := r.pool.Query(ctx, commentSelect+`
		WHERE c.article_id = $1
		ORDER BY c.created_at DESC, c.id DESC
	`, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.CommentWithAuthor, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
