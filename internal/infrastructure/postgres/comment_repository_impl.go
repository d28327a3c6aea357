package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

const commentColumns = `id, content, author_id, article_id, parent_id, reported, approved, created_at, updated_at`

func scanComment(row pgx.Row) (*entity.Comment, error) {
	c := &entity.Comment{}
	if err := row.Scan(&c.ID, &c.Content, &c.AuthorID, &c.ArticleID, &c.ParentID,
		&c.Reported, &c.Approved, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (content, author_id, article_id, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, reported, approved, created_at, updated_at
	`, c.Content, c.AuthorID, c.ArticleID, c.ParentID)

	return mapError(row.Scan(&c.ID, &c.Reported, &c.Approved, &c.CreatedAt, &c.UpdatedAt))
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanComment(r.pool.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
}

func (r *CommentRepository) ListByArticle(ctx context.Context, articleID string) ([]*entity.Comment, error) {
	out := make([]*entity.Comment, 0)
	if !validID(articleID) {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+commentColumns+` FROM comments
		WHERE article_id = $1
		ORDER BY created_at DESC, id DESC
	`, articleID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, mapError(rows.Err())
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id, content string) (*entity.Comment, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanComment(r.pool.QueryRow(ctx, `
		UPDATE comments SET content = $1, updated_at = now() WHERE id = $2
		RETURNING `+commentColumns, content, id))
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	if !validID(authorID) {
		return 0, nil
	}
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM comments WHERE author_id = $1`, authorID).Scan(&n)
	return n, mapError(err)
}

func (r *CommentRepository) SetModeration(ctx context.Context, id string, reported, approved bool) (*entity.Comment, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanComment(r.pool.QueryRow(ctx, `
		UPDATE comments SET reported = $1, approved = $2, updated_at = now() WHERE id = $3
		RETURNING `+commentColumns, reported, approved, id))
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
