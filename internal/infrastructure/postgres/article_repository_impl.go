package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
)

type ArticleRepository struct {
	pool *pgxpool.Pool
}

func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

const articleColumns = `id, title, content, author_id, category, published, views,
	image_url, image_object, image_name, image_extension, created_at, updated_at`

func scanArticle(row pgx.Row) (*entity.Article, error) {
	a := &entity.Article{}
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.Category, &a.Published, &a.Views,
		&a.ImageURL, &a.ImageObject, &a.ImageName, &a.ImageExtension, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

func (r *ArticleRepository) Create(ctx context.Context, a *entity.Article) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO articles (title, content, author_id, category, published, image_url, image_object, image_name, image_extension)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, views, created_at, updated_at
	`, a.Title, a.Content, a.AuthorID, a.Category, a.Published, a.ImageURL, a.ImageObject, a.ImageName, a.ImageExtension)

	return mapError(row.Scan(&a.ID, &a.Views, &a.CreatedAt, &a.UpdatedAt))
}

func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanArticle(r.pool.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id))
}

// whereClause renders the filter as SQL conditions with positional args.
func whereClause(f repository.ArticleFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.AuthorID != "" {
		add("author_id = $%d", f.AuthorID)
	}
	if f.Published != nil {
		add("published = $%d", *f.Published)
	}
	if f.IDs != nil {
		add("id = ANY($%d::uuid[])", validIDs(f.IDs))
	} else if q := strings.TrimSpace(f.Search); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", len(args), len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func orderBy(s repository.ArticleSort) string {
	switch s {
	case repository.SortOldest:
		return " ORDER BY created_at ASC, id ASC"
	case repository.SortViews:
		return " ORDER BY views DESC, created_at DESC"
	default:
		return " ORDER BY created_at DESC, id DESC"
	}
}

func (r *ArticleRepository) List(ctx context.Context, f repository.ArticleFilter) ([]*entity.Article, int, error) {
	if f.AuthorID != "" && !validID(f.AuthorID) {
		return []*entity.Article{}, 0, nil
	}
	where, args := whereClause(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM articles`+where, args...).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	q := `SELECT ` + articleColumns + ` FROM articles` + where + orderBy(f.Sort)
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	out := make([]*entity.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, mapError(rows.Err())
}

func (r *ArticleRepository) Update(ctx context.Context, a *entity.Article) error {
	if !validID(a.ID) {
		return repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE articles
		SET title = $1, content = $2, category = $3,
		    image_url = $4, image_object = $5, image_name = $6, image_extension = $7, updated_at = now()
		WHERE id = $8
		RETURNING updated_at
	`, a.Title, a.Content, a.Category, a.ImageURL, a.ImageObject, a.ImageName, a.ImageExtension, a.ID)

	return mapError(row.Scan(&a.UpdatedAt))
}

func (r *ArticleRepository) SetPublished(ctx context.Context, id string, published bool) (*entity.Article, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanArticle(r.pool.QueryRow(ctx, `
		UPDATE articles SET published = $1, updated_at = now() WHERE id = $2
		RETURNING `+articleColumns, published, id))
}

func (r *ArticleRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	if !validID(id) {
		return 0, repository.ErrNotFound
	}
	var views int64
	err := r.pool.QueryRow(ctx, `UPDATE articles SET views = views + 1 WHERE id = $1 RETURNING views`, id).Scan(&views)
	return views, mapError(err)
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ArticleRepository) CountByAuthor(ctx context.Context, authorID string, includeDrafts bool) (int64, error) {
	if !validID(authorID) {
		return 0, nil
	}
	q := `SELECT count(*) FROM articles WHERE author_id = $1`
	if !includeDrafts {
		q += ` AND published`
	}
	var n int64
	err := r.pool.QueryRow(ctx, q, authorID).Scan(&n)
	return n, mapError(err)
}

func (r *ArticleRepository) SumViewsByAuthor(ctx context.Context, authorID string) (int64, error) {
	if !validID(authorID) {
		return 0, nil
	}
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(sum(views), 0)::bigint FROM articles WHERE author_id = $1`, authorID).Scan(&n)
	return n, mapError(err)
}

var _ repository.ArticleRepository = (*ArticleRepository)(nil)
