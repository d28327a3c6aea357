package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
)

type ArticleSort string

const (
	SortNewest ArticleSort = "newest"
	SortOldest ArticleSort = "oldest"
	SortViews  ArticleSort = "views"
)

// ArticleFilter narrows a listing. Published nil means any state.
// IDs, when non-nil, restricts results to those ids (search hits).
type ArticleFilter struct {
	Category  string
	AuthorID  string
	Published *bool
	Search    string
	IDs       []string
	Sort      ArticleSort
	Limit     int
	Offset    int
}

type ArticleRepository interface {
	Create(ctx context.Context, a *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	// List returns one page and the total matching the filter.
	List(ctx context.Context, f ArticleFilter) ([]*entity.Article, int, error)
	// Update persists title, content, category and image metadata.
	Update(ctx context.Context, a *entity.Article) error
	SetPublished(ctx context.Context, id string, published bool) (*entity.Article, error)
	IncrementViews(ctx context.Context, id string) (int64, error)
	// Delete removes the article; its comments cascade.
	Delete(ctx context.Context, id string) error
	CountByAuthor(ctx context.Context, authorID string, includeDrafts bool) (int64, error)
	SumViewsByAuthor(ctx context.Context, authorID string) (int64, error)
}

// ArticleIndex is a full-text index over published articles.
type ArticleIndex interface {
	Index(ctx context.Context, a *entity.Article) error
	Remove(ctx context.Context, id string) error
	// Search returns matching article ids ordered by relevance.
	Search(ctx context.Context, query string, limit int) ([]string, error)
}
