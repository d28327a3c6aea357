package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
)

type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	// ListByArticle returns every comment of the article, newest first.
	ListByArticle(ctx context.Context, articleID string) ([]*entity.Comment, error)
	UpdateContent(ctx context.Context, id, content string) (*entity.Comment, error)
	Delete(ctx context.Context, id string) error
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	SetModeration(ctx context.Context, id string, reported, approved bool) (*entity.Comment, error)
}
