package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
)

type CommentRepository struct {
	mock.Mock
}

func NewCommentRepository(t mock.TestingT) *CommentRepository {
	m := &CommentRepository{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}

func (m *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Comment)
	return c, args.Error(1)
}

func (m *CommentRepository) ListByArticle(ctx context.Context, articleID string) ([]*entity.Comment, error) {
	args := m.Called(ctx, articleID)
	cs, _ := args.Get(0).([]*entity.Comment)
	return cs, args.Error(1)
}

func (m *CommentRepository) UpdateContent(ctx context.Context, id, content string) (*entity.Comment, error) {
	args := m.Called(ctx, id, content)
	c, _ := args.Get(0).(*entity.Comment)
	return c, args.Error(1)
}

func (m *CommentRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CommentRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentRepository) SetModeration(ctx context.Context, id string, reported, approved bool) (*entity.Comment, error) {
	args := m.Called(ctx, id, reported, approved)
	c, _ := args.Get(0).(*entity.Comment)
	return c, args.Error(1)
}
