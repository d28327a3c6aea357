package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
)

type ArticleRepository struct {
	mock.Mock
}

func NewArticleRepository(t mock.TestingT) *ArticleRepository {
	m := &ArticleRepository{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}

func (m *ArticleRepository) Create(ctx context.Context, a *entity.Article) error {
	return m.Called(ctx, a).Error(0)
}

func (m *ArticleRepository) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*entity.Article)
	return a, args.Error(1)
}

func (m *ArticleRepository) List(ctx context.Context, f repository.ArticleFilter) ([]*entity.Article, int, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]*entity.Article)
	return items, args.Int(1), args.Error(2)
}

func (m *ArticleRepository) Update(ctx context.Context, a *entity.Article) error {
	return m.Called(ctx, a).Error(0)
}

func (m *ArticleRepository) SetPublished(ctx context.Context, id string, published bool) (*entity.Article, error) {
	args := m.Called(ctx, id, published)
	a, _ := args.Get(0).(*entity.Article)
	return a, args.Error(1)
}

func (m *ArticleRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ArticleRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ArticleRepository) CountByAuthor(ctx context.Context, authorID string, includeDrafts bool) (int64, error) {
	args := m.Called(ctx, authorID, includeDrafts)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ArticleRepository) SumViewsByAuthor(ctx context.Context, authorID string) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

type ArticleIndex struct {
	mock.Mock
}

func NewArticleIndex(t mock.TestingT) *ArticleIndex {
	m := &ArticleIndex{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}

func (m *ArticleIndex) Index(ctx context.Context, a *entity.Article) error {
	return m.Called(ctx, a).Error(0)
}

func (m *ArticleIndex) Remove(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ArticleIndex) Search(ctx context.Context, query string, limit int) ([]string, error) {
	args := m.Called(ctx, query, limit)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}
