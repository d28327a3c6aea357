package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
)

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t mock.TestingT) *UserRepository {
	m := &UserRepository{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}

func (m *UserRepository) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *UserRepository) GetManyByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).(map[string]*entity.User)
	return users, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *UserRepository) SetResetToken(ctx context.Context, id string, digest *string, expires *time.Time) error {
	return m.Called(ctx, id, digest, expires).Error(0)
}

func (m *UserRepository) GetByResetToken(ctx context.Context, digest string, now time.Time) (*entity.User, error) {
	args := m.Called(ctx, digest, now)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}
