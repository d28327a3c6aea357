package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

type ObjectStorage struct {
	mock.Mock
}

func NewObjectStorage(t mock.TestingT) *ObjectStorage {
	m := &ObjectStorage{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}

func (m *ObjectStorage) Put(ctx context.Context, folder, filename, contentType string, r io.Reader) (helpers.StoredObject, error) {
	args := m.Called(ctx, folder, filename, contentType, r)
	return args.Get(0).(helpers.StoredObject), args.Error(1)
}

func (m *ObjectStorage) Remove(ctx context.Context, objectPath string) error {
	return m.Called(ctx, objectPath).Error(0)
}

type Notifier struct {
	mock.Mock
}

func NewNotifier(t mock.TestingT) *Notifier {
	m := &Notifier{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}

func (m *Notifier) Welcome(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *Notifier) PasswordReset(ctx context.Context, u *entity.User, resetURL string, expires time.Time) error {
	return m.Called(ctx, u, resetURL, expires).Error(0)
}

// Publisher mocks a JSON message publisher such as helpers.RabbitPublisher.
type Publisher struct {
	mock.Mock
}

func NewPublisher(t mock.TestingT) *Publisher {
	m := &Publisher{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}

func (m *Publisher) PublishJSON(ctx context.Context, body any) error {
	return m.Called(ctx, body).Error(0)
}
