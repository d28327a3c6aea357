package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetManyByIDs returns the users found, keyed by id. Unknown ids are skipped.
	GetManyByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error)
	// Update persists profile fields and avatar metadata.
	Update(ctx context.Context, u *entity.User) error
	// UpdatePassword stores a new hash and clears any pending reset token.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// SetResetToken stores (or clears, with nil values) the reset token digest and its expiry.
	SetResetToken(ctx context.Context, id string, digest *string, expires *time.Time) error
	// GetByResetToken finds the user owning digest whose expiry is after now.
	GetByResetToken(ctx context.Context, digest string, now time.Time) (*entity.User, error)
}
