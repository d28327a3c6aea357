package application

import (
	"context"
	"io"
	"time"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

// ObjectStorage stores uploaded images. helpers.GCSStore implements it.
type ObjectStorage interface {
	Put(ctx context.Context, folder, filename, contentType string, r io.Reader) (helpers.StoredObject, error)
	Remove(ctx context.Context, objectPath string) error
}

// Notifier sends transactional emails.
type Notifier interface {
	Welcome(ctx context.Context, u *entity.User) error
	PasswordReset(ctx context.Context, u *entity.User, resetURL string, expires time.Time) error
}

// Common messages shared by several services.
const (
	msgArticleNotFound = "Article non trouvé"
	msgCommentNotFound = "Commentaire non trouvé"
	msgUserNotFound    = "Utilisateur non trouvé"
	msgValidation      = "Erreur de validation des données"
)
