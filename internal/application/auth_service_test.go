package application_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/internal/mocks"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newAuthService(t *testing.T) (*application.AuthService, *mocks.UserRepository, *mocks.Notifier) {
	users := mocks.NewUserRepository(t)
	notifier := mocks.NewNotifier(t)
	svc := application.NewAuthService(users, helpers.NewJWTManager("secret", time.Hour), notifier, quietLogger(),
		func(token string) string { return "http://front/reset-password/" + token })
	svc.Now = func() time.Time { return fixedNow }
	return svc, users, notifier
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	svc, users, notifier := newAuthService(t)

	users.On("Create", ctx, mock.AnythingOfType("*entity.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = "u1"
	}).Return(nil)
	notifier.On("Welcome", ctx, mock.AnythingOfType("*entity.User")).Return(errors.New("queue down"))

	res, err := svc.Signup(ctx, application.SignupInput{
		Username: "neo", Firstname: "<b>Thomas</b>", Lastname: "Anderson",
		Email: " Neo@Matrix.io ", Password: "redpill",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "neo@matrix.io", res.User.Email)
	assert.Equal(t, "Thomas", res.User.Firstname)
	assert.True(t, helpers.CheckPassword(res.User.PasswordHash, "redpill"))

	claims, err := helpers.NewJWTManager("secret", time.Hour).ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
}

func TestSignupDuplicates(t *testing.T) {
	tests := []struct {
		field   string
		message string
		detail  string
	}{
		{"email", "Email déjà utilisé", "Cet email est déjà associé à un compte"},
		{"username", "Données en double", "username déjà utilisé"},
	}
	for _, tc := range tests {
		t.Run(tc.field, func(t *testing.T) {
			ctx := context.Background()
			svc, users, _ := newAuthService(t)
			users.On("Create", ctx, mock.Anything).Return(&repo.DuplicateError{Field: tc.field})

			_, err := svc.Signup(ctx, application.SignupInput{Username: "a", Email: "a@b.c", Password: "secret"})
			ae := requireKind(t, err, apperror.KindConflict, http.StatusBadRequest)
			assert.Equal(t, tc.message, ae.Message)
			assert.Equal(t, []string{tc.detail}, ae.Errors)
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := helpers.HashPassword("secret")
	require.NoError(t, err)
	user := &entity.User{ID: "u1", Email: "a@b.c", PasswordHash: hash}

	t.Run("missing fields", func(t *testing.T) {
		svc, _, _ := newAuthService(t)
		_, err := svc.Login(ctx, "", "")
		ae := requireKind(t, err, apperror.KindValidationFailed, http.StatusBadRequest)
		assert.Equal(t, "Email et mot de passe sont requis", ae.Message)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("GetByEmail", ctx, "x@y.z").Return(nil, repo.ErrNotFound)
		_, err := svc.Login(ctx, "x@y.z", "secret")
		ae := requireKind(t, err, apperror.KindUnauthenticated, http.StatusUnauthorized)
		assert.Equal(t, "Erreur d'authentification", ae.Message)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("GetByEmail", ctx, "a@b.c").Return(user, nil)
		_, err := svc.Login(ctx, "a@b.c", "nope")
		requireKind(t, err, apperror.KindUnauthenticated, http.StatusUnauthorized)
	})

	t.Run("ok", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("GetByEmail", ctx, "a@b.c").Return(user, nil)
		res, err := svc.Login(ctx, "a@b.c", "secret")
		require.NoError(t, err)
		assert.Same(t, user, res.User)
		assert.NotEmpty(t, res.Token)
	})
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newAuthService(t)
	users.On("GetByEmail", ctx, "ghost@b.c").Return(nil, repo.ErrNotFound)

	assert.NoError(t, svc.ForgotPassword(ctx, "ghost@b.c"))
}

func TestForgotPasswordStoresDigestAndMailsPlainToken(t *testing.T) {
	ctx := context.Background()
	svc, users, notifier := newAuthService(t)
	user := &entity.User{ID: "u1", Email: "a@b.c"}
	expires := fixedNow.Add(time.Hour)

	var digest string
	users.On("GetByEmail", ctx, "a@b.c").Return(user, nil)
	users.On("SetResetToken", ctx, "u1", mock.AnythingOfType("*string"), &expires).Run(func(args mock.Arguments) {
		digest = *args.Get(2).(*string)
	}).Return(nil)
	notifier.On("PasswordReset", ctx, user, mock.AnythingOfType("string"), expires).Run(func(args mock.Arguments) {
		link := args.String(2)
		require.True(t, strings.HasPrefix(link, "http://front/reset-password/"))
		plain := strings.TrimPrefix(link, "http://front/reset-password/")
		assert.Len(t, plain, 64)
		assert.Equal(t, helpers.HashResetToken(plain), digest)
	}).Return(nil)

	require.NoError(t, svc.ForgotPassword(ctx, "a@b.c"))
}

func TestForgotPasswordDeliveryFailureClearsToken(t *testing.T) {
	ctx := context.Background()
	svc, users, notifier := newAuthService(t)
	user := &entity.User{ID: "u1", Email: "a@b.c"}

	users.On("GetByEmail", ctx, "a@b.c").Return(user, nil)
	users.On("SetResetToken", ctx, "u1", mock.AnythingOfType("*string"), mock.AnythingOfType("*time.Time")).Return(nil).Once()
	users.On("SetResetToken", ctx, "u1", (*string)(nil), (*time.Time)(nil)).Return(nil).Once()
	notifier.On("PasswordReset", ctx, user, mock.Anything, mock.Anything).Return(errors.New("amqp closed"))

	err := svc.ForgotPassword(ctx, "a@b.c")
	ae := requireKind(t, err, apperror.KindInternal, http.StatusInternalServerError)
	assert.Equal(t, "Erreur lors de l'envoi de l'email", ae.Message)
	assert.Equal(t, []string{"Impossible d'envoyer l'email"}, ae.Errors)
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("short password", func(t *testing.T) {
		svc, _, _ := newAuthService(t)
		err := svc.ResetPassword(ctx, "tok", "123")
		requireKind(t, err, apperror.KindValidationFailed, http.StatusBadRequest)
	})

	t.Run("unknown or expired token", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("GetByResetToken", ctx, helpers.HashResetToken("tok"), fixedNow).Return(nil, repo.ErrNotFound)
		err := svc.ResetPassword(ctx, "tok", "newsecret")
		ae := requireKind(t, err, apperror.KindValidationFailed, http.StatusBadRequest)
		assert.Equal(t, "Token invalide ou expiré", ae.Message)
	})

	t.Run("ok", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("GetByResetToken", ctx, helpers.HashResetToken("tok"), fixedNow).Return(&entity.User{ID: "u1"}, nil)
		users.On("UpdatePassword", ctx, "u1", mock.MatchedBy(func(h string) bool {
			return helpers.CheckPassword(h, "newsecret")
		})).Return(nil)
		require.NoError(t, svc.ResetPassword(ctx, "tok", "newsecret"))
	})
}

func TestVerifyDeletedUser(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newAuthService(t)
	users.On("GetByID", ctx, "u1").Return(nil, repo.ErrNotFound)

	_, err := svc.Verify(ctx, "u1")
	requireKind(t, err, apperror.KindUserGone, http.StatusUnauthorized)
}
