package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/internal/metrics"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

const resetTokenTTL = time.Hour

type AuthService struct {
	Users    repo.UserRepository
	JWT      *helpers.JWTManager
	Notifier Notifier
	Logger   *logrus.Logger
	// ResetURL builds the front-end link for a plain reset token.
	ResetURL func(token string) string
	Now      func() time.Time
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, notifier Notifier, logger *logrus.Logger, resetURL func(string) string) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Notifier: notifier, Logger: logger, ResetURL: resetURL, Now: time.Now}
}

type SignupInput struct {
	Username  string
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

// AuthResult is a signed-in user and its bearer token.
type AuthResult struct {
	Token string
	User  *entity.User
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u := &entity.User{
		Username:     helpers.SanitizeText(in.Username),
		Firstname:    helpers.SanitizeText(in.Firstname),
		Lastname:     helpers.SanitizeText(in.Lastname),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, duplicateError(err)
	}

	token, _, err := s.JWT.IssueToken(u.ID, u.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if err := s.Notifier.Welcome(ctx, u); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email not queued")
	}
	return &AuthResult{Token: token, User: u}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// duplicateError maps unique violations to the messages shown on the signup form.
func duplicateError(err error) error {
	var dup *repo.DuplicateError
	if errors.As(err, &dup) {
		if dup.Field == "email" {
			return apperror.Conflict("Email déjà utilisé", "Cet email est déjà associé à un compte")
		}
		return apperror.Conflict("Données en double", dup.Field+" déjà utilisé")
	}
	return apperror.Internal(err)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperror.Validation("Email et mot de passe sont requis")
	}
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if u == nil || !helpers.CheckPassword(u.PasswordHash, password) {
		metrics.ObserveAuthFailure("bad_credentials")
		return nil, apperror.Unauthorized("Erreur d'authentification", "Email ou mot de passe incorrect")
	}
	token, _, err := s.JWT.IssueToken(u.ID, u.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &AuthResult{Token: token, User: u}, nil
}

// ForgotPassword stores a one-hour reset token and emails its link. Unknown
// emails succeed silently so the endpoint cannot be used to probe accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return apperror.Internal(err)
	}

	plain, digest, err := helpers.NewResetToken()
	if err != nil {
		return apperror.Internal(err)
	}
	expires := s.Now().Add(resetTokenTTL)
	if err := s.Users.SetResetToken(ctx, u.ID, &digest, &expires); err != nil {
		return apperror.Internal(err)
	}

	if err := s.Notifier.PasswordReset(ctx, u, s.ResetURL(plain), expires); err != nil {
		if clearErr := s.Users.SetResetToken(ctx, u.ID, nil, nil); clearErr != nil {
			s.Logger.WithError(clearErr).WithField("user_id", u.ID).Error("clear reset token failed")
		}
		return apperror.InternalWith("Erreur lors de l'envoi de l'email", err, "Impossible d'envoyer l'email")
	}
	return nil
}

// ResetPassword consumes a reset token. The token is single use.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < 6 {
		return apperror.Validation("Mot de passe invalide", "Le mot de passe doit contenir au moins 6 caractères")
	}
	u, err := s.Users.GetByResetToken(ctx, helpers.HashResetToken(token), s.Now())
	if errors.Is(err, repo.ErrNotFound) {
		return apperror.Validation("Token invalide ou expiré", "Token invalide ou expiré")
	}
	if err != nil {
		return apperror.Internal(err)
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := s.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// Verify returns the current state of the authenticated user.
func (s *AuthService) Verify(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.UserGone()
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return u, nil
}
