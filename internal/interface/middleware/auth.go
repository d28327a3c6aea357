package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/internal/metrics"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxUserKey   = "user"
)

// UserLookup resolves the user a token refers to.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// Guard authenticates bearer tokens, or the token cookie, against the user store.
type Guard struct {
	jwt   *helpers.JWTManager
	users UserLookup
}

func NewGuard(jwt *helpers.JWTManager, users UserLookup) *Guard {
	return &Guard{jwt: jwt, users: users}
}

// Protect rejects requests without a valid token for an existing user.
func (g *Guard) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			metrics.ObserveAuthFailure("missing_token")
			response.Error(c, apperror.Unauthenticated())
			return
		}
		u, err := g.resolve(c, token)
		if err != nil {
			response.Error(c, err)
			return
		}
		if u == nil {
			metrics.ObserveAuthFailure("user_gone")
			response.Error(c, apperror.UserGone())
			return
		}
		setUser(c, u)
		c.Next()
	}
}

// PartialProtect attaches the user when a token is present. Requests without
// a token, or whose user no longer exists, continue anonymously. A present but
// invalid or expired token is still rejected.
func (g *Guard) PartialProtect() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		u, err := g.resolve(c, token)
		if err != nil {
			response.Error(c, err)
			return
		}
		if u != nil {
			setUser(c, u)
		}
		c.Next()
	}
}

// resolve returns (nil, nil) when the token is valid but its user is gone.
func (g *Guard) resolve(c *gin.Context, token string) (*entity.User, error) {
	claims, err := g.jwt.ParseToken(token)
	if errors.Is(err, helpers.ErrTokenExpired) {
		metrics.ObserveAuthFailure("token_expired")
		return nil, apperror.TokenExpired()
	}
	if err != nil {
		metrics.ObserveAuthFailure("invalid_token")
		return nil, apperror.InvalidToken()
	}

	u, err := g.users.GetByID(c.Request.Context(), claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return u, nil
}

// bearerToken prefers the Authorization header and falls back to the token cookie.
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	if v, err := c.Cookie(helpers.TokenCookieName); err == nil {
		return v
	}
	return ""
}

func setUser(c *gin.Context, u *entity.User) {
	c.Set(CtxUserIDKey, u.ID)
	c.Set(CtxUserKey, u)
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}
