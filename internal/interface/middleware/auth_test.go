package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/internal/mocks"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

const testSecret = "test-secret"

func init() { gin.SetMode(gin.TestMode) }

func guardRouter(t *testing.T) (*gin.Engine, *mocks.UserRepository) {
	users := mocks.NewUserRepository(t)
	g := NewGuard(helpers.NewJWTManager(testSecret, time.Hour), users)

	r := gin.New()
	whoami := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"user": UserID(c)}) }
	r.GET("/private", g.Protect(), whoami)
	r.GET("/public", g.PartialProtect(), whoami)
	return r, users
}

func issue(t *testing.T, secret string, ttl time.Duration) string {
	tok, _, err := helpers.NewJWTManager(secret, time.Hour).IssueTokenWithTTL("u1", "neo@matrix.io", ttl)
	require.NoError(t, err)
	return tok
}

func call(r *gin.Engine, path, token string) (int, map[string]any) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func TestProtect(t *testing.T) {
	tests := []struct {
		name    string
		token   func(t *testing.T) string
		lookup  func(users *mocks.UserRepository)
		status  int
		message string
	}{
		{
			name:    "no token",
			token:   func(*testing.T) string { return "" },
			status:  http.StatusUnauthorized,
			message: "Vous n'êtes pas connecté",
		},
		{
			name:    "garbage token",
			token:   func(*testing.T) string { return "not.a.jwt" },
			status:  http.StatusUnauthorized,
			message: "Token invalide",
		},
		{
			name:    "wrong secret",
			token:   func(t *testing.T) string { return issue(t, "other", time.Hour) },
			status:  http.StatusUnauthorized,
			message: "Token invalide",
		},
		{
			name:    "expired",
			token:   func(t *testing.T) string { return issue(t, testSecret, -time.Second) },
			status:  http.StatusUnauthorized,
			message: "TokenExpiredError",
		},
		{
			name:  "user gone",
			token: func(t *testing.T) string { return issue(t, testSecret, time.Hour) },
			lookup: func(users *mocks.UserRepository) {
				users.On("GetByID", mock.Anything, "u1").Return(nil, repository.ErrNotFound)
			},
			status:  http.StatusUnauthorized,
			message: "L'utilisateur n'existe plus",
		},
		{
			name:  "store failure",
			token: func(t *testing.T) string { return issue(t, testSecret, time.Hour) },
			lookup: func(users *mocks.UserRepository) {
				users.On("GetByID", mock.Anything, "u1").Return(nil, errors.New("db down"))
			},
			status:  http.StatusInternalServerError,
			message: "Une erreur interne est survenue",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, users := guardRouter(t)
			if tc.lookup != nil {
				tc.lookup(users)
			}
			status, body := call(r, "/private", tc.token(t))
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, body["message"])
			assert.Equal(t, float64(tc.status), body["statusCode"])
		})
	}
}

func TestProtectAttachesUser(t *testing.T) {
	r, users := guardRouter(t)
	users.On("GetByID", mock.Anything, "u1").Return(&entity.User{ID: "u1"}, nil)

	status, body := call(r, "/private", issue(t, testSecret, time.Hour))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "u1", body["user"])
}

func TestPartialProtect(t *testing.T) {
	t.Run("anonymous without token", func(t *testing.T) {
		r, _ := guardRouter(t)
		status, body := call(r, "/public", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "", body["user"])
	})

	t.Run("anonymous when user is gone", func(t *testing.T) {
		r, users := guardRouter(t)
		users.On("GetByID", mock.Anything, "u1").Return(nil, repository.ErrNotFound)
		status, body := call(r, "/public", issue(t, testSecret, time.Hour))
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "", body["user"])
	})

	t.Run("identified", func(t *testing.T) {
		r, users := guardRouter(t)
		users.On("GetByID", mock.Anything, "u1").Return(&entity.User{ID: "u1"}, nil)
		_, body := call(r, "/public", issue(t, testSecret, time.Hour))
		assert.Equal(t, "u1", body["user"])
	})

	t.Run("expired token is forwarded", func(t *testing.T) {
		r, _ := guardRouter(t)
		status, body := call(r, "/public", issue(t, testSecret, -time.Second))
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "TokenExpiredError", body["message"])
	})

	t.Run("invalid token is forwarded", func(t *testing.T) {
		r, _ := guardRouter(t)
		status, body := call(r, "/public", "junk")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Token invalide", body["message"])
	})
}

func TestBearerToken(t *testing.T) {
	tests := map[string]string{
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"Basic abc":    "",
		"abc":          "",
		"":             "",
	}
	for header, want := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set("Authorization", header)
		assert.Equal(t, want, bearerToken(c), header)
	}
}

func TestCookieTokenFallback(t *testing.T) {
	r, users := guardRouter(t)
	users.On("GetByID", mock.Anything, "u1").Return(&entity.User{ID: "u1"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: helpers.TokenCookieName, Value: issue(t, testSecret, time.Hour)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":"u1"`)
}
