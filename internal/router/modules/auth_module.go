package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/internal/container"
	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
)

// AuthModule serves /api/auth.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Guard   *middleware.Guard
}

func NewAuthModule(h *handlers.AuthHandler, guard *middleware.Guard) *AuthModule {
	return &AuthModule{Handler: h, Guard: guard}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints get a tighter per-route budget on top of the global limiter.
	credLimiter := middleware.RateLimit(container.GetRedis(), 10, 15*time.Minute, middleware.KeyByIPAndPath(), nil)
	mailLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Hour, middleware.KeyByIPAndPath(), nil)

	g := rg.Group("/auth")
	g.POST("/signup", credLimiter, m.Handler.Signup)
	g.POST("/login", credLimiter, m.Handler.Login)
	g.POST("/logout", m.Handler.Logout)
	g.POST("/forgot-password", mailLimiter, m.Handler.ForgotPassword)
	g.POST("/reset-password/:token", credLimiter, m.Handler.ResetPassword)
	g.GET("/verify", m.Guard.Protect(), m.Handler.Verify)
}
