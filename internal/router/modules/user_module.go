package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
)

// UserModule serves /api/users.
// Public: GET /user/:id
// Protected: GET /profile, PUT /profile, PUT /change-password
type UserModule struct {
	Handler *handlers.UserHandler
	Guard   *middleware.Guard
}

func NewUserModule(h *handlers.UserHandler, guard *middleware.Guard) *UserModule {
	return &UserModule{Handler: h, Guard: guard}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users")
	g.GET("/user/:id", m.Handler.GetUser)

	auth := g.Group("")
	auth.Use(m.Guard.Protect())
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.PUT("/change-password", m.Handler.ChangePassword)
	}
}
