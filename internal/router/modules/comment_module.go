package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
)

// CommentModule serves /api/articles/:id/comments.
type CommentModule struct {
	Handler *handlers.CommentHandler
	Guard   *middleware.Guard
}

func NewCommentModule(h *handlers.CommentHandler, guard *middleware.Guard) *CommentModule {
	return &CommentModule{Handler: h, Guard: guard}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/articles/:id/comments")

	read := g.Group("")
	read.Use(m.Guard.PartialProtect())
	{
		read.GET("", m.Handler.List)
		read.GET("/approved", m.Handler.Approved)
	}

	auth := g.Group("")
	auth.Use(m.Guard.Protect())
	{
		auth.POST("", m.Handler.Create)
		auth.GET("/author/count/:authorId", m.Handler.CountByAuthor)
		auth.PUT("/:commentId", m.Handler.Update)
		auth.DELETE("/:commentId", m.Handler.Delete)
		auth.POST("/:commentId/report", m.Handler.Report)
		auth.PATCH("/:commentId/approve", m.Handler.Approve)
	}
}
