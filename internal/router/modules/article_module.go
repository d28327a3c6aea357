package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
)

// ArticleModule serves /api/articles. Reads use the optional guard so that
// authors can see their drafts; writes require a token.
type ArticleModule struct {
	Handler *handlers.ArticleHandler
	Guard   *middleware.Guard
}

func NewArticleModule(h *handlers.ArticleHandler, guard *middleware.Guard) *ArticleModule {
	return &ArticleModule{Handler: h, Guard: guard}
}

func (m *ArticleModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/articles")

	read := g.Group("")
	read.Use(m.Guard.PartialProtect())
	{
		read.GET("", m.Handler.List)
		read.GET("/:id", m.Handler.Get)
	}

	auth := g.Group("")
	auth.Use(m.Guard.Protect())
	{
		auth.POST("", m.Handler.Create)
		auth.PUT("/:id", m.Handler.Update)
		auth.PATCH("/:id/publish", m.Handler.Publish)
		auth.PATCH("/:id/unpublish", m.Handler.Unpublish)
		auth.DELETE("/:id", m.Handler.Delete)
		auth.GET("/author/count/:authorId", m.Handler.CountByAuthor)
		auth.GET("/author/views/:authorId", m.Handler.ViewsByAuthor)
	}
}
