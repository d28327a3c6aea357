package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

type ArticleHandler struct {
	Svc           *application.ArticleService
	MaxUploadSize int64
}

func NewArticleHandler(svc *application.ArticleService, maxUploadSize int64) *ArticleHandler {
	return &ArticleHandler{Svc: svc, MaxUploadSize: maxUploadSize}
}

type listArticlesQuery struct {
	Category   string `form:"category" binding:"omitempty,category"`
	Author     string `form:"author"`
	Search     string `form:"search"`
	Sort       string `form:"sort" binding:"omitempty,oneof=newest oldest views"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1"`
	ShowDrafts bool   `form:"showDrafts"`
}

type createArticleRequest struct {
	Title     string `json:"title" form:"title" binding:"required,min=3,max=150"`
	Content   string `json:"content" form:"content" binding:"required,min=20,max=2000"`
	Category  string `json:"category" form:"category" binding:"required,category"`
	Published bool   `json:"published" form:"published"`
}

// Author and views are not bindable.
type updateArticleRequest struct {
	Title    *string `json:"title" form:"title" binding:"omitempty,min=3,max=150"`
	Content  *string `json:"content" form:"content" binding:"omitempty,min=20,max=2000"`
	Category *string `json:"category" form:"category" binding:"omitempty,category"`
}

type viewsResponse struct {
	Views int64 `json:"views"`
}

func (h *ArticleHandler) List(c *gin.Context) {
	var q listArticlesQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := h.Svc.List(c.Request.Context(), application.ArticleQuery{
		Category:   q.Category,
		Author:     q.Author,
		Search:     q.Search,
		Sort:       q.Sort,
		Page:       q.Page,
		Limit:      q.Limit,
		ShowDrafts: q.ShowDrafts,
	}, middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, page.Items, page.Total, page.Page)
}

func (h *ArticleHandler) Get(c *gin.Context) {
	a, err := h.Svc.Get(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, a, "")
}

func (h *ArticleHandler) Create(c *gin.Context) {
	var req createArticleRequest
	if !bind(c, &req) {
		return
	}
	img, err := optionalImage(c, "image", h.MaxUploadSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), application.ArticleInput{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		Published: req.Published,
		Image:     img,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	msg := "Article créé avec succès"
	if a.Published {
		msg = "Article publié avec succès"
	}
	response.Success(c, http.StatusCreated, a, msg)
}

func (h *ArticleHandler) Update(c *gin.Context) {
	var req updateArticleRequest
	if !bind(c, &req) {
		return
	}
	img, err := optionalImage(c, "image", h.MaxUploadSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	a, err := h.Svc.Update(c.Request.Context(), c.Param("id"), middleware.UserID(c), application.ArticlePatch{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Image:    img,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, a, "Article mis à jour avec succès")
}

func (h *ArticleHandler) Publish(c *gin.Context)   { h.setPublished(c, true, "Article publié avec succès") }
func (h *ArticleHandler) Unpublish(c *gin.Context) { h.setPublished(c, false, "Article dépublié avec succès") }

func (h *ArticleHandler) setPublished(c *gin.Context, published bool, msg string) {
	a, err := h.Svc.SetPublished(c.Request.Context(), c.Param("id"), middleware.UserID(c), published)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, a, msg)
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Article supprimé avec succès")
}

func (h *ArticleHandler) CountByAuthor(c *gin.Context) {
	n, err := h.Svc.CountByAuthor(c.Request.Context(), c.Param("authorId"), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Count(c, n)
}

func (h *ArticleHandler) ViewsByAuthor(c *gin.Context) {
	n, err := h.Svc.ViewsByAuthor(c.Request.Context(), c.Param("authorId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, viewsResponse{Views: n})
}
