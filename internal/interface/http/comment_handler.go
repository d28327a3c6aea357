package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

type CommentHandler struct {
	Svc *application.CommentService
}

func NewCommentHandler(svc *application.CommentService) *CommentHandler {
	return &CommentHandler{Svc: svc}
}

// commentRequest accepts the body under "content" or its older name "text".
// Comment is the optional parent comment id.
type commentRequest struct {
	Content string  `json:"content" form:"content"`
	Text    string  `json:"text" form:"text"`
	Comment *string `json:"comment" form:"comment" binding:"omitempty,uuid"`
}

func (r commentRequest) body() string {
	if r.Content != "" {
		return r.Content
	}
	return r.Text
}

type countQuery struct {
	Scope string `form:"scope" binding:"omitempty,oneof=article global"`
}

func (h *CommentHandler) List(c *gin.Context)     { h.tree(c, false) }
func (h *CommentHandler) Approved(c *gin.Context) { h.tree(c, true) }

func (h *CommentHandler) tree(c *gin.Context, approvedOnly bool) {
	roots, err := h.Svc.Tree(c.Request.Context(), c.Param("id"), middleware.UserID(c), approvedOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, roots)
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req commentRequest
	if !bind(c, &req) {
		return
	}
	cm, err := h.Svc.Create(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.body(), req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cm, "Commentaire ajouté avec succès")
}

func (h *CommentHandler) CountByAuthor(c *gin.Context) {
	var q countQuery
	if !bindQuery(c, &q) {
		return
	}
	n, err := h.Svc.CountByAuthor(c.Request.Context(), c.Param("id"), c.Param("authorId"), q.Scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Count(c, n)
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req commentRequest
	if !bind(c, &req) {
		return
	}
	cm, err := h.Svc.Update(c.Request.Context(), c.Param("id"), c.Param("commentId"), middleware.UserID(c), req.body())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, cm, "Commentaire mis à jour avec succès")
}

func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), c.Param("commentId"), middleware.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) Report(c *gin.Context) {
	cm, err := h.Svc.Report(c.Request.Context(), c.Param("id"), c.Param("commentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, cm, "Commentaire signalé")
}

func (h *CommentHandler) Approve(c *gin.Context) {
	cm, err := h.Svc.Approve(c.Request.Context(), c.Param("id"), c.Param("commentId"), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, cm, "Commentaire approuvé")
}
