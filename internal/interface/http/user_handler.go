package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

type UserHandler struct {
	Svc           *application.UserService
	MaxUploadSize int64
}

func NewUserHandler(svc *application.UserService, maxUploadSize int64) *UserHandler {
	return &UserHandler{Svc: svc, MaxUploadSize: maxUploadSize}
}

type updateProfileRequest struct {
	Username  *string `json:"username" form:"username" binding:"omitempty,min=1,max=50"`
	Firstname *string `json:"firstname" form:"firstname" binding:"omitempty,max=50"`
	Lastname  *string `json:"lastname" form:"lastname" binding:"omitempty,max=100"`
	Email     *string `json:"email" form:"email" binding:"omitempty,email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *UserHandler) GetUser(c *gin.Context) {
	author, err := h.Svc.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, author, "")
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "")
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if !bind(c, &req) {
		return
	}
	avatar, err := optionalImage(c, "avatar", h.MaxUploadSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.UserID(c), application.ProfileInput{
		Username:  req.Username,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Avatar:    avatar,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "Profil mis à jour avec succès")
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if !bind(c, &req) {
		return
	}
	err := h.Svc.ChangePassword(c.Request.Context(), middleware.UserID(c), application.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Mot de passe changé avec succès")
}
