package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.TokenCookie
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.TokenCookie) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies}
}

type signupRequest struct {
	Username  string `json:"username" binding:"required,max=50"`
	Firstname string `json:"firstname" binding:"required,max=50"`
	Lastname  string `json:"lastname" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
}

// Credentials are checked by the service so that missing fields get their own message.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token"`
	User    *entity.User `json:"user"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if !bind(c, &req) {
		return
	}
	res, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Username:  req.Username,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.Cookies.Set(c, res.Token)
	c.JSON(http.StatusCreated, authResponse{Success: true, Message: "Inscription réussie. Bienvenue !", Token: res.Token, User: res.User})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.Cookies.Set(c, res.Token)
	c.JSON(http.StatusOK, authResponse{Success: true, Token: res.Token, User: res.User})
}

// Logout clears the token cookie. Bearer tokens stay valid until they expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "Déconnexion réussie")
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !bind(c, &req) {
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Si cet email existe, un lien de réinitialisation a été envoyé")
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !bind(c, &req) {
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		response.Error(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Mot de passe réinitialisé avec succès")
}

func (h *AuthHandler) Verify(c *gin.Context) {
	u, err := h.Svc.Verify(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}
