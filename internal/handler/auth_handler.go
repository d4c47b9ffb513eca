package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkpost/inkpost/internal/pkg/response"
	"github.com/inkpost/inkpost/internal/service"
)

type AuthHandler struct {
	auth    *service.AuthService
	avatars *AvatarUploader
}

func NewAuthHandler(auth *service.AuthService, avatars *AvatarUploader) *AuthHandler {
	return &AuthHandler{auth: auth, avatars: avatars}
}

type registerRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Register accepts multipart form data (with an optional "avatar"
// file) or plain JSON.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "name, email and password are required")
		return
	}
	avatar := ""
	if file, err := c.FormFile("avatar"); err == nil && file != nil {
		url, err := h.avatars.Save(c, file)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid_file", "failed to store avatar")
			return
		}
		avatar = url
	}
	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   avatar,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, gin.H{"user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "email and password are required")
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"token": token, "user": user})
}

// Me returns the identity the authorization gate resolved for this
// request.
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, gin.H{"user": currentUser(c)})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), currentClaims(c)); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
