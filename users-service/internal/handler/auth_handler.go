package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yahya-git/To-Do-List-MS/pkg/httperr"
)

type LoginService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type AuthHandler struct {
	auth LoginService
}

func NewAuthHandler(auth LoginService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login payload"})
		return
	}

	accessToken, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"access_token": accessToken,
		"token_type":   "bearer",
	})
}
