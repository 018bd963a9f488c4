package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/pkg/httperr"
	"github.com/Yahya-git/To-Do-List-MS/pkg/identity"
	"github.com/Yahya-git/To-Do-List-MS/users-service/internal/model"
)

type AccountService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	UpdateProfile(ctx context.Context, currentID, id int, email, password *string) (*model.User, error)
	VerifyEmail(ctx context.Context, token int) error
	RequestPasswordReset(ctx context.Context, userID int) error
	ResetPassword(ctx context.Context, userID, token int) error
}

type UserLookup interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
}

type UserHandler struct {
	accounts AccountService
	users    UserLookup
	logger   *zap.Logger
}

func NewUserHandler(accounts AccountService, users UserLookup, logger *zap.Logger) *UserHandler {
	return &UserHandler{accounts: accounts, users: users, logger: logger}
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user payload"})
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "successfully created user",
		"data":   gin.H{"user": user},
	})
}

func (h *UserHandler) Update(c *gin.Context) {
	current, ok := identity.FromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user payload"})
		return
	}

	user, err := h.accounts.UpdateProfile(c.Request.Context(), current.ID, id, req.Email, req.Password)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "successfully updated user",
		"data":   gin.H{"user": user},
	})
}

// GetCurrent returns the authenticated user's profile as a bare object.
// tasks-service consumes this when assembling reports.
func (h *UserHandler) GetCurrent(c *gin.Context) {
	current, ok := identity.FromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), current.ID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) VerifyEmail(c *gin.Context) {
	tokenValue, err := strconv.Atoi(c.Query("token"))
	if err != nil {
		httperr.Write(c, httperr.ErrFalseToken)
		return
	}

	if err := h.accounts.VerifyEmail(c.Request.Context(), tokenValue); err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "successfully verified email"})
}

func (h *UserHandler) ResetPasswordRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.accounts.RequestPasswordReset(c.Request.Context(), id); err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "password reset token sent, check your email"})
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	tokenValue, err := strconv.Atoi(c.Query("token"))
	if err != nil {
		httperr.Write(c, httperr.ErrFalseToken)
		return
	}

	if err := h.accounts.ResetPassword(c.Request.Context(), id, tokenValue); err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "temporary password sent, check your email"})
}
