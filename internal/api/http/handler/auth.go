package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/sweetshop-server/internal/logger"
	"github.com/dtroode/sweetshop-server/internal/model"
)

// AuthService defines account registration, login and approval operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	SignUp(ctx context.Context, params model.SignUpParams) (model.Account, error)
	UpdateStatus(ctx context.Context, id int64, status model.AccountStatus) error
}

// Auth handles HTTP endpoints under /api/auth.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type signUpRequest struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	Password      string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateStatusRequest struct {
	ID     json.Number `json:"id" binding:"required"`
	Status string      `json:"status" binding:"required"`
}

// SignUp registers an account that waits for admin approval.
func (h *Auth) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid data")
		return
	}

	account, err := h.authService.SignUp(c.Request.Context(), model.SignUpParams{
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Password:      req.Password,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	h.logger.Debug("Auth handler: signup completed", "id", account.ID)

	c.JSON(http.StatusCreated, gin.H{"message": "Successfully Registered", "id": account.ID})
}

// Login answers {"token": "..."} for an approved account.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid data")
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ForgotPassword is reserved; password reset is not offered.
func (h *Auth) ForgotPassword(c *gin.Context) {
	respondMessage(c, http.StatusNotImplemented, "Password reset is not available")
}

// CheckToken answers true; reaching it at all means the token was accepted.
func (h *Auth) CheckToken(c *gin.Context) {
	respondMessage(c, http.StatusOK, "true")
}

// UpdateStatus sets an account's approval status. The id may be a JSON number or string.
func (h *Auth) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid data")
		return
	}

	id, err := req.ID.Int64()
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid data")
		return
	}

	err = h.authService.UpdateStatus(c.Request.Context(), id, model.AccountStatus(req.Status))
	if err != nil {
		handleNotFound(c, err, "User id doesn't exist")
		return
	}

	respondMessage(c, http.StatusOK, "User Status Successfully Updated")
}
