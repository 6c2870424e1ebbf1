package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/sweetshop-server/internal/model"
)

const somethingWentWrong = "Something went wrong"

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// handleError writes the response for err. Errors outside the domain taxonomy
// are attached to the gin context for the access log and answered generically.
func handleError(c *gin.Context, err error) {
	var stockErr *model.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   fmt.Sprintf("Insufficient stock. Available quantity: %d", stockErr.Available),
			"available": stockErr.Available,
		})
		return
	}

	switch {
	case errors.Is(err, model.ErrWrongCredentials):
		respondMessage(c, http.StatusUnauthorized, "Wrong Credentials")
	case errors.Is(err, model.ErrInvalidToken),
		errors.Is(err, model.ErrExpiredToken),
		errors.Is(err, model.ErrUnauthorized):
		respondMessage(c, http.StatusUnauthorized, "Unauthorized access")
	case errors.Is(err, model.ErrPendingApproval):
		respondMessage(c, http.StatusForbidden, "Wait for Admin Approval.")
	case errors.Is(err, model.ErrForbidden):
		respondMessage(c, http.StatusForbidden, "This operation requires admin privileges.")
	case errors.Is(err, model.ErrNotFound):
		respondMessage(c, http.StatusNotFound, "Not found")
	case errors.Is(err, model.ErrEmailTaken):
		respondMessage(c, http.StatusConflict, "Email already exists")
	case errors.Is(err, model.ErrDuplicateName):
		respondMessage(c, http.StatusConflict, "Sweet with this name already exists")
	case errors.Is(err, model.ErrInvalidQuantity):
		respondMessage(c, http.StatusBadRequest, "Invalid quantity")
	case errors.Is(err, model.ErrInvalidInput):
		respondMessage(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
		respondMessage(c, http.StatusInternalServerError, somethingWentWrong)
	}
}

// handleNotFound is handleError with a resource specific not-found message.
func handleNotFound(c *gin.Context, err error, message string) {
	if errors.Is(err, model.ErrNotFound) {
		respondMessage(c, http.StatusNotFound, message)
		return
	}
	handleError(c, err)
}
