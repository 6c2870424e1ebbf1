package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token expired")
	ErrWrongCredentials = errors.New("wrong credentials")
	ErrPendingApproval  = errors.New("account is pending approval")
	ErrEmailTaken       = errors.New("email is already registered")

	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("insufficient role")

	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrDuplicateName     = errors.New("sweet with this name already exists")
)

// InsufficientStockError reports the quantity that was available when a purchase was rejected.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: available quantity %d", e.Available)
}

// Is makes errors.Is(err, ErrInsufficientStock) hold for any InsufficientStockError.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
