package model

import (
	"context"
	"time"
)

// Role is the authorization role carried by an account and its tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// AccountStatus is the approval state of an account.
type AccountStatus string

const (
	StatusPending  AccountStatus = "pending"
	StatusApproved AccountStatus = "approved"
)

// Valid reports whether s is one of the known statuses.
func (s AccountStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved
}

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
	// UpdateStatus returns the number of affected rows.
	UpdateStatus(ctx context.Context, id int64, status AccountStatus) (int64, error)
}

// Account represents a registered shop user with authentication material.
type Account struct {
	ID            int64
	Name          string
	ContactNumber string
	Email         string
	PasswordHash  string
	Status        AccountStatus
	Role          Role
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Approved reports whether the account may log in.
func (a Account) Approved() bool {
	return a.Status == StatusApproved
}

// SignUpParams carries the registration form.
type SignUpParams struct {
	Name          string
	ContactNumber string
	Email         string
	Password      string
}
