package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/sweetshop-server/internal/logger"
	"github.com/dtroode/sweetshop-server/internal/model"
)

// dummyPassword is hashed once and compared against when the email is unknown,
// so both login failure paths run bcrypt.
const dummyPassword = "sweetshop-unknown-account"

type Auth struct {
	accountStore model.AccountStore
	tokenCodec   model.TokenCodec
	logger       *logger.Logger
	bcryptCost   int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuth(
	accountStore model.AccountStore,
	tokenCodec model.TokenCodec,
	logger *logger.Logger,
	bcryptCost int,
) *Auth {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Auth{
		accountStore: accountStore,
		tokenCodec:   tokenCodec,
		logger:       logger,
		bcryptCost:   bcryptCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login verifies the credentials and issues a token for approved accounts.
// Unknown email and wrong password both yield ErrWrongCredentials; the pending
// state is revealed only after the password matched.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	a.logger.Debug("Auth service: login attempt", "email", email)

	account, err := a.accountStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.compareDummy(password)
		a.logger.Info("Auth service: login rejected", "email", email, "reason", "unknown email")
		return "", model.ErrWrongCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get account by email",
			"email", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to get account by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		a.logger.Info("Auth service: login rejected", "email", email, "reason", "password mismatch")
		return "", model.ErrWrongCredentials
	}

	if !account.Approved() {
		a.logger.Info("Auth service: login rejected", "email", email, "reason", "pending approval")
		return "", model.ErrPendingApproval
	}

	token, err := a.tokenCodec.Issue(account.Email, account.Role)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"email", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login succeeded", "email", email, "role", account.Role)

	return token, nil
}

func (a *Auth) compareDummy(password string) {
	a.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), a.bcryptCost)
		if err != nil {
			a.logger.Error("Auth service: failed to prepare dummy hash", "error", err.Error())
			return
		}
		a.dummyHash = hash
	})
	_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(password))
}

// SignUp registers a regular account awaiting admin approval.
func (a *Auth) SignUp(ctx context.Context, params model.SignUpParams) (model.Account, error) {
	return a.register(ctx, params, model.RoleUser, model.StatusPending)
}

// CreateAdmin registers an approved administrator. Used for bootstrap only.
func (a *Auth) CreateAdmin(ctx context.Context, params model.SignUpParams) (model.Account, error) {
	return a.register(ctx, params, model.RoleAdmin, model.StatusApproved)
}

func (a *Auth) register(ctx context.Context, params model.SignUpParams, role model.Role, status model.AccountStatus) (model.Account, error) {
	params.Email = normalizeEmail(params.Email)
	params.Name = strings.TrimSpace(params.Name)
	params.ContactNumber = strings.TrimSpace(params.ContactNumber)

	if err := validateSignUp(params); err != nil {
		return model.Account{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), a.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return model.Account{}, fmt.Errorf("%w: password is longer than 72 bytes", model.ErrInvalidInput)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := a.accountStore.Create(ctx, model.Account{
		Name:          params.Name,
		ContactNumber: params.ContactNumber,
		Email:         params.Email,
		PasswordHash:  string(hash),
		Status:        status,
		Role:          role,
	})
	if errors.Is(err, model.ErrEmailTaken) {
		a.logger.Info("Auth service: email already registered", "email", params.Email)
		return model.Account{}, err
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create account",
			"email", params.Email,
			"error", err.Error())
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	a.logger.Info("Auth service: account registered",
		"email", account.Email,
		"id", account.ID,
		"role", account.Role,
		"status", account.Status)

	return account, nil
}

func validateSignUp(p model.SignUpParams) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", model.ErrInvalidInput)
	case p.ContactNumber == "":
		return fmt.Errorf("%w: contactNumber is required", model.ErrInvalidInput)
	case p.Email == "" || !strings.Contains(p.Email, "@"):
		return fmt.Errorf("%w: a valid email is required", model.ErrInvalidInput)
	case p.Password == "":
		return fmt.Errorf("%w: password is required", model.ErrInvalidInput)
	}
	return nil
}

// UpdateStatus changes an account's approval status.
func (a *Auth) UpdateStatus(ctx context.Context, id int64, status model.AccountStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", model.ErrInvalidInput, status)
	}

	n, err := a.accountStore.UpdateStatus(ctx, id, status)
	if err != nil {
		a.logger.Error("Auth service: failed to update account status",
			"id", id,
			"error", err.Error())
		return fmt.Errorf("failed to update account status: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}

	a.logger.Info("Auth service: account status updated", "id", id, "status", status)

	return nil
}
