package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/sweetshop-server/internal/logger"
	"github.com/dtroode/sweetshop-server/internal/model"
)

// IdentityResolver turns a bearer token into a request identity.
// It holds no per-request state and is safe for concurrent use.
type IdentityResolver struct {
	tokenCodec   model.TokenCodec
	accountStore model.AccountStore
	logger       *logger.Logger
}

func NewIdentityResolver(tokenCodec model.TokenCodec, accountStore model.AccountStore, logger *logger.Logger) *IdentityResolver {
	return &IdentityResolver{
		tokenCodec:   tokenCodec,
		accountStore: accountStore,
		logger:       logger,
	}
}

// Resolve returns the identity carried by token, or the anonymous identity when
// the token is malformed, forged, expired, or names an account that no longer matches.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) model.Identity {
	if token == "" {
		return model.Identity{}
	}

	claims, err := r.verify(token)
	if err != nil {
		r.logger.Debug("Identity resolver: token rejected", "subject", claims.Subject, "error", err.Error())
		return model.Identity{}
	}

	account, err := r.accountStore.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			r.logger.Error("Identity resolver: failed to get account by email",
				"subject", claims.Subject,
				"error", err.Error())
		}
		return model.Identity{}
	}
	if account.Email != claims.Subject {
		r.logger.Debug("Identity resolver: subject does not match account", "subject", claims.Subject)
		return model.Identity{}
	}

	return model.Identity{
		Subject:   claims.Subject,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt,
	}
}

// verify decodes token and checks its role and expiry. Rejections wrap
// model.ErrInvalidToken or model.ErrExpiredToken.
func (r *IdentityResolver) verify(token string) (model.Claims, error) {
	claims, err := r.tokenCodec.Decode(token)
	if err != nil {
		if !errors.Is(err, model.ErrInvalidToken) {
			err = fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
		}
		return model.Claims{}, err
	}
	if !claims.Role.Valid() {
		return claims, fmt.Errorf("%w: unknown role %q", model.ErrInvalidToken, claims.Role)
	}
	if r.tokenCodec.IsExpired(claims) {
		return claims, fmt.Errorf("%w: expired at %s", model.ErrExpiredToken, claims.ExpiresAt.Format(time.RFC3339))
	}
	return claims, nil
}
