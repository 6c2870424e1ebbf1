package context

import (
	"context"

	"github.com/dtroode/sweetshop-server/internal/model"
)

type identityKey struct{}

// Manager stores the request identity in a request context.
// Values are copied in and out, so handlers cannot mutate a stored identity.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a child context carrying identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentityFromContext returns the stored identity, or the anonymous identity
// when none was stored.
func (m *Manager) GetIdentityFromContext(ctx context.Context) model.Identity {
	identity, ok := ctx.Value(identityKey{}).(model.Identity)
	if !ok {
		return model.Identity{}
	}
	return identity
}
