// Package authz answers whether a request identity may perform an operation.
// Every function here is pure.
package authz

import (
	"net/http"

	"github.com/dtroode/sweetshop-server/internal/model"
)

// Access is the requirement a route places on the caller.
type Access int

const (
	// Authenticated is the zero value so unlisted routes are never public.
	Authenticated Access = iota
	Public
	Admin
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case Admin:
		return "admin"
	default:
		return "authenticated"
	}
}

// IsAuthenticated reports whether id carries a role.
func IsAuthenticated(id model.Identity) bool {
	return !id.Anonymous()
}

// IsAdmin reports whether id has the admin role.
func IsAdmin(id model.Identity) bool {
	return id.Role == model.RoleAdmin
}

// CurrentUser returns the subject of an authenticated identity.
func CurrentUser(id model.Identity) (string, bool) {
	if !IsAuthenticated(id) {
		return "", false
	}
	return id.Subject, true
}

// CurrentRole returns the role of an authenticated identity.
func CurrentRole(id model.Identity) (model.Role, bool) {
	if !IsAuthenticated(id) {
		return "", false
	}
	return id.Role, true
}

// Check returns nil when id satisfies access, model.ErrUnauthorized for an
// anonymous caller and model.ErrForbidden for an insufficient role.
func Check(id model.Identity, access Access) error {
	switch access {
	case Public:
		return nil
	case Admin:
		if !IsAuthenticated(id) {
			return model.ErrUnauthorized
		}
		if !IsAdmin(id) {
			return model.ErrForbidden
		}
		return nil
	default:
		if !IsAuthenticated(id) {
			return model.ErrUnauthorized
		}
		return nil
	}
}

// Route identifies an endpoint by method and path template, e.g. "/api/sweets/:id".
type Route struct {
	Method string
	Path   string
}

// Policy maps routes to their access requirement.
type Policy map[Route]Access

// Lookup returns the requirement for a route; unlisted routes require authentication.
func (p Policy) Lookup(method, path string) Access {
	if a, ok := p[Route{Method: method, Path: path}]; ok {
		return a
	}
	return Authenticated
}

// PublicPaths lists the paths that are public for any method.
func (p Policy) PublicPaths() map[string]bool {
	out := make(map[string]bool)
	for r, a := range p {
		if a == Public {
			out[r.Path] = true
		}
	}
	return out
}

// DefaultPolicy is the endpoint-to-role matrix of the shop API.
func DefaultPolicy() Policy {
	return Policy{
		{http.MethodPost, "/api/auth/signup"}:         Public,
		{http.MethodPost, "/api/auth/login"}:          Public,
		{http.MethodPost, "/api/auth/forgotPassword"}: Public,
		{http.MethodGet, "/api/auth/checkToken"}:      Authenticated,
		{http.MethodPost, "/api/auth/update"}:         Admin,

		{http.MethodGet, "/api/sweets"}:               Authenticated,
		{http.MethodGet, "/api/sweets/search"}:        Authenticated,
		{http.MethodPost, "/api/sweets"}:              Authenticated,
		{http.MethodPut, "/api/sweets/:id"}:           Authenticated,
		{http.MethodDelete, "/api/sweets/:id"}:        Admin,
		{http.MethodPost, "/api/sweets/:id/purchase"}: Authenticated,
		{http.MethodPost, "/api/sweets/:id/restock"}:  Admin,
		{http.MethodPut, "/api/sweets/:id/image"}:     Authenticated,
		{http.MethodGet, "/api/sweets/:id/image"}:     Authenticated,

		{http.MethodGet, "/health"}:  Public,
		{http.MethodGet, "/metrics"}: Public,
	}
}
