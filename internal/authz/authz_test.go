package authz

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/sweetshop-server/internal/model"
)

var (
	anonymous = model.Identity{}
	user      = model.Identity{Subject: "user@example.com", Role: model.RoleUser}
	admin     = model.Identity{Subject: "admin@example.com", Role: model.RoleAdmin}
)

func TestPredicates(t *testing.T) {
	assert.False(t, IsAuthenticated(anonymous))
	assert.True(t, IsAuthenticated(user))
	assert.True(t, IsAuthenticated(admin))

	assert.False(t, IsAdmin(anonymous))
	assert.False(t, IsAdmin(user))
	assert.True(t, IsAdmin(admin))

	_, ok := CurrentUser(anonymous)
	assert.False(t, ok)
	sub, ok := CurrentUser(user)
	assert.True(t, ok)
	assert.Equal(t, "user@example.com", sub)

	_, ok = CurrentRole(anonymous)
	assert.False(t, ok)
	role, ok := CurrentRole(admin)
	assert.True(t, ok)
	assert.Equal(t, model.RoleAdmin, role)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		identity model.Identity
		access   Access
		want     error
	}{
		{"public anonymous", anonymous, Public, nil},
		{"authenticated anonymous", anonymous, Authenticated, model.ErrUnauthorized},
		{"authenticated user", user, Authenticated, nil},
		{"authenticated admin", admin, Authenticated, nil},
		{"admin anonymous", anonymous, Admin, model.ErrUnauthorized},
		{"admin user", user, Admin, model.ErrForbidden},
		{"admin admin", admin, Admin, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Check(tt.identity, tt.access))
		})
	}
}

func TestDefaultPolicy_Matrix(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		method string
		path   string
		want   Access
	}{
		{http.MethodGet, "/api/sweets", Authenticated},
		{http.MethodGet, "/api/sweets/search", Authenticated},
		{http.MethodPost, "/api/sweets", Authenticated},
		{http.MethodPut, "/api/sweets/:id", Authenticated},
		{http.MethodDelete, "/api/sweets/:id", Admin},
		{http.MethodPost, "/api/sweets/:id/purchase", Authenticated},
		{http.MethodPost, "/api/sweets/:id/restock", Admin},
		{http.MethodPost, "/api/auth/update", Admin},
		{http.MethodPost, "/api/auth/signup", Public},
		{http.MethodPost, "/api/auth/login", Public},
		{http.MethodPost, "/api/auth/forgotPassword", Public},
		{http.MethodPatch, "/api/unlisted", Authenticated},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Lookup(tt.method, tt.path), "%s %s", tt.method, tt.path)
	}
}

func TestPolicy_PublicPaths(t *testing.T) {
	paths := DefaultPolicy().PublicPaths()

	assert.True(t, paths["/api/auth/login"])
	assert.True(t, paths["/api/auth/signup"])
	assert.True(t, paths["/api/auth/forgotPassword"])
	assert.False(t, paths["/api/sweets"])
	assert.Equal(t, "admin", Admin.String())
}
