package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/sweetshop-server/internal/logger"
	"github.com/dtroode/sweetshop-server/internal/model"
)

const bearerPrefix = "Bearer "

// IdentityResolver turns a raw bearer token into a request identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) model.Identity
}

// Identity attaches the caller identity to every request context.
// It never rejects a request; Authorize decides what an identity may do.
type Identity struct {
	resolver       IdentityResolver
	contextManager model.ContextManager
	publicPaths    map[string]bool
	logger         *logger.Logger
}

// NewIdentity creates a new Identity middleware. Requests whose route is in
// publicPaths are left anonymous without looking at the Authorization header.
func NewIdentity(
	resolver IdentityResolver,
	contextManager model.ContextManager,
	publicPaths map[string]bool,
	logger *logger.Logger,
) *Identity {
	return &Identity{
		resolver:       resolver,
		contextManager: contextManager,
		publicPaths:    publicPaths,
		logger:         logger,
	}
}

// Handle resolves the bearer token, if any, and stores the result in c.Request.
func (m *Identity) Handle(c *gin.Context) {
	if m.publicPaths[c.FullPath()] {
		c.Next()
		return
	}

	identity := model.Identity{}
	if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
		identity = m.resolver.Resolve(c.Request.Context(), token)
	}

	if !identity.Anonymous() {
		m.logger.Debug("Identity middleware: request authenticated",
			"subject", identity.Subject,
			"role", identity.Role)
	}

	ctx := m.contextManager.SetIdentityToContext(c.Request.Context(), identity)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
