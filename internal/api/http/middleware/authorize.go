package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/sweetshop-server/internal/authz"
	"github.com/dtroode/sweetshop-server/internal/logger"
	"github.com/dtroode/sweetshop-server/internal/model"
)

// Authorize rejects requests whose identity does not satisfy the route policy.
// It runs before any handler, so a missing resource is never revealed to a
// caller that may not access the route.
type Authorize struct {
	policy         authz.Policy
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthorize creates a new Authorize middleware over policy.
func NewAuthorize(policy authz.Policy, contextManager model.ContextManager, logger *logger.Logger) *Authorize {
	return &Authorize{
		policy:         policy,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle consults the policy for the matched route template.
func (m *Authorize) Handle(c *gin.Context) {
	route := c.FullPath()
	access := m.policy.Lookup(c.Request.Method, route)
	identity := m.contextManager.GetIdentityFromContext(c.Request.Context())

	err := authz.Check(identity, access)
	if err == nil {
		c.Next()
		return
	}

	m.logger.Debug("Authorize middleware: request rejected",
		"method", c.Request.Method,
		"route", route,
		"access", access.String(),
		"subject", identity.Subject,
		"error", err.Error())

	if errors.Is(err, model.ErrForbidden) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
}
