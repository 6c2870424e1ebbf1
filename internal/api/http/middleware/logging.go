package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/sweetshop-server/internal/logger"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// Logging assigns a request id and logs each request and its result.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, route, status and duration for each request.
func (l *Logging) Handle(c *gin.Context) {
	start := time.Now()

	requestID := c.GetHeader(RequestIDHeader)
	if _, err := uuid.Parse(requestID); err != nil {
		requestID = uuid.NewString()
	}
	c.Set(RequestIDKey, requestID)
	c.Header(RequestIDHeader, requestID)

	c.Next()

	status := c.Writer.Status()
	attrs := []any{
		"request_id", requestID,
		"method", c.Request.Method,
		"route", c.FullPath(),
		"path", c.Request.URL.Path,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	}

	switch {
	case status >= 500:
		l.logger.Error("HTTP request completed", append(attrs, "errors", c.Errors.String())...)
	case len(c.Errors) > 0:
		l.logger.Warn("HTTP request completed", append(attrs, "errors", c.Errors.String())...)
	default:
		l.logger.Info("HTTP request completed", attrs...)
	}
}
