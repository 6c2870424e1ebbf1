package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver records served requests.
type RequestObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// Metrics reports every request to a RequestObserver, labelled by route template.
type Metrics struct {
	observer RequestObserver
}

// NewMetrics creates a new Metrics middleware.
func NewMetrics(observer RequestObserver) *Metrics {
	return &Metrics{observer: observer}
}

func (m *Metrics) Handle(c *gin.Context) {
	start := time.Now()
	c.Next()
	m.observer.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
}
