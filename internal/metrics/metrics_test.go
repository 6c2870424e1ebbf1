package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_InventoryOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, reg)

	m.InventoryOperation("purchase", "success")
	m.InventoryOperation("purchase", "success")
	m.InventoryOperation("purchase", "insufficient_stock")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.inventory.WithLabelValues("purchase", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inventory.WithLabelValues("purchase", "insufficient_stock")))
}

func TestMetrics_ObserveHTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, reg)

	m.ObserveHTTP(http.MethodGet, "/api/sweets", http.StatusOK, 10*time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/sweets", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.InventoryOperation("restock", "success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sweetshop_inventory_operations_total{operation="restock",outcome="success"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
