package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCatalogMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCatalogMetrics(reg)

	m.IncSuccess("list_products")
	m.IncSuccess("list_products")
	m.IncFailure("get_product")
	m.ObserveDuration("list_products", 50*time.Millisecond)

	if got := testutil.ToFloat64(m.success.WithLabelValues("list_products")); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(m.failure.WithLabelValues("get_product")); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
}

func TestCatalogMetricsNilSafe(t *testing.T) {
	var m *CatalogMetrics
	m.IncSuccess("x")
	m.IncFailure("")
	m.ObserveDuration("x", time.Second)

	empty := NewCatalogMetrics(nil)
	empty.IncSuccess("x")
}
