package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"asyncmock/internal/metrics"
)

// TestMetrics is a call metrics set on a private registry, served over HTTP
type TestMetrics struct {
	t        *testing.T
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	server   *httptest.Server
}

// NewTestMetrics creates call metrics in namespace and a scrape endpoint for them
func NewTestMetrics(t *testing.T, namespace string) *TestMetrics {
	t.Helper()

	registry := prometheus.NewRegistry()
	m, err := metrics.New(namespace, registry)
	require.NoError(t, err, "Failed to create metrics")

	server := httptest.NewServer(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	t.Cleanup(func() {
		server.Close()
		m.Close()
	})

	return &TestMetrics{
		t:        t,
		registry: registry,
		metrics:  m,
		server:   server,
	}
}

// Metrics returns the collectors to hand to a mock
func (m *TestMetrics) Metrics() *metrics.Metrics {
	return m.metrics
}

// URL returns the scrape endpoint
func (m *TestMetrics) URL() string {
	return m.server.URL
}

// Calls returns the call count for shape, function and outcome
func (m *TestMetrics) Calls(shape, function, outcome string) float64 {
	return promtest.ToFloat64(m.metrics.CallsTotal.WithLabelValues(shape, function, outcome))
}

// Failures returns the failure count for shape
func (m *TestMetrics) Failures(shape string) float64 {
	return promtest.ToFloat64(m.metrics.FailuresTotal.WithLabelValues(shape))
}

// RequireCalls asserts the call count for shape, function and outcome
func (m *TestMetrics) RequireCalls(shape, function, outcome string, expected float64) {
	m.t.Helper()
	require.Equal(m.t, expected, m.Calls(shape, function, outcome), "calls{%s,%s,%s}", shape, function, outcome)
}

// Scrape returns the exposition text served on URL
func (m *TestMetrics) Scrape() string {
	m.t.Helper()

	resp, err := http.Get(m.URL())
	require.NoError(m.t, err, "Failed to scrape metrics")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(m.t, err, "Failed to read metrics")
	return string(body)
}

// RequireScrapeContains asserts that the scraped output contains every string
func (m *TestMetrics) RequireScrapeContains(expected ...string) {
	m.t.Helper()
	output := m.Scrape()
	for _, exp := range expected {
		require.Contains(m.t, output, exp)
	}
}
