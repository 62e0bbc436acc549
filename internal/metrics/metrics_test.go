package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCall(t *testing.T) {
	m, err := New("test", nil)
	require.NoError(t, err)
	defer m.Close()

	m.ObserveCall("single", "Client.Get", OutcomeResolved)
	m.ObserveCall("single", "Client.Get", OutcomeResolved)
	m.ObserveCall("maybe", "Client.Find", OutcomeUnexpected)
	m.ObserveCall("single", "Client.Any", OutcomeWrongType)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CallsTotal.WithLabelValues("single", "Client.Get", OutcomeResolved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CallsTotal.WithLabelValues("maybe", "Client.Find", OutcomeUnexpected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FailuresTotal.WithLabelValues("single")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FailuresTotal.WithLabelValues("maybe")))
}

func TestNilMetricsIgnoresCalls(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveCall("single", "f", OutcomeResolved) })
}

func TestRegisterAndClose(t *testing.T) {
	reg := prometheus.NewRegistry()

	m, err := New("asyncmock", reg)
	require.NoError(t, err)

	_, err = New("asyncmock", reg)
	require.Error(t, err, "duplicate registration must fail")

	m.ObserveCall("observable", "Feed.Watch", OutcomeResolved)
	count, err := testutil.GatherAndCount(reg, "asyncmock_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	m.Close()
	again, err := New("asyncmock", reg)
	require.NoError(t, err)
	again.Close()
}
