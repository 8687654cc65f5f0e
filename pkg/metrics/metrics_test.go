package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRequest("ok", time.Second)
		m.IncRetry("rate_limit")
		m.AddRows("insights", 10)
		m.IncError("insights")
		m.IncAccount("success")
		m.ObserveRun(time.Minute, true, time.Now())
	})
}

func TestRegistry_Singleton(t *testing.T) {
	m1 := Registry("ads_sync_test")
	m2 := Registry("outro")

	assert.Same(t, m1, m2)

	before := testutil.ToFloat64(m1.RowsWritten.WithLabelValues("campaigns"))
	m1.AddRows("campaigns", 3)
	assert.Equal(t, before+3, testutil.ToFloat64(m1.RowsWritten.WithLabelValues("campaigns")))
}

func TestPush_WithoutURL(t *testing.T) {
	assert.NoError(t, Push(context.Background(), "", "ads_sync"))
}
