package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/tickets/", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/tickets/", "GET", 200, 3*time.Millisecond)
	m.RecordRequest("/tickets/", "GET", 404, time.Millisecond)
	m.RecordError("/tickets/", "GET", "NOT_FOUND")

	assert.Equal(t, int64(2), m.RequestCount("/tickets/", "GET", 200))
	assert.Equal(t, int64(1), m.RequestCount("/tickets/", "GET", 404))
	assert.Equal(t, int64(0), m.RequestCount("/tickets/", "POST", 200))
	assert.Equal(t, 8*time.Millisecond, m.TotalLatency("/tickets/", "GET", 200))
	assert.Equal(t, int64(1), m.ErrorCount("/tickets/", "GET", "NOT_FOUND"))
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/x", "GET", 200, 0)
	m.RecordError("/x", "GET", "INTERNAL_ERROR")
}
