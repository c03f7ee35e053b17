package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-process counters per route, method and outcome. Counters
// reset with the process; there is no exposition endpoint.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]int64
	latency  map[string]time.Duration
	errors   map[string]int64
}

// NewMetrics initializes the counter maps.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]int64),
		latency:  make(map[string]time.Duration),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts a completed request and accumulates its latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := outcomeKey(path, method, strconv.Itoa(status))
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[key]++
	m.latency[key] += duration
}

// RecordError counts a request that ended in the given domain error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[outcomeKey(path, method, code)]++
}

// RequestCount returns how many requests were recorded for a route and status.
func (m *Metrics) RequestCount(path, method string, status int) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[outcomeKey(path, method, strconv.Itoa(status))]
}

// ErrorCount returns how many errors were recorded for a route and code.
func (m *Metrics) ErrorCount(path, method, code string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[outcomeKey(path, method, code)]
}

// TotalLatency returns the accumulated latency for a route and status.
func (m *Metrics) TotalLatency(path, method string, status int) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latency[outcomeKey(path, method, strconv.Itoa(status))]
}

func outcomeKey(path, method, outcome string) string {
	return method + " " + path + " " + outcome
}
