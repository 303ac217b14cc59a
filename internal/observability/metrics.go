package observability

import (
	"fmt"
	"sync"
	"time"
)

type counterKey struct {
	path   string
	method string
	label  string
}

// Metrics keeps in-process request and error counters, keyed by route,
// method, and status or error code. Good enough for a single instance; a
// scrape surface can read it via Snapshot.
type Metrics struct {
	mu       sync.Mutex
	requests map[counterKey]int64
	errors   map[counterKey]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[counterKey]int64),
		errors:   make(map[counterKey]int64),
	}
}

// RecordRequest counts a completed request by route, method, and status.
func (m *Metrics) RecordRequest(path, method string, status int, _ time.Duration) {
	if m == nil {
		return
	}
	key := counterKey{path: path, method: method, label: fmt.Sprintf("%d", status)}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[key]++
}

// RecordError counts a request that resolved to a domain error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := counterKey{path: path, method: method, label: code}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[key]++
}

// Snapshot returns flattened copies of the counters, keyed as
// "METHOD path label".
func (m *Metrics) Snapshot() (requests, errors map[string]int64) {
	requests = make(map[string]int64)
	errors = make(map[string]int64)
	if m == nil {
		return requests, errors
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, count := range m.requests {
		requests[key.method+" "+key.path+" "+key.label] = count
	}
	for key, count := range m.errors {
		errors[key.method+" "+key.path+" "+key.label] = count
	}
	return requests, errors
}
