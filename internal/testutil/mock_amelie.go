// Package testutil provides testing utilities for the AMELIE batch
// runner.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// RecordedRequest captures the decoded form fields of one request.
type RecordedRequest struct {
	Genes      []string
	Phenotypes []string
}

// MockAmelie is a configurable mock AMELIE API server for testing. It
// serves queued JSON bodies in order (repeating the last one when the
// queue is exhausted) and records every request's form fields.
type MockAmelie struct {
	server *httptest.Server

	mu         sync.Mutex
	queue      []string
	statusCode int

	// Tracking
	RequestCount int
	Requests     []RecordedRequest
}

// NewMockAmelie creates a mock server answering 200 with an empty
// evidence array until configured otherwise.
func NewMockAmelie() *MockAmelie {
	mock := &MockAmelie{statusCode: http.StatusOK}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()

		mock.mu.Lock()
		mock.RequestCount++
		mock.Requests = append(mock.Requests, RecordedRequest{
			Genes:      splitField(r.PostFormValue("genes")),
			Phenotypes: splitField(r.PostFormValue("phenotypes")),
		})
		status := mock.statusCode
		body := "[]"
		if len(mock.queue) > 0 {
			body = mock.queue[0]
			if len(mock.queue) > 1 {
				mock.queue = mock.queue[1:]
			}
		}
		mock.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status >= 200 && status < 300 {
			w.Write([]byte(body))
		}
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockAmelie) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAmelie) Close() {
	m.server.Close()
}

// QueueResponse appends a JSON body to the response queue. The last
// queued body keeps being served once the queue runs out.
func (m *MockAmelie) QueueResponse(body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, body)
}

// SetStatus makes all subsequent responses use the given status code.
func (m *MockAmelie) SetStatus(code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusCode = code
}

// GetRequestCount returns the number of requests received.
func (m *MockAmelie) GetRequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RequestCount
}

// GetRequests returns a copy of the recorded requests.
func (m *MockAmelie) GetRequests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordedRequest, len(m.Requests))
	copy(out, m.Requests)
	return out
}

func splitField(v string) []string {
	if v == "" {
		return nil
	}
	return strings.Split(v, ",")
}
