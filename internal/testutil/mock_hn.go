// Package testutil provides testing utilities for the news proxy.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Paths served by MockHN.
const (
	NewStoriesPath = "/v0/newstories.json"
	itemPrefix     = "/v0/item/"
	itemSuffix     = ".json"
)

// MockResponse defines a canned response for one path.
type MockResponse struct {
	StatusCode int
	Body       string
	Delay      time.Duration
}

// MockHN is a configurable mock of the Hacker News item API.
type MockHN struct {
	server *httptest.Server

	mu        sync.RWMutex
	ids       []int
	items     map[int]MockResponse
	overrides map[string]MockResponse
	counts    map[string]int
	total     int
}

// NewMockHN starts a mock upstream serving an empty identifier list.
func NewMockHN() *MockHN {
	mock := &MockHN{
		ids:       []int{},
		items:     make(map[int]MockResponse),
		overrides: make(map[string]MockResponse),
		counts:    make(map[string]int),
	}
	mock.server = httptest.NewServer(http.HandlerFunc(mock.handle))
	return mock
}

// URL returns the mock server base URL.
func (m *MockHN) URL() string {
	return m.server.URL
}

// NewStoriesURL returns the identifier list URL.
func (m *MockHN) NewStoriesURL() string {
	return m.server.URL + NewStoriesPath
}

// ItemURLTemplate returns the item URL template with a %d placeholder.
func (m *MockHN) ItemURLTemplate() string {
	return m.server.URL + itemPrefix + "%d" + itemSuffix
}

// Close shuts down the mock server.
func (m *MockHN) Close() {
	m.server.Close()
}

// SetIDs sets the identifier list returned by the new stories endpoint.
func (m *MockHN) SetIDs(ids ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids = append([]int{}, ids...)
}

// SetStory serves a story with the given title for id.
func (m *MockHN) SetStory(id int, title string) {
	body, _ := json.Marshal(map[string]any{
		"id":    id,
		"type":  "story",
		"by":    "tester",
		"title": title,
		"url":   fmt.Sprintf("http://test/%d", id),
		"score": 1,
	})
	m.SetItem(id, MockResponse{StatusCode: http.StatusOK, Body: string(body)})
}

// SetItem configures the raw response for one item.
func (m *MockHN) SetItem(id int, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = resp
}

// SetResponse overrides the response for any path.
func (m *MockHN) SetResponse(path string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[path] = resp
}

// RequestCount returns the number of requests made to path.
func (m *MockHN) RequestCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counts[path]
}

// ItemRequestCount returns the number of requests made for item id.
func (m *MockHN) ItemRequestCount(id int) int {
	return m.RequestCount(ItemPath(id))
}

// TotalRequests returns the number of requests made to the server.
func (m *MockHN) TotalRequests() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total
}

// ItemPath returns the request path for item id.
func ItemPath(id int) string {
	return itemPrefix + strconv.Itoa(id) + itemSuffix
}

func (m *MockHN) handle(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.counts[r.URL.Path]++
	m.total++
	override, overridden := m.overrides[r.URL.Path]
	m.mu.Unlock()

	if overridden {
		write(w, override)
		return
	}

	switch {
	case r.URL.Path == NewStoriesPath:
		m.mu.RLock()
		body, _ := json.Marshal(m.ids)
		m.mu.RUnlock()
		write(w, MockResponse{StatusCode: http.StatusOK, Body: string(body)})

	case strings.HasPrefix(r.URL.Path, itemPrefix) && strings.HasSuffix(r.URL.Path, itemSuffix):
		raw := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, itemPrefix), itemSuffix)
		id, err := strconv.Atoi(raw)
		if err != nil {
			write(w, MockResponse{StatusCode: http.StatusBadRequest, Body: `{"error":"bad id"}`})
			return
		}

		m.mu.RLock()
		resp, ok := m.items[id]
		m.mu.RUnlock()
		if !ok {
			// The real API answers unknown items with a JSON null.
			resp = MockResponse{StatusCode: http.StatusOK, Body: "null"}
		}
		write(w, resp)

	default:
		write(w, MockResponse{StatusCode: http.StatusNotFound, Body: `{"error":"not found"}`})
	}
}

func write(w http.ResponseWriter, resp MockResponse) {
	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		w.Write([]byte(resp.Body))
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "Internal server error"}`,
	}
}

// NewMalformedResponse creates a 200 response with an unparsable body.
func NewMalformedResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"id": 1, "title": `,
	}
}
