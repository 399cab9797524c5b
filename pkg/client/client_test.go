package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sternrassler/hn-news-proxy/internal/testutil"
)

type testItem struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func newTestClient(t *testing.T, mock *testutil.MockHN) *Client {
	t.Helper()

	c, err := New(Config{
		NewStoriesURL:   mock.NewStoriesURL(),
		ItemURLTemplate: mock.ItemURLTemplate(),
		UserAgent:       "TestApp/1.0.0",
		Timeout:         2 * time.Second,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		errorMsg string
	}{
		{
			name:   "valid printf template",
			config: Config{NewStoriesURL: "http://x/new.json", ItemURLTemplate: "http://x/item/%d.json"},
		},
		{
			name:   "valid indexed template",
			config: Config{NewStoriesURL: "http://x/new.json", ItemURLTemplate: "http://x/item/{0}.json"},
		},
		{
			name:     "missing list url",
			config:   Config{ItemURLTemplate: "http://x/item/%d.json"},
			errorMsg: "new stories url is required",
		},
		{
			name:     "missing item template",
			config:   Config{NewStoriesURL: "http://x/new.json"},
			errorMsg: "item url template is required",
		},
		{
			name:     "template without placeholder",
			config:   Config{NewStoriesURL: "http://x/new.json", ItemURLTemplate: "http://x/item.json"},
			errorMsg: "item url template must contain exactly one placeholder (got 0)",
		},
		{
			name:     "template with two placeholders",
			config:   Config{NewStoriesURL: "http://x/new.json", ItemURLTemplate: "http://x/%d/%d.json"},
			errorMsg: "item url template must contain exactly one placeholder (got 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.config)

			if tt.errorMsg != "" {
				if err == nil {
					t.Fatalf("Expected error but got nil")
				}
				if err.Error() != tt.errorMsg {
					t.Errorf("Error message = %q, want %q", err.Error(), tt.errorMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if c == nil {
				t.Fatal("Expected client but got nil")
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !strings.HasSuffix(cfg.NewStoriesURL, "/v0/newstories.json") {
		t.Errorf("NewStoriesURL = %q", cfg.NewStoriesURL)
	}
	if !strings.Contains(cfg.ItemURLTemplate, "%d") {
		t.Errorf("ItemURLTemplate = %q, want a %%d placeholder", cfg.ItemURLTemplate)
	}
	if cfg.Timeout <= 0 {
		t.Errorf("Timeout = %v, want > 0", cfg.Timeout)
	}
	if _, err := New(cfg); err != nil {
		t.Errorf("DefaultConfig should be valid: %v", err)
	}
}

func TestItemURL(t *testing.T) {
	tests := []struct {
		template string
		id       int
		want     string
	}{
		{"https://hn/v0/item/%d.json", 8863, "https://hn/v0/item/8863.json"},
		{"https://hn/v0/item/{0}.json", 42, "https://hn/v0/item/42.json"},
		{"https://hn/v0/item/%d.json?print=pretty%20yes", 7, "https://hn/v0/item/7.json?print=pretty%20yes"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			c, err := New(Config{NewStoriesURL: "https://hn/v0/newstories.json", ItemURLTemplate: tt.template})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := c.ItemURL(tt.id); got != tt.want {
				t.Errorf("ItemURL(%d) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestNewStoryIDs(t *testing.T) {
	mock := testutil.NewMockHN()
	defer mock.Close()
	mock.SetIDs(3, 2, 1)

	ids, err := newTestClient(t, mock).NewStoryIDs(context.Background())
	if err != nil {
		t.Fatalf("NewStoryIDs() error = %v", err)
	}
	if len(ids) != 3 || ids[0] != 3 || ids[2] != 1 {
		t.Errorf("NewStoryIDs() = %v, want [3 2 1]", ids)
	}
}

func TestItem(t *testing.T) {
	mock := testutil.NewMockHN()
	defer mock.Close()
	mock.SetStory(8863, "My YC app: Dropbox")

	var item testItem
	if err := newTestClient(t, mock).Item(context.Background(), 8863, &item); err != nil {
		t.Fatalf("Item() error = %v", err)
	}
	if item.ID != 8863 || item.Title != "My YC app: Dropbox" {
		t.Errorf("Item() = %+v", item)
	}
	if mock.ItemRequestCount(8863) != 1 {
		t.Errorf("Expected one request for item, got %d", mock.ItemRequestCount(8863))
	}
}

func TestGetJSON_ErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		resp       testutil.MockResponse
		wantClass  ErrorClass
		wantStatus int
		wantNull   bool
	}{
		{
			name:       "server error",
			resp:       testutil.NewServerErrorResponse(),
			wantClass:  ErrorClassServer,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "client error",
			resp:       testutil.MockResponse{StatusCode: http.StatusForbidden, Body: "{}"},
			wantClass:  ErrorClassClient,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "malformed body",
			resp:       testutil.NewMalformedResponse(),
			wantClass:  ErrorClassDecode,
			wantStatus: http.StatusOK,
		},
		{
			name:       "null body",
			resp:       testutil.MockResponse{StatusCode: http.StatusOK, Body: "null"},
			wantClass:  ErrorClassDecode,
			wantStatus: http.StatusOK,
			wantNull:   true,
		},
		{
			name:       "empty body",
			resp:       testutil.MockResponse{StatusCode: http.StatusOK},
			wantClass:  ErrorClassDecode,
			wantStatus: http.StatusOK,
			wantNull:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockHN()
			defer mock.Close()
			mock.SetItem(1, tt.resp)

			var item testItem
			err := newTestClient(t, mock).Item(context.Background(), 1, &item)

			var upErr *UpstreamError
			if !errors.As(err, &upErr) {
				t.Fatalf("Expected *UpstreamError, got %T (%v)", err, err)
			}
			if upErr.Class != tt.wantClass {
				t.Errorf("Class = %s, want %s", upErr.Class, tt.wantClass)
			}
			if upErr.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", upErr.StatusCode, tt.wantStatus)
			}
			if got := errors.Is(err, ErrNullBody); got != tt.wantNull {
				t.Errorf("errors.Is(err, ErrNullBody) = %v, want %v", got, tt.wantNull)
			}
		})
	}
}

func TestGetJSON_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := New(Config{NewStoriesURL: url + "/new.json", ItemURLTemplate: url + "/item/%d.json"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = c.NewStoryIDs(context.Background())

	var upErr *UpstreamError
	if !errors.As(err, &upErr) || upErr.Class != ErrorClassNetwork {
		t.Fatalf("Expected network UpstreamError, got %v", err)
	}
}

func TestGetJSON_ContextCancelled(t *testing.T) {
	mock := testutil.NewMockHN()
	defer mock.Close()
	mock.SetItem(1, testutil.MockResponse{StatusCode: http.StatusOK, Body: `{"id":1}`, Delay: 500 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var item testItem
	err := newTestClient(t, mock).Item(ctx, 1, &item)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded, got %v", err)
	}
}

func TestGetJSON_HeadersSet(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`[1]`))
	}))
	defer server.Close()

	c, err := New(Config{
		NewStoriesURL:   server.URL,
		ItemURLTemplate: server.URL + "/%d",
		UserAgent:       "TestApp/1.0.0 (test@example.com)",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c.SetHTTPClient(server.Client())

	if _, err := c.NewStoryIDs(context.Background()); err != nil {
		t.Fatalf("NewStoryIDs() error = %v", err)
	}
	if gotUA != "TestApp/1.0.0 (test@example.com)" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
}
