// Package client provides the HTTP client for the Hacker News item API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/hn-news-proxy/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for upstream requests.
var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hn_upstream_requests_total",
		Help: "Total upstream requests by endpoint and status",
	}, []string{"endpoint", "status"})

	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hn_upstream_request_duration_seconds",
		Help:    "Upstream request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"endpoint"})

	upstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hn_upstream_errors_total",
		Help: "Total upstream errors by class",
	}, []string{"class"})
)

// Logical endpoint names used as metric labels.
const (
	EndpointNewStories = "new_stories"
	EndpointItem       = "item"
)

const (
	// itemPlaceholder is the identifier placeholder in ItemURLTemplate.
	itemPlaceholder = "%d"

	// maxBodyBytes caps how much of an upstream response is read.
	maxBodyBytes = 8 << 20
)

// Config holds the client configuration.
type Config struct {
	// NewStoriesURL returns a JSON array of the newest story identifiers.
	NewStoriesURL string

	// ItemURLTemplate returns one item; "%d" or "{0}" marks the identifier.
	ItemURLTemplate string

	// UserAgent sent with every request.
	UserAgent string

	// Timeout per upstream request.
	Timeout time.Duration
}

// DefaultConfig returns the configuration for the public Hacker News API.
func DefaultConfig() Config {
	return Config{
		NewStoriesURL:   "https://hacker-news.firebaseio.com/v0/newstories.json",
		ItemURLTemplate: "https://hacker-news.firebaseio.com/v0/item/%d.json",
		UserAgent:       "hn-news-proxy/1.0",
		Timeout:         10 * time.Second,
	}
}

// Client fetches identifier lists and items from upstream.
type Client struct {
	httpClient   *http.Client
	config       Config
	itemTemplate string
	logger       zerolog.Logger
}

// New creates a new upstream client.
func New(cfg Config) (*Client, error) {
	if cfg.NewStoriesURL == "" {
		return nil, fmt.Errorf("new stories url is required")
	}
	if cfg.ItemURLTemplate == "" {
		return nil, fmt.Errorf("item url template is required")
	}

	tmpl := normalizeTemplate(cfg.ItemURLTemplate)
	if n := strings.Count(tmpl, itemPlaceholder); n != 1 {
		return nil, fmt.Errorf("item url template must contain exactly one placeholder (got %d)", n)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config:       cfg,
		itemTemplate: tmpl,
		logger:       logging.NewLogger("hn-client"),
	}, nil
}

// normalizeTemplate rewrites a "{0}" placeholder to "%d".
func normalizeTemplate(tmpl string) string {
	return strings.Replace(tmpl, "{0}", itemPlaceholder, 1)
}

// ItemURL builds the item URL for id.
func (c *Client) ItemURL(id int) string {
	return strings.Replace(c.itemTemplate, itemPlaceholder, strconv.Itoa(id), 1)
}

// NewStoryIDs fetches the identifier list in upstream order.
func (c *Client) NewStoryIDs(ctx context.Context) ([]int, error) {
	var ids []int
	if err := c.getJSON(ctx, EndpointNewStories, c.config.NewStoriesURL, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Item fetches one item and decodes it into v.
// Returns an error wrapping ErrNullBody when the item does not exist.
func (c *Client) Item(ctx context.Context, id int, v any) error {
	return c.getJSON(ctx, EndpointItem, c.ItemURL(id), v)
}

// getJSON performs a GET request and decodes the JSON body into v.
func (c *Client) getJSON(ctx context.Context, endpoint, url string, v any) error {
	startTime := time.Now()
	defer func() {
		upstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		upstreamErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		upstreamRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Debug().Err(err).Str("endpoint", endpoint).Msg("Upstream request failed")
		return &UpstreamError{Class: ErrorClassNetwork, URL: url, Err: err}
	}
	defer resp.Body.Close()

	upstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if class := classifyStatus(resp.StatusCode); class != "" {
		upstreamErrorsTotal.WithLabelValues(string(class)).Inc()
		c.logger.Debug().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(class)).
			Msg("Upstream request error")
		return &UpstreamError{
			StatusCode: resp.StatusCode,
			Class:      class,
			URL:        url,
			Err:        fmt.Errorf("%s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		upstreamErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return &UpstreamError{StatusCode: resp.StatusCode, Class: ErrorClassNetwork, URL: url, Err: err}
	}

	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		upstreamErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		return &UpstreamError{StatusCode: resp.StatusCode, Class: ErrorClassDecode, URL: url, Err: ErrNullBody}
	}

	if err := json.Unmarshal(body, v); err != nil {
		upstreamErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		return &UpstreamError{StatusCode: resp.StatusCode, Class: ErrorClassDecode, URL: url, Err: err}
	}

	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
