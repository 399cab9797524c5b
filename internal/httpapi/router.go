// Package httpapi is the HTTP entry point of the news proxy.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/Sternrassler/hn-news-proxy/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Options configure the router.
type Options struct {
	Logger        zerolog.Logger
	Timeout       time.Duration
	AllowedOrigin string

	// Ready reports whether dependencies are reachable. Nil means always ready.
	Ready func(ctx context.Context) error
}

// NewRouter builds the chi router with middleware and routes.
func NewRouter(h *Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	// Outermost first.
	r.Use(
		Recover(opts.Logger),
		RequestID(),
		Logging(opts.Logger),
		CORS(opts.AllowedOrigin),
		Timeout(opts.Timeout),
	)

	// Clients use both spellings of the path.
	r.Get("/api/webnews", h.GetNews)
	r.Get("/api/WebNews", h.GetNews)

	r.Get("/health", healthHandler)
	r.Get("/ready", readyHandler(opts.Ready))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func readyHandler(ready func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			if err := ready(r.Context()); err != nil {
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
