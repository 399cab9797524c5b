package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Sternrassler/hn-news-proxy/pkg/logging"
	"github.com/Sternrassler/hn-news-proxy/pkg/news"
	"github.com/rs/zerolog"
)

// Query defaults for GET /api/webnews.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

// FetchErrorMessage is returned to clients when a page cannot be served.
const FetchErrorMessage = "An error occurred while retrieving news stories."

// PageFetcher assembles one page of stories.
type PageFetcher interface {
	FetchPage(ctx context.Context, page, pageSize int, search string) news.Response
}

// Handler serves the news endpoints.
type Handler struct {
	news   PageFetcher
	logger zerolog.Logger
}

// NewHandler creates the news handler.
func NewHandler(pages PageFetcher, logger zerolog.Logger) *Handler {
	return &Handler{news: pages, logger: logger}
}

type errorBody struct {
	Error string `json:"error"`
}

// GetNews serves one page of the newest stories.
func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := intParam(q, "page", DefaultPage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "page must be an integer")
		return
	}
	pageSize, err := intParam(q, "pageSize", DefaultPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "pageSize must be an integer")
		return
	}
	search := q.Get("search")

	defer func() {
		if rec := recover(); rec != nil {
			logger := logging.FromContext(r.Context(), h.logger)
			logger.Error().
				Interface("reason", rec).
				Str("operation", "GetNews").
				Int("page", page).
				Int("page_size", pageSize).
				Str("search", search).
				Msg("Failed to retrieve news stories")
			writeError(w, http.StatusInternalServerError, FetchErrorMessage)
		}
	}()

	resp := h.news.FetchPage(r.Context(), page, pageSize, search)
	writeJSON(w, http.StatusOK, resp)
}

// intParam reads an integer query parameter, falling back to def when absent.
func intParam(q url.Values, name string, def int) (int, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
