package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sternrassler/hn-news-proxy/internal/config"
	"github.com/Sternrassler/hn-news-proxy/internal/httpapi"
	"github.com/Sternrassler/hn-news-proxy/pkg/cache"
	"github.com/Sternrassler/hn-news-proxy/pkg/client"
	"github.com/Sternrassler/hn-news-proxy/pkg/logging"
	"github.com/Sternrassler/hn-news-proxy/pkg/news"
	"github.com/Sternrassler/hn-news-proxy/pkg/pagination"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
		Output: os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.Env).
			Str("user_agent", cfg.Upstream.UserAgent).
			Msg("Starting news proxy")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// app holds the wired components behind the HTTP handler.
type app struct {
	handler http.Handler
	redis   *redis.Client
}

func newApp(cfg *config.Config, logger zerolog.Logger) (*app, error) {
	hn, err := client.New(client.Config{
		NewStoriesURL:   cfg.Upstream.NewStoriesURL,
		ItemURLTemplate: cfg.Upstream.ItemURLTemplate,
		UserAgent:       cfg.Upstream.UserAgent,
		Timeout:         cfg.Upstream.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create hacker news client: %w", err)
	}

	a := &app{}
	cacheOpts := []cache.Option{
		cache.WithLogger(logger.With().Str("component", "identifier-cache").Logger()),
	}

	var ready func(ctx context.Context) error
	if cfg.Redis.Enabled() {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := cache.NewRedisStore(a.redis)
		cacheOpts = append(cacheOpts, cache.WithStore(store))
		ready = store.Ping
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis identifier store")
	}

	ids := cache.NewIdentifierCache(hn, cacheOpts...)
	svc := news.NewService(ids, hn,
		news.WithFetchConfig(pagination.Config{
			MaxConcurrency: cfg.Upstream.MaxConcurrency,
			Timeout:        cfg.Upstream.Timeout,
		}),
		news.WithLogger(logger.With().Str("component", "news-service").Logger()),
	)

	a.handler = httpapi.NewRouter(httpapi.NewHandler(svc, logger), httpapi.Options{
		Logger:        logger,
		Timeout:       cfg.HTTP.RequestTimeout,
		AllowedOrigin: cfg.HTTP.AllowedOrigin,
		Ready:         ready,
	})
	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
