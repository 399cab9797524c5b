// Package config loads the proxy configuration.
//
// Sources, highest priority first:
//  1. explicit --config path;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. environment only.
//
// Environment variables always overlay values read from a file.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full proxy configuration.
type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Redis    RedisConfig    `yaml:"redis"`
}

// HTTPConfig is the public REST server.
type HTTPConfig struct {
	Host           string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port           string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" env-default:"30s"`
	AllowedOrigin  string        `yaml:"allowed_origin" env:"CORS_ALLOWED_ORIGIN" env-default:"http://localhost:4400"`
}

// Addr is the listen address.
func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// LogConfig controls pkg/logging setup.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Pretty bool   `yaml:"pretty" env:"LOG_PRETTY" env-default:"false"`
}

// UpstreamConfig points at the Hacker News API. ItemURLTemplate takes a %d
// or {0} placeholder for the item id.
type UpstreamConfig struct {
	NewStoriesURL   string        `yaml:"new_stories_url" env:"HN_NEW_STORIES_URL" env-default:"https://hacker-news.firebaseio.com/v0/newstories.json"`
	ItemURLTemplate string        `yaml:"item_url_template" env:"HN_ITEM_URL_TEMPLATE" env-default:"https://hacker-news.firebaseio.com/v0/item/{0}.json"`
	UserAgent       string        `yaml:"user_agent" env:"USER_AGENT" env-default:"hn-news-proxy/1.0"`
	Timeout         time.Duration `yaml:"timeout" env:"UPSTREAM_TIMEOUT" env-default:"10s"`
	MaxConcurrency  int           `yaml:"max_concurrency" env:"MAX_CONCURRENCY" env-default:"10"`
}

// RedisConfig enables the shared identifier snapshot when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// MustLoad panics when the configuration cannot be loaded.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the configuration from the first available source.
func Load(path string) (*Config, error) {
	if path != "" {
		return readFile(path)
	}

	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return readFile(envPath)
	}

	if _, err := os.Stat("local.yaml"); err == nil {
		return readFile("local.yaml")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &cfg, nil
}

// readFile reads path and overlays the environment.
func readFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %q stat failed: %w", path, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to overlay env: %w", err)
	}

	return &cfg, nil
}
