// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strconv"
	"strings"
	"time"
)

// DefaultNotesPerPage is used when APP_NOTES_PER_PAGE is absent, not a
// number or not positive.
const DefaultNotesPerPage = 12

// StructuredConfig is the top-level configuration container for NoteHub.
// It is populated by merging built-in defaults, environment variables,
// command-line flags and an optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
//   - json/yaml: key names used by the config file.
type StructuredConfig struct {
	// App holds settings shared by both front ends.
	App App `envPrefix:"APP_" json:"app" yaml:"app"`

	// Server holds the web front end listener and session settings.
	Server Server `envPrefix:"SERVER_" json:"server" yaml:"server"`

	// Adapter holds the NoteHub API connection settings.
	Adapter Adapter `envPrefix:"ADAPTER_" json:"adapter" yaml:"adapter"`

	// Cache holds query cache timings.
	Cache Cache `envPrefix:"CACHE_" json:"cache" yaml:"cache"`

	// Workers holds background job intervals.
	Workers Workers `envPrefix:"WORKERS_" json:"workers" yaml:"workers"`

	// ConfigFilePath is the optional path to a JSON (.json) or YAML
	// (.yaml, .yml) configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	ConfigFilePath string `env:"CONFIG" json:"-" yaml:"-"`
}

// App holds application-level settings.
type App struct {
	// NotesPerPage is the raw page size. It is kept as a string so that a
	// malformed value falls back to [DefaultNotesPerPage] instead of failing
	// startup. Use [App.PerPage] to read it.
	// Env: APP_NOTES_PER_PAGE
	NotesPerPage string `env:"NOTES_PER_PAGE" json:"notes_per_page" yaml:"notes_per_page"`

	// Version is exposed via the /api/version endpoint when no build
	// version was linked in.
	// Env: APP_VERSION
	Version string `env:"VERSION" json:"version" yaml:"version"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" json:"log_level" yaml:"log_level"`

	// LogFile is where the terminal client writes its log, since stdout
	// belongs to the TUI.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE" json:"log_file" yaml:"log_file"`
}

// PerPage returns the configured page size or [DefaultNotesPerPage].
func (a App) PerPage() int {
	n, err := strconv.Atoi(strings.TrimSpace(a.NotesPerPage))
	if err != nil || n <= 0 {
		return DefaultNotesPerPage
	}
	return n
}

// Server holds network, timeout and session settings for the web front end.
type Server struct {
	// HTTPAddress is the TCP address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" json:"http_address" yaml:"http_address"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout Duration `env:"REQUEST_TIMEOUT" json:"request_timeout" yaml:"request_timeout"`

	// CORSAllowedOrigins lists origins allowed to call /api.
	// Env: SERVER_CORS_ALLOWED_ORIGINS (comma separated)
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," json:"cors_allowed_origins" yaml:"cors_allowed_origins"`

	// SessionTTL is how long an idle browser session keeps its query cache.
	// Env: SERVER_SESSION_TTL
	SessionTTL Duration `env:"SESSION_TTL" json:"session_ttl" yaml:"session_ttl"`

	// SessionCookie is the name of the session cookie.
	// Env: SERVER_SESSION_COOKIE
	SessionCookie string `env:"SESSION_COOKIE" json:"session_cookie" yaml:"session_cookie"`

	// MaxSessions caps live browser sessions; the least recently used one is
	// dropped to make room. Zero means no cap.
	// Env: SERVER_MAX_SESSIONS
	MaxSessions int `env:"MAX_SESSIONS" json:"max_sessions" yaml:"max_sessions"`
}

// Adapter holds the outbound NoteHub API settings.
type Adapter struct {
	// BaseURL is the API root, e.g. "https://notehub.example.com/api".
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL" json:"base_url" yaml:"base_url"`

	// Token is the optional bearer token sent with every request.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN" json:"token" yaml:"token"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout Duration `env:"REQUEST_TIMEOUT" json:"request_timeout" yaml:"request_timeout"`

	// RateLimitRPS caps outbound requests per second. Zero disables it.
	// Env: ADAPTER_RATE_LIMIT_RPS
	RateLimitRPS float64 `env:"RATE_LIMIT_RPS" json:"rate_limit_rps" yaml:"rate_limit_rps"`

	// RateLimitBurst is the limiter bucket size.
	// Env: ADAPTER_RATE_LIMIT_BURST
	RateLimitBurst int `env:"RATE_LIMIT_BURST" json:"rate_limit_burst" yaml:"rate_limit_burst"`
}

// Cache holds query cache timings.
type Cache struct {
	// DefaultStaleTime applies to queries that do not set their own.
	// Env: CACHE_DEFAULT_STALE_TIME
	DefaultStaleTime Duration `env:"DEFAULT_STALE_TIME" json:"default_stale_time" yaml:"default_stale_time"`

	// ListStaleTime applies to notes list queries.
	// Env: CACHE_LIST_STALE_TIME
	ListStaleTime Duration `env:"LIST_STALE_TIME" json:"list_stale_time" yaml:"list_stale_time"`

	// GCTime is how long an unread entry survives before collection.
	// Env: CACHE_GC_TIME
	GCTime Duration `env:"GC_TIME" json:"gc_time" yaml:"gc_time"`

	// SearchDebounce is the quiet period before a search term is committed.
	// Env: CACHE_SEARCH_DEBOUNCE
	SearchDebounce Duration `env:"SEARCH_DEBOUNCE" json:"search_debounce" yaml:"search_debounce"`
}

// Workers holds background job intervals.
type Workers struct {
	// GCInterval is how often the query cache collector runs.
	// Env: WORKERS_GC_INTERVAL
	GCInterval Duration `env:"GC_INTERVAL" json:"gc_interval" yaml:"gc_interval"`

	// SessionSweepInterval is how often idle web sessions are expired.
	// Env: WORKERS_SESSION_SWEEP_INTERVAL
	SessionSweepInterval Duration `env:"SESSION_SWEEP_INTERVAL" json:"session_sweep_interval" yaml:"session_sweep_interval"`
}

// defaults returns the lowest-priority configuration layer.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel: "info",
			LogFile:  "notehub-client.log",
		},
		Server: Server{
			HTTPAddress:    "localhost:3000",
			RequestTimeout: Duration(30 * time.Second),
			SessionTTL:     Duration(30 * time.Minute),
			SessionCookie:  "notehub_session",
			MaxSessions:    10000,
		},
		Adapter: Adapter{
			BaseURL:        "https://notehub-public.goit.study/api",
			RequestTimeout: Duration(10 * time.Second),
		},
		Cache: Cache{
			DefaultStaleTime: Duration(time.Minute),
			ListStaleTime:    Duration(5 * time.Minute),
			GCTime:           Duration(5 * time.Minute),
			SearchDebounce:   Duration(500 * time.Millisecond),
		},
		Workers: Workers{
			GCInterval:           Duration(time.Minute),
			SessionSweepInterval: Duration(time.Minute),
		},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (later sources win
// for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags from args
//  4. Config file (path resolved from sources 2 and 3)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withFile().
		build()
}
