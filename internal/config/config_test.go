package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// ── App.PerPage ───────────────────────────────────────────────────────────────

func TestApp_PerPage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "absent", raw: "", want: 12},
		{name: "valid", raw: "20", want: 20},
		{name: "padded", raw: " 8 ", want: 8},
		{name: "not a number", raw: "many", want: 12},
		{name: "zero", raw: "0", want: 12},
		{name: "negative", raw: "-3", want: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, App{NotesPerPage: tt.raw}.PerPage())
		})
	}
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterLayerWins verifies override order and that zero fields of a
// later layer keep earlier values.
func TestBuild_LaterLayerWins(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{NotesPerPage: "6"}, Adapter: Adapter{Token: "env-token"}},
		&StructuredConfig{App: App{NotesPerPage: "9"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.App.PerPage())
	assert.Equal(t, "env-token", cfg.Adapter.Token)
	assert.Equal(t, 5*time.Minute, cfg.Cache.ListStaleTime.D())
}

func TestBuild_DefaultsAreValid(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.Cache.SearchDebounce.D())
	assert.Equal(t, time.Minute, cfg.Cache.DefaultStaleTime.D())
	assert.Equal(t, 12, cfg.App.PerPage())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{name: "missing base url", mutate: func(c *StructuredConfig) { c.Adapter.BaseURL = "" }, wantErr: ErrInvalidAdapterConfigs},
		{name: "negative rps", mutate: func(c *StructuredConfig) { c.Adapter.RateLimitRPS = -1 }, wantErr: ErrInvalidAdapterConfigs},
		{name: "missing address", mutate: func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, wantErr: ErrInvalidServerConfigs},
		{name: "negative stale time", mutate: func(c *StructuredConfig) { c.Cache.ListStaleTime = -1 }, wantErr: ErrInvalidCacheConfigs},
		{name: "zero gc interval", mutate: func(c *StructuredConfig) { c.Workers.GCInterval = 0 }, wantErr: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.validate(), tt.wantErr)
		})
	}
}

// ── sources ───────────────────────────────────────────────────────────────────

func TestParseEnv(t *testing.T) {
	t.Setenv("APP_NOTES_PER_PAGE", "15")
	t.Setenv("ADAPTER_BASE_URL", "http://api.local")
	t.Setenv("CACHE_LIST_STALE_TIME", "2m")
	t.Setenv("SERVER_CORS_ALLOWED_ORIGINS", "http://a.local,http://b.local")

	cfg, err := parseEnv()
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.App.PerPage())
	assert.Equal(t, "http://api.local", cfg.Adapter.BaseURL)
	assert.Equal(t, 2*time.Minute, cfg.Cache.ListStaleTime.D())
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Server.CORSAllowedOrigins)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("CACHE_GC_TIME", "soon")

	_, err := parseEnv()
	assert.Error(t, err)
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "127.0.0.1:8081",
		"-api", "http://flags.local",
		"-per-page", "4",
		"-config", "notehub.yaml",
		"-api-timeout", "3s",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, "http://flags.local", cfg.Adapter.BaseURL)
	assert.Equal(t, "4", cfg.App.NotesPerPage)
	assert.Equal(t, "notehub.yaml", cfg.ConfigFilePath)
	assert.Equal(t, 3*time.Second, cfg.Adapter.RequestTimeout.D())
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := parseFlags([]string{"-nope"})
	assert.Error(t, err)
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "localhost", input: "localhost:3000"},
		{name: "ip", input: "0.0.0.0:8080"},
		{name: "any host", input: ":8080"},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "bad port", input: "localhost:http", wantErr: true},
		{name: "port out of range", input: "localhost:70000", wantErr: true},
		{name: "bad host", input: "example.com:80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, a.String())
		})
	}
}

func TestParseFile_JSON(t *testing.T) {
	path := writeTempFile(t, "cfg.json", `{
		"app": {"notes_per_page": "24"},
		"cache": {"list_stale_time": "10m", "gc_time": 60000000000}
	}`)

	cfg, err := parseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.App.PerPage())
	assert.Equal(t, 10*time.Minute, cfg.Cache.ListStaleTime.D())
	assert.Equal(t, time.Minute, cfg.Cache.GCTime.D())
}

func TestParseFile_YAML(t *testing.T) {
	path := writeTempFile(t, "cfg.yml", `
adapter:
  base_url: http://yaml.local
  rate_limit_rps: 5
workers:
  gc_interval: 30s
`)

	cfg, err := parseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://yaml.local", cfg.Adapter.BaseURL)
	assert.InDelta(t, 5.0, cfg.Adapter.RateLimitRPS, 0.001)
	assert.Equal(t, 30*time.Second, cfg.Workers.GCInterval.D())
}

func TestParseFile_Errors(t *testing.T) {
	_, err := parseFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = parseFile(writeTempFile(t, "cfg.toml", "a = 1"))
	assert.ErrorIs(t, err, ErrUnsupportedConfigFile)

	_, err = parseFile(writeTempFile(t, "broken.json", "{"))
	assert.Error(t, err)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

func TestGetStructuredConfig_FileOverridesEnvAndFlags(t *testing.T) {
	path := writeTempFile(t, "cfg.yaml", "app:\n  notes_per_page: \"30\"\n")
	t.Setenv("APP_NOTES_PER_PAGE", "7")
	t.Setenv("CONFIG", path)

	cfg, err := GetStructuredConfig([]string{"-token", "secret"})
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.App.PerPage())
	assert.Equal(t, "secret", cfg.Adapter.Token)
	assert.Equal(t, "localhost:3000", cfg.Server.HTTPAddress)
}

func TestGetClientConfig(t *testing.T) {
	t.Setenv("APP_NOTES_PER_PAGE", "abc")

	cfg, err := GetClientConfig([]string{"-log-file", "client.log"})
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.PerPage)
	assert.Equal(t, "client.log", cfg.LogFile)
	assert.Equal(t, time.Minute, cfg.GCInterval)
}
