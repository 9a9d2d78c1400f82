package config

import (
	"fmt"
	"time"
)

// ClientConfig is the subset of [StructuredConfig] the terminal client uses.
type ClientConfig struct {
	// PerPage is the resolved notes page size.
	PerPage int
	// LogLevel and LogFile configure the file logger.
	LogLevel string
	LogFile  string

	// Adapter contains the NoteHub API settings.
	Adapter Adapter
	// Cache contains query cache timings.
	Cache Cache
	// GCInterval is how often the query cache is collected.
	GCInterval time.Duration
}

// GetClientConfig builds a client-specific config view from the merged
// structured configuration.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return &ClientConfig{
		PerPage:    cfg.App.PerPage(),
		LogLevel:   cfg.App.LogLevel,
		LogFile:    cfg.App.LogFile,
		Adapter:    cfg.Adapter,
		Cache:      cfg.Cache,
		GCInterval: cfg.Workers.GCInterval.D(),
	}, nil
}
