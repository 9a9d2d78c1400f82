package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrInvalidAdapterConfigs indicates invalid NoteHub API settings
	// (for example, a missing base URL or a negative rate limit).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidServerConfigs indicates invalid web front end settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidCacheConfigs indicates negative cache timings.
	ErrInvalidCacheConfigs = errors.New("invalid cache configuration")
	// ErrInvalidWorkerConfigs indicates a zero or negative job interval.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrUnsupportedConfigFile is returned for config files whose extension
	// is neither JSON nor YAML.
	ErrUnsupportedConfigFile = errors.New("unsupported config file format")
)
