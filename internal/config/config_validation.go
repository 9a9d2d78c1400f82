// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] is usable by both
// front ends. App.NotesPerPage is deliberately not checked: a bad value falls
// back to the default page size.
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Adapter.RateLimitRPS < 0 || cfg.Adapter.RateLimitBurst < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidAdapterConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.SessionCookie == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Cache.DefaultStaleTime < 0 || cfg.Cache.ListStaleTime < 0 ||
		cfg.Cache.GCTime < 0 || cfg.Cache.SearchDebounce < 0 {
		return ErrInvalidCacheConfigs
	}

	if cfg.Workers.GCInterval <= 0 || cfg.Workers.SessionSweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
