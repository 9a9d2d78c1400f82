// Package handler builds the transport handlers of the web front end from
// the merged configuration.
package handler

import (
	"fmt"

	"github.com/MKhiriev/note-hub/internal/config"
	"github.com/MKhiriev/note-hub/internal/handler/http"
	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/service"
	"github.com/MKhiriev/note-hub/internal/session"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(sessions *session.Manager, appInfo service.AppInfoService, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	h, err := http.NewHandler(sessions, appInfo, http.Config{
		SessionCookie:      cfg.Server.SessionCookie,
		RequestTimeout:     cfg.Server.RequestTimeout.D(),
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		SearchDebounce:     cfg.Cache.SearchDebounce.D(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create http handler: %w", err)
	}

	return &Handlers{HTTP: h}, nil
}
