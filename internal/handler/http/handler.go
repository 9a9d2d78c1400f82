package http

import (
	"fmt"
	"time"

	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/service"
	"github.com/MKhiriev/note-hub/internal/session"
	"github.com/MKhiriev/note-hub/internal/validators"
)

// Config holds the settings of the web front end.
type Config struct {
	SessionCookie      string
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
	SearchDebounce     time.Duration
}

const defaultSessionCookie = "notehub_session"

type Handler struct {
	sessions  *session.Manager
	appInfo   service.AppInfoService
	validator validators.Validator
	pages     *pages
	cfg       Config

	logger *logger.Logger
}

func NewHandler(sessions *session.Manager, appInfo service.AppInfoService, cfg Config, logger *logger.Logger) (*Handler, error) {
	if cfg.SessionCookie == "" {
		cfg.SessionCookie = defaultSessionCookie
	}

	p, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		sessions:  sessions,
		appInfo:   appInfo,
		validator: validators.NewNoteValidator(),
		pages:     p,
		cfg:       cfg,
		logger:    logger,
	}, nil
}
