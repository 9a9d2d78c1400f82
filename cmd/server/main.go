package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/note-hub/internal/adapter"
	"github.com/MKhiriev/note-hub/internal/config"
	"github.com/MKhiriev/note-hub/internal/handler"
	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/server"
	"github.com/MKhiriev/note-hub/internal/service"
	"github.com/MKhiriev/note-hub/internal/session"
	"github.com/MKhiriev/note-hub/internal/utils"
	"github.com/MKhiriev/note-hub/internal/workers"
	"github.com/MKhiriev/note-hub/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo.String())

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("notehub-web", "info").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("notehub-web", cfg.App.LogLevel)
	log.Debug().Any("config", cfg).Msg("received configs")

	notesAdapter, err := adapter.NewHTTPNotesAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating notes adapter")
	}

	sessions := session.NewManager(notesAdapter, utils.NewUUIDGenerator(), session.Config{
		TTL:         cfg.Server.SessionTTL.D(),
		MaxSessions: cfg.Server.MaxSessions,
		Notes: service.NotesConfig{
			PerPage:       cfg.App.PerPage(),
			ListStaleTime: cfg.Cache.ListStaleTime.D(),
		},
		DefaultStaleTime: cfg.Cache.DefaultStaleTime.D(),
		GCTime:           cfg.Cache.GCTime.D(),
	}, log)

	appInfo, err := service.NewAppInfoService(cfg.App, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating app info service")
	}

	handlers, err := handler.NewHandlers(sessions, appInfo, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bg := workers.NewWorkers(log)
	if err = bg.Add("cache_gc", cfg.Workers.GCInterval.D(), workers.NewCacheGC(sessions, log)); err != nil {
		log.Fatal().Err(err).Msg("error scheduling cache collector")
	}
	if err = bg.Add("session_expiry", cfg.Workers.SessionSweepInterval.D(), workers.NewSessionExpiry(sessions, log)); err != nil {
		log.Fatal().Err(err).Msg("error scheduling session expiry")
	}

	srv, err := server.NewServer(handlers, bg, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
