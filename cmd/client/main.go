package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/note-hub/internal/adapter"
	"github.com/MKhiriev/note-hub/internal/client"
	"github.com/MKhiriev/note-hub/internal/config"
	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/query"
	"github.com/MKhiriev/note-hub/internal/service"
	"github.com/MKhiriev/note-hub/internal/tui"
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

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log, logFile, err := logger.NewFileLogger("notehub-client", cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	notesAdapter, err := adapter.NewHTTPNotesAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating notes adapter")
	}

	cache := query.NewClient(
		query.WithDefaultStaleTime(cfg.Cache.DefaultStaleTime.D()),
		query.WithGCTime(cfg.Cache.GCTime.D()),
		query.WithLogger(log.WithComponent("query")),
	)
	notes := service.NewNotesService(notesAdapter, cache, service.NotesConfig{
		PerPage:       cfg.PerPage,
		ListStaleTime: cfg.Cache.ListStaleTime.D(),
	}, log)

	ui := tui.New(notes, buildInfo, cfg.Cache.SearchDebounce.D(), log)

	app, err := client.NewApp(ui, cache, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Error().Err(err).Msg("client run error")
		fmt.Fprintf(os.Stderr, "client run error: %v\n", err)
	}
}
