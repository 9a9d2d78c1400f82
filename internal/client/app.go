package client

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/note-hub/internal/config"
	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/workers"
)

const workersStopTimeout = 5 * time.Second

type App struct {
	ui      UI
	workers *workers.Workers
	logger  *logger.Logger
}

// NewApp schedules the cache collector over cache and binds it to ui.
func NewApp(ui UI, cache workers.Collector, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	bg := workers.NewWorkers(log)
	if err := bg.Add("cache_gc", cfg.GCInterval, workers.NewCacheGC(cache, log)); err != nil {
		return nil, fmt.Errorf("create client workers: %w", err)
	}

	return &App{ui: ui, workers: bg, logger: log}, nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	a.workers.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), workersStopTimeout)
		defer cancel()
		if err := a.workers.Stop(stopCtx); err != nil {
			a.logger.Warn().Err(err).Msg("workers did not stop in time")
		}
	}()

	if err := a.ui.Run(ctx); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	a.logger.Info().Msg("client stopped")
	return nil
}
