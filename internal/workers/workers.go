package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MKhiriev/note-hub/internal/logger"
)

// ErrInvalidInterval is returned when a worker is added with a
// non-positive interval.
var ErrInvalidInterval = errors.New("workers: interval must be positive")

type scheduled struct {
	name     string
	interval time.Duration
	worker   Worker
}

// Workers schedules a set of workers, each on its own interval.
type Workers struct {
	cron    *cron.Cron
	workers []scheduled
	logger  *logger.Logger
}

// NewWorkers returns an empty scheduler. Panicking runs are recovered and
// overlapping runs of the same worker are skipped.
func NewWorkers(log *logger.Logger) *Workers {
	l := log.WithComponent("workers")
	cl := cronLogger{l}

	return &Workers{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: l,
	}
}

// Add schedules worker every interval.
func (w *Workers) Add(name string, interval time.Duration, worker Worker) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, name)
	}

	spec := "@every " + interval.String()
	if _, err := w.cron.AddJob(spec, worker); err != nil {
		return fmt.Errorf("schedule worker %s: %w", name, err)
	}

	w.workers = append(w.workers, scheduled{name: name, interval: interval, worker: worker})
	w.logger.Debug().Str("worker", name).Dur("interval", interval).Msg("worker scheduled")
	return nil
}

// Run runs every worker once, in the order added.
func (w *Workers) Run() {
	for _, s := range w.workers {
		s.worker.Run()
	}
}

// Len returns the number of scheduled workers.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Start begins scheduling in the background.
func (w *Workers) Start() {
	w.cron.Start()
	w.logger.Info().Int("workers", len(w.workers)).Msg("workers started")
}

// Stop stops scheduling and waits for running jobs until ctx ends.
func (w *Workers) Stop(ctx context.Context) error {
	done := w.cron.Stop()
	select {
	case <-done.Done():
		w.logger.Info().Msg("workers stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stop workers: %w", ctx.Err())
	}
}

// cronLogger adapts the logger to cron.Logger.
type cronLogger struct {
	l *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
