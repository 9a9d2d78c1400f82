// Package tui implements the terminal front end of NoteHub on bubbletea.
// It shares the view models of internal/view with the web front end, so
// both read through the same query cache rules.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/service"
	"github.com/MKhiriev/note-hub/models"
)

type TUI struct {
	notes     service.NotesService
	buildInfo models.AppBuildInfo
	debounce  time.Duration
	logger    *logger.Logger
}

func New(notes service.NotesService, buildInfo models.AppBuildInfo, searchDebounce time.Duration, log *logger.Logger) *TUI {
	return &TUI{
		notes:     notes,
		buildInfo: buildInfo,
		debounce:  searchDebounce,
		logger:    log.WithComponent("tui"),
	}
}

// Run shows the notes list and blocks until the user quits or ctx ends.
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t.notes, t.buildInfo, t.debounce, t.logger)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if result, ok := finalModel.(appModel); ok {
		result.close()
	}
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
