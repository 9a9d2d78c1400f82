package service

import (
	"context"

	"github.com/MKhiriev/note-hub/internal/query"
	"github.com/MKhiriev/note-hub/models"
)

// NotesService reads and creates notes through a session's query cache.
type NotesService interface {
	// ListOptions describes the cached list query for a filter. seed, when
	// non-nil, is offered as initial data for an empty cache entry.
	ListOptions(search string, page int, tag string, seed *models.NotesPage) query.Options[models.NotesPage]
	// NoteOptions describes the cached detail query of one note.
	NoteOptions(id int64) query.Options[models.Note]

	// List returns a page through the cache.
	List(ctx context.Context, search string, page int, tag string, seed *models.NotesPage) (models.NotesPage, error)
	// Get returns a note through the cache.
	Get(ctx context.Context, id int64) (models.Note, error)
	// Prefetch loads a note into the cache without returning it.
	Prefetch(ctx context.Context, id int64) error
	// CreateNote stores a note and invalidates every cached list.
	CreateNote(ctx context.Context, payload models.NewNotePayload) (models.Note, error)
	// LoadInitialPage fetches page 1 of a tag without search, bypassing the
	// cache. Its result is the seed of the list view.
	LoadInitialPage(ctx context.Context, tag string) (models.NotesPage, error)

	// Cache returns the query cache the service reads through.
	Cache() *query.Client
	// PerPage returns the list page size.
	PerPage() int
}

// AppInfoService reports build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	BuildInfo() models.AppBuildInfo
}
