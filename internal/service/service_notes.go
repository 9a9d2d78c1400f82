package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/note-hub/internal/adapter"
	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/query"
	"github.com/MKhiriev/note-hub/models"
)

const (
	notesKeyRoot = "notes"
	noteKeyRoot  = "note"

	// DefaultListStaleTime is how long a list page is served from cache.
	DefaultListStaleTime = 5 * time.Minute
)

// NotesListKey is the cache key of one list page: ["notes", search, page, tag].
func NotesListKey(search string, page int, tag string) query.Key {
	return query.Key{notesKeyRoot, search, page, tag}
}

// AllNotesKey is the prefix of every list key.
func AllNotesKey() query.Key {
	return query.Key{notesKeyRoot}
}

// NoteKey is the cache key of one note: ["note", id].
func NoteKey(id int64) query.Key {
	return query.Key{noteKeyRoot, id}
}

// NotesConfig tunes a [NotesService].
type NotesConfig struct {
	PerPage       int
	ListStaleTime time.Duration
	// DetailStaleTime zero means the cache default.
	DetailStaleTime time.Duration
}

type notesService struct {
	adapter adapter.NotesAdapter
	cache   *query.Client
	cfg     NotesConfig

	logger *logger.Logger
}

// NewNotesService binds an adapter to one session's cache.
func NewNotesService(notesAdapter adapter.NotesAdapter, cache *query.Client, cfg NotesConfig, log *logger.Logger) NotesService {
	if cfg.ListStaleTime == 0 {
		cfg.ListStaleTime = DefaultListStaleTime
	}

	return &notesService{
		adapter: notesAdapter,
		cache:   cache,
		cfg:     cfg,
		logger:  log.WithComponent("notes_service"),
	}
}

func (s *notesService) ListOptions(search string, page int, tag string, seed *models.NotesPage) query.Options[models.NotesPage] {
	params := models.ListParams{
		Page:    page,
		PerPage: s.cfg.PerPage,
		Search:  search,
		Tag:     tag,
	}

	return query.Options[models.NotesPage]{
		Key: NotesListKey(search, page, tag),
		Fn: func(ctx context.Context) (models.NotesPage, error) {
			return s.adapter.ListNotes(ctx, params)
		},
		StaleTime:   s.cfg.ListStaleTime,
		InitialData: seed,
	}
}

func (s *notesService) NoteOptions(id int64) query.Options[models.Note] {
	return query.Options[models.Note]{
		Key: NoteKey(id),
		Fn: func(ctx context.Context) (models.Note, error) {
			return s.adapter.GetNote(ctx, id)
		},
		StaleTime: s.cfg.DetailStaleTime,
	}
}

func (s *notesService) List(ctx context.Context, search string, page int, tag string, seed *models.NotesPage) (models.NotesPage, error) {
	if page < 1 {
		return models.NotesPage{}, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	return query.Fetch(ctx, s.cache, s.ListOptions(search, page, tag, seed))
}

func (s *notesService) Get(ctx context.Context, id int64) (models.Note, error) {
	return query.Fetch(ctx, s.cache, s.NoteOptions(id))
}

func (s *notesService) Prefetch(ctx context.Context, id int64) error {
	_, err := s.Get(ctx, id)
	return err
}

func (s *notesService) CreateNote(ctx context.Context, payload models.NewNotePayload) (models.Note, error) {
	note, err := s.adapter.CreateNote(ctx, payload)
	if err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}

	n := s.cache.InvalidateQueries(AllNotesKey())
	s.logger.Info().Int64("note_id", note.ID).Int("invalidated", n).Msg("note created")
	return note, nil
}

func (s *notesService) LoadInitialPage(ctx context.Context, tag string) (models.NotesPage, error) {
	return s.adapter.ListNotes(ctx, models.ListParams{
		Page:    1,
		PerPage: s.cfg.PerPage,
		Tag:     tag,
	})
}

func (s *notesService) Cache() *query.Client {
	return s.cache
}

func (s *notesService) PerPage() int {
	return s.cfg.PerPage
}
