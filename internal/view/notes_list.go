package view

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/note-hub/internal/app"
	"github.com/MKhiriev/note-hub/internal/form"
	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/query"
	"github.com/MKhiriev/note-hub/internal/service"
	"github.com/MKhiriev/note-hub/models"
)

// ListConfig sets up a [NotesList].
type ListConfig struct {
	// Tag is the route tag; "All" means no filter.
	Tag string
	// Seed is the server-loaded first page of Tag without search. It is
	// used only while page is 1 and the debounced search is empty.
	Seed *models.NotesPage
	// Debounce is the search quiet period.
	Debounce time.Duration
}

// ListState is the render model of the notes list.
type ListState struct {
	SearchInput string
	Search      string
	Page        int
	Tag         string

	Notes      []models.Note
	TotalPages int
	HasData    bool

	ShowPagination bool
	Pages          []PageItem
	HasPrev        bool
	HasNext        bool

	IsLoading     bool
	IsFetching    bool
	IsError       bool
	Err           error
	ErrorMessage  string
	IsEmpty       bool
	IsPlaceholder bool

	ModalOpen     bool
	CreatePending bool
	CreateLabel   string
}

// NotesList is the view model of /notes/filter/{tag}.
type NotesList struct {
	svc       service.NotesService
	observer  *query.Observer[models.NotesPage]
	debouncer *Debouncer
	logger    *logger.Logger

	mu          sync.Mutex
	tag         string
	seed        *models.NotesPage
	page        int
	searchInput string
	modal       *form.Controller
}

// NewNotesList returns a list on page 1 with an empty search.
func NewNotesList(svc service.NotesService, cfg ListConfig, log *logger.Logger) *NotesList {
	tag := cfg.Tag
	if tag == "" {
		tag = models.TagAll
	}

	l := &NotesList{
		svc:       svc,
		observer:  query.NewObserver[models.NotesPage](svc.Cache(), true),
		debouncer: NewDebouncer(cfg.Debounce),
		logger:    log.WithComponent("notes_list"),
		tag:       tag,
		seed:      cfg.Seed,
		page:      1,
	}
	l.observer.SetKey(l.keyLocked())
	return l
}

func (l *NotesList) keyLocked() query.Key {
	return service.NotesListKey(l.debouncer.Value(), l.page, l.tag)
}

func (l *NotesList) syncKeyLocked() bool {
	return l.observer.SetKey(l.keyLocked())
}

// Key returns ["notes", debounced search, page, tag].
func (l *NotesList) Key() query.Key {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.keyLocked()
}

// SetSearch stores the raw input, resets the page to 1 and starts a debounce
// generation. After [NotesList.DebounceDelay] the caller passes the
// generation to [NotesList.CommitSearch].
func (l *NotesList) SetSearch(input string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.searchInput = input
	l.page = 1
	gen := l.debouncer.Push(input)
	l.syncKeyLocked()
	return gen
}

// CommitSearch applies the search of generation gen if no newer input
// arrived. It reports whether the query key changed.
func (l *NotesList) CommitSearch(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.debouncer.Fire(gen) {
		return false
	}
	return l.syncKeyLocked()
}

// ApplySearch sets and commits a search at once, as when it arrives in a
// URL. The page is reset to 1.
func (l *NotesList) ApplySearch(search string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.searchInput = search
	l.page = 1
	l.debouncer.Set(search)
	return l.syncKeyLocked()
}

// DebounceDelay returns the search quiet period.
func (l *NotesList) DebounceDelay() time.Duration {
	return l.debouncer.Delay()
}

// SetPage moves to page p (at least 1). It reports whether the key changed.
func (l *NotesList) SetPage(p int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.page = max(p, 1)
	return l.syncKeyLocked()
}

// Page returns the current page.
func (l *NotesList) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

// NextPage and PrevPage step through the known page range.
func (l *NotesList) NextPage() bool {
	st := l.State()
	if !st.HasNext {
		return false
	}
	return l.SetPage(st.Page + 1)
}

func (l *NotesList) PrevPage() bool {
	st := l.State()
	if !st.HasPrev {
		return false
	}
	return l.SetPage(st.Page - 1)
}

// Load fetches the current key through the cache. Fresh cached data and the
// seed are served without calling the API. Load captures the key when
// called, so a result that arrives after the user moved on is cached under
// its own key and never shown for the new one.
func (l *NotesList) Load(ctx context.Context) (models.NotesPage, error) {
	l.mu.Lock()
	search := l.debouncer.Value()
	page, tag := l.page, l.tag
	var seed *models.NotesPage
	if page == 1 && search == "" {
		seed = l.seed
	}
	opts := l.svc.ListOptions(search, page, tag, seed)
	l.mu.Unlock()

	res, err := query.Fetch(ctx, l.svc.Cache(), opts)
	if err != nil {
		l.logger.Warn().Err(err).Str("key", opts.Key.String()).Msg("failed to load notes")
	}
	return res, err
}

// State derives the render model.
func (l *NotesList) State() ListState {
	l.mu.Lock()
	st := ListState{
		SearchInput: l.searchInput,
		Search:      l.debouncer.Value(),
		Page:        l.page,
		Tag:         l.tag,
	}
	modal := l.modal
	l.mu.Unlock()

	res := l.observer.Result()
	st.HasData = res.HasData
	st.IsLoading = res.IsLoading
	st.IsFetching = res.IsFetching
	st.IsPlaceholder = res.IsPlaceholderData
	st.IsError = res.IsError
	st.Err = res.Err
	st.ErrorMessage = UserMessage(res.Err)

	st.TotalPages = 1
	if res.HasData {
		st.Notes = res.Data.Notes
		if res.Data.TotalPages > 0 {
			st.TotalPages = res.Data.TotalPages
		}
		st.IsEmpty = len(res.Data.Notes) == 0
	}

	st.ShowPagination = st.TotalPages > 1
	st.Pages = PageWindow(st.Page, st.TotalPages)
	st.HasPrev = st.Page > 1
	st.HasNext = st.Page < st.TotalPages

	st.ModalOpen = modal != nil
	st.CreatePending = modal != nil && modal.Pending()
	st.CreateLabel = app.MsgCreateNote
	if st.CreatePending {
		st.CreateLabel = app.MsgCreating
	}
	return st
}

// OpenCreate opens the create modal with a fresh form. A successful submit
// or a cancel closes the modal and then runs onClose, if set.
func (l *NotesList) OpenCreate(onClose func(), opts ...form.Option) *form.Controller {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.modal != nil {
		return l.modal
	}

	var ctrl *form.Controller
	closeModal := func() {
		l.mu.Lock()
		if l.modal == ctrl {
			l.modal = nil
		}
		l.mu.Unlock()
		if onClose != nil {
			onClose()
		}
	}

	opts = append([]form.Option{
		form.WithLogger(l.logger),
		form.WithOnClose(closeModal),
	}, opts...)
	ctrl = form.New(l.svc, opts...)
	l.modal = ctrl
	return ctrl
}

// Modal returns the open form, or nil.
func (l *NotesList) Modal() *form.Controller {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.modal
}

// CloseCreate cancels the open form. It fails with [form.ErrSubmitting]
// while the form is submitting.
func (l *NotesList) CloseCreate() error {
	modal := l.Modal()
	if modal == nil {
		return nil
	}
	return modal.Cancel()
}

// Close releases the cache subscription.
func (l *NotesList) Close() {
	l.observer.Close()
}
