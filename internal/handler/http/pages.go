package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/note-hub/internal/app"
	"github.com/MKhiriev/note-hub/internal/form"
	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/query"
	"github.com/MKhiriev/note-hub/internal/service"
	"github.com/MKhiriev/note-hub/internal/validators"
	"github.com/MKhiriev/note-hub/internal/view"
	"github.com/MKhiriev/note-hub/models"
)

type pageLink struct {
	Label    string
	URL      string
	Current  bool
	Ellipsis bool
}

type formData struct {
	Action      string
	Back        string
	Values      models.NoteDraft
	Errors      validators.FieldErrors
	SubmitError string
	Tags        []models.Tag
	Pending     bool
	SubmitLabel string
}

type listPageData struct {
	layoutData
	List           view.ListState
	ListURL        string
	DebounceMs     int64
	Pages          []pageLink
	PrevURL        string
	NextURL        string
	CreateURL      string
	LoadingMessage string
	EmptyMessage   string
	Form           *formData
}

type detailPageData struct {
	layoutData
	Detail         view.DetailState
	State          query.DehydratedState
	BackURL        string
	LoadingMessage string
}

type createPageData struct {
	layoutData
	Form *formData
}

const createPath = "/notes/action/create"

func newFormData(values models.NoteDraft, back string) *formData {
	return &formData{
		Action:      createPath,
		Back:        back,
		Values:      values,
		Errors:      validators.FieldErrors{},
		Tags:        models.Tags,
		SubmitLabel: app.MsgCreateNote,
	}
}

// parsePage reads the page query parameter; anything but a positive
// integer means page 1.
func parsePage(raw string) int {
	p, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || p < 1 {
		return 1
	}
	return p
}

// safeBack accepts only list addresses as a return target.
func safeBack(raw string) string {
	if strings.HasPrefix(raw, "/notes/filter/") && !strings.HasPrefix(raw, "//") {
		return raw
	}
	return defaultListPath
}

// notesList renders /notes/filter/{tag}. The first page of the tag without
// search is loaded through the page loader and seeds the session cache; every
// other page, and the seed once cached, is served through the cache.
func (h *Handler) notesList(w http.ResponseWriter, r *http.Request) {
	s, err := sessionFromRequest(r)
	if err != nil {
		h.renderError(w, r, statusFromError(err), app.MsgSomethingWrong)
		return
	}

	ctx := r.Context()
	log := logger.FromRequest(r)

	tag := view.TagFromSegments(strings.Split(chi.URLParam(r, "*"), "/"))
	q := r.URL.Query()
	search := strings.TrimSpace(q.Get("search"))
	page := parsePage(q.Get("page"))

	notes := s.Notes()
	var seed *models.NotesPage
	if page == 1 && search == "" {
		if _, cached := query.GetQueryData[models.NotesPage](notes.Cache(), service.NotesListKey("", 1, tag)); !cached {
			initial, err := notes.LoadInitialPage(ctx, tag)
			if err != nil {
				log.Warn().Err(err).Str("tag", tag).Msg("initial page load failed")
			} else {
				seed = &initial
			}
		}
	}

	list := view.NewNotesList(notes, view.ListConfig{
		Tag:      tag,
		Seed:     seed,
		Debounce: h.cfg.SearchDebounce,
	}, log)
	defer list.Close()

	if search != "" {
		list.ApplySearch(search)
	}
	list.SetPage(page)
	_, _ = list.Load(ctx)

	st := list.State()
	data := listPageData{
		layoutData:     newLayout(r, "Notes", tag),
		List:           st,
		ListURL:        tagURL(tag),
		DebounceMs:     list.DebounceDelay().Milliseconds(),
		CreateURL:      listURL(tag, search, page, true),
		LoadingMessage: app.MsgLoadingNotes,
		EmptyMessage:   app.MsgNoNotesFound,
	}
	for _, item := range st.Pages {
		data.Pages = append(data.Pages, pageLink{
			Label:    strconv.Itoa(item.Page),
			URL:      listURL(tag, search, item.Page, false),
			Current:  item.Current,
			Ellipsis: item.Ellipsis,
		})
	}
	if st.HasPrev {
		data.PrevURL = listURL(tag, search, st.Page-1, false)
	}
	if st.HasNext {
		data.NextURL = listURL(tag, search, st.Page+1, false)
	}
	if q.Get("create") == "1" {
		data.Form = newFormData(models.NewNoteDraft(), listURL(tag, search, page, false))
	}

	h.renderPage(w, r, pageList, http.StatusOK, data)
}

// noteDetail prefetches the note into the session cache and renders it from
// there, embedding the dehydrated note entry for client-side reuse.
func (h *Handler) noteDetail(w http.ResponseWriter, r *http.Request) {
	s, err := sessionFromRequest(r)
	if err != nil {
		h.renderError(w, r, statusFromError(err), app.MsgSomethingWrong)
		return
	}

	id, err := view.ParseNoteID(chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, http.StatusNotFound, view.UserMessage(err))
		return
	}

	ctx := r.Context()
	if err := s.Notes().Prefetch(ctx, id); err != nil {
		logger.FromRequest(r).Warn().Err(err).Int64("note_id", id).Msg("note prefetch failed")
		h.renderError(w, r, statusFromError(err), view.UserMessage(err))
		return
	}

	state, err := s.Cache().Dehydrate(service.NoteKey(id))
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to dehydrate cache")
		h.renderError(w, r, http.StatusInternalServerError, app.MsgSomethingWrong)
		return
	}

	detail := view.NewNoteDetail(s.Notes(), id)
	defer detail.Close()

	st := detail.State()
	h.renderPage(w, r, pageDetail, http.StatusOK, detailPageData{
		layoutData:     newLayout(r, st.Note.Title, ""),
		Detail:         st,
		State:          state,
		BackURL:        defaultListPath,
		LoadingMessage: app.MsgLoadingNote,
	})
}

func (h *Handler) createForm(w http.ResponseWriter, r *http.Request) {
	back := safeBack(r.URL.Query().Get("back"))
	h.renderPage(w, r, pageCreate, http.StatusOK, createPageData{
		layoutData: newLayout(r, "Create note", ""),
		Form:       newFormData(models.NewNoteDraft(), back),
	})
}

// createNote submits the form through a form controller. Invalid input is
// answered 422 with the form and its messages; success redirects back to
// the list the form was opened from.
func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	s, err := sessionFromRequest(r)
	if err != nil {
		h.renderError(w, r, statusFromError(err), app.MsgSomethingWrong)
		return
	}

	log := logger.FromRequest(r)
	if err := r.ParseForm(); err != nil {
		log.Warn().Err(err).Msg("failed to parse form")
		h.renderError(w, r, http.StatusBadRequest, app.MsgInvalidFormData)
		return
	}
	back := safeBack(r.PostForm.Get("back"))

	ctrl := form.New(s.Notes(),
		form.WithLogger(log),
		form.WithTransitionHook(func(from, to form.Status) {
			log.Debug().Stringer("from", from).Stringer("to", to).Msg("create form transition")
		}),
	)
	for _, name := range []string{validators.FieldTitle, validators.FieldContent, validators.FieldTag} {
		if err := ctrl.SetField(name, r.PostForm.Get(name)); err != nil {
			h.renderError(w, r, http.StatusBadRequest, app.MsgInvalidFormData)
			return
		}
	}

	if _, err := ctrl.Submit(r.Context()); err != nil {
		data := newFormData(ctrl.Values(), back)
		data.Errors = ctrl.Errors()
		if !errors.Is(err, validators.ErrValidation) {
			data.SubmitError = view.UserMessage(err)
		}
		h.renderPage(w, r, pageCreate, statusFromError(err), createPageData{
			layoutData: newLayout(r, "Create note", ""),
			Form:       data,
		})
		return
	}

	http.Redirect(w, r, back, http.StatusSeeOther)
}
