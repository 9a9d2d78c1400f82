package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/note-hub/internal/app"
	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/utils"
	"github.com/MKhiriev/note-hub/internal/validators"
	"github.com/MKhiriev/note-hub/internal/view"
	"github.com/MKhiriev/note-hub/models"
)

type createNoteRequest struct {
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Tag     models.Tag `json:"tag"`
}

type validationErrorResponse struct {
	Error  string                 `json:"error"`
	Fields validators.FieldErrors `json:"fields"`
}

// apiMessage is the error text sent to API callers.
func apiMessage(status int) string {
	switch {
	case status == http.StatusNotFound:
		return app.MsgNotFound
	case status == http.StatusBadRequest:
		return app.MsgInvalidFormData
	case status >= http.StatusBadGateway:
		return app.MsgUpstreamUnavailable
	default:
		return app.MsgInternalServerError
	}
}

func (h *Handler) writeAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Int("status", status).Msg("api request failed")
	}
	utils.WriteJSONError(w, apiMessage(status), status)
}

// apiListNotes serves GET /api/notes?search=&page=&tag= through the session
// cache.
func (h *Handler) apiListNotes(w http.ResponseWriter, r *http.Request) {
	s, err := sessionFromRequest(r)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	q := r.URL.Query()
	tag := strings.TrimSpace(q.Get("tag"))
	if tag == "" {
		tag = models.TagAll
	}

	page, err := s.Notes().List(r.Context(), strings.TrimSpace(q.Get("search")), parsePage(q.Get("page")), tag, nil)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}
	_, _ = utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) apiGetNote(w http.ResponseWriter, r *http.Request) {
	s, err := sessionFromRequest(r)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	id, err := view.ParseNoteID(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, app.MsgInvalidNoteID, http.StatusNotFound)
		return
	}

	note, err := s.Notes().Get(r.Context(), id)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}
	_, _ = utils.WriteJSON(w, note, http.StatusOK)
}

// apiCreateNote validates the body with the note validator, creates the
// note and invalidates the session's cached lists.
func (h *Handler) apiCreateNote(w http.ResponseWriter, r *http.Request) {
	s, err := sessionFromRequest(r)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("failed to decode create request")
		h.writeAPIError(w, r, ErrInvalidFormData)
		return
	}

	draft := models.NoteDraft{Title: req.Title, Content: req.Content, Tag: req.Tag}
	if err := h.validator.Validate(r.Context(), draft); err != nil {
		var vErr *validators.ValidationError
		if errors.As(err, &vErr) {
			_, _ = utils.WriteJSON(w, validationErrorResponse{
				Error:  app.MsgInvalidFormData,
				Fields: vErr.Fields,
			}, http.StatusUnprocessableEntity)
			return
		}
		h.writeAPIError(w, r, err)
		return
	}

	note, err := s.Notes().CreateNote(r.Context(), draft.Payload())
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}
	_, _ = utils.WriteJSON(w, note, http.StatusCreated)
}
