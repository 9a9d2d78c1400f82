package view

import (
	"context"
	"errors"

	"github.com/MKhiriev/note-hub/internal/adapter"
	"github.com/MKhiriev/note-hub/internal/query"
	"github.com/MKhiriev/note-hub/internal/service"
	"github.com/MKhiriev/note-hub/models"
)

// DetailState is the render model of one note.
type DetailState struct {
	ID      int64
	Note    models.Note
	HasData bool

	IsLoading    bool
	IsError      bool
	NotFound     bool
	Err          error
	ErrorMessage string
}

// NoteDetail is the view model of /notes/{id}. Data prefetched on the server
// and hydrated into the cache is shown without another API call.
type NoteDetail struct {
	svc      service.NotesService
	id       int64
	observer *query.Observer[models.Note]
}

// NewNoteDetail observes ["note", id].
func NewNoteDetail(svc service.NotesService, id int64) *NoteDetail {
	d := &NoteDetail{
		svc:      svc,
		id:       id,
		observer: query.NewObserver[models.Note](svc.Cache(), false),
	}
	d.observer.SetKey(service.NoteKey(id))
	return d
}

// ID returns the observed note id.
func (d *NoteDetail) ID() int64 {
	return d.id
}

// Load fetches the note through the cache.
func (d *NoteDetail) Load(ctx context.Context) (models.Note, error) {
	return d.observer.Fetch(ctx, d.svc.NoteOptions(d.id))
}

// State derives the render model.
func (d *NoteDetail) State() DetailState {
	res := d.observer.Result()
	return DetailState{
		ID:           d.id,
		Note:         res.Data,
		HasData:      res.HasData,
		IsLoading:    res.IsLoading,
		IsError:      res.IsError,
		NotFound:     errors.Is(res.Err, adapter.ErrNotFound),
		Err:          res.Err,
		ErrorMessage: UserMessage(res.Err),
	}
}

// Close releases the cache subscription.
func (d *NoteDetail) Close() {
	d.observer.Close()
}
