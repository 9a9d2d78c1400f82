package view

import (
	"errors"

	"github.com/MKhiriev/note-hub/internal/adapter"
	"github.com/MKhiriev/note-hub/internal/app"
)

// UserMessage turns a fetch error into the text shown in a view. Details of
// transport and API failures stay in the logs.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, adapter.ErrNotFound), errors.Is(err, ErrInvalidNoteID):
		return app.MsgNoteNotFound
	default:
		return app.MsgSomethingWrong
	}
}
