package tui

import (
	"github.com/MKhiriev/note-hub/internal/query"
	"github.com/MKhiriev/note-hub/models"
)

type listLoadedMsg struct {
	key query.Key
	err error
}

// searchCommitMsg fires when the search debounce period of gen is over.
type searchCommitMsg struct {
	gen uint64
}

type noteLoadedMsg struct {
	id  int64
	err error
}

type noteCreatedMsg struct {
	note models.Note
	err  error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
