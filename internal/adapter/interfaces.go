// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the typed client of the remote NoteHub API.
//
// [NotesAdapter] decouples the service layer from the wire protocol. The
// package ships an HTTP/JSON implementation ([NewHTTPNotesAdapter]) built on
// resty. The adapter is a stateless translator: it never retries and never
// caches; both concerns belong to the query cache.
//
// Non-2xx responses are returned as [*HTTPError], which unwraps to the
// sentinel values in errors.go so callers can use [errors.Is] (e.g.
// [ErrNotFound] for 404). Transport failures wrap [ErrNetwork].
package adapter

import (
	"context"

	"github.com/MKhiriev/note-hub/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/notes_adapter_mock.go -package=mock

// NotesAdapter is the client contract of the NoteHub API.
type NotesAdapter interface {
	// ListNotes fetches one page of notes. The tag filter is omitted when
	// params.Tag is empty or "All" in any case; the search filter is omitted
	// when params.Search is empty.
	ListNotes(ctx context.Context, params models.ListParams) (models.NotesPage, error)

	// GetNote fetches a single note. A missing note yields [ErrNotFound].
	GetNote(ctx context.Context, id int64) (models.Note, error)

	// CreateNote stores a new note and returns it with its server id. A nil
	// or blank Content is not sent.
	CreateNote(ctx context.Context, payload models.NewNotePayload) (models.Note, error)
}
