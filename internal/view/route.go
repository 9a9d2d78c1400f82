package view

import (
	"errors"
	"strconv"
	"strings"

	"github.com/MKhiriev/note-hub/models"
)

// ErrInvalidNoteID is returned for ids that are not positive integers.
var ErrInvalidNoteID = errors.New("invalid note id")

// TagFromSegments returns the tag filter of a /notes/filter/... route: the
// first segment, or "All" when there is none.
func TagFromSegments(segments []string) string {
	if len(segments) == 0 {
		return models.TagAll
	}
	if tag := strings.TrimSpace(segments[0]); tag != "" {
		return tag
	}
	return models.TagAll
}

// ParseNoteID parses the id segment of a /notes/{id} route.
func ParseNoteID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidNoteID
	}
	return id, nil
}
