package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/note-hub/internal/app"
	"github.com/MKhiriev/note-hub/models"
)

const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldTag     = "tag"
)

const (
	TitleMinLength   = 3
	TitleMaxLength   = 50
	ContentMaxLength = 500
)

var fieldOrder = []string{FieldTitle, FieldContent, FieldTag}

// FieldErrors maps a field name to its message. An empty map means valid.
type FieldErrors map[string]string

// Names returns the failing fields in form order.
func (f FieldErrors) Names() []string {
	names := make([]string, 0, len(f))
	for _, name := range fieldOrder {
		if _, ok := f[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// Valid reports whether there are no messages.
func (f FieldErrors) Valid() bool {
	return len(f) == 0
}

// ValidateNoteFields checks a draft and returns a message per failing field.
// With fields given only those are checked. Lengths count characters, not
// bytes; the title is measured after trimming surrounding spaces.
func ValidateNoteFields(draft models.NoteDraft, fields ...string) FieldErrors {
	errs := FieldErrors{}
	if shouldValidate(FieldTitle, fields) {
		if msg := titleMessage(draft.Title); msg != "" {
			errs[FieldTitle] = msg
		}
	}
	if shouldValidate(FieldContent, fields) {
		if utf8.RuneCountInString(draft.Content) > ContentMaxLength {
			errs[FieldContent] = app.MsgContentTooLong
		}
	}
	if shouldValidate(FieldTag, fields) {
		switch {
		case draft.Tag == "":
			errs[FieldTag] = app.MsgRequired
		case !draft.Tag.IsValid():
			errs[FieldTag] = app.MsgTagNotAllowed
		}
	}
	return errs
}

func titleMessage(title string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	switch {
	case n == 0:
		return app.MsgRequired
	case n < TitleMinLength:
		return app.MsgTitleTooShort
	case n > TitleMaxLength:
		return app.MsgTitleTooLong
	default:
		return ""
	}
}

func shouldValidate(field string, fields []string) bool {
	if len(fields) == 0 {
		return true
	}
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

// NoteValidator implements [Validator] for note drafts and create payloads.
type NoteValidator struct{}

func NewNoteValidator() Validator {
	return &NoteValidator{}
}

// Validate returns a [*ValidationError] when obj breaks a note rule,
// [ErrUnknownField] for a field name it does not know and
// [ErrUnsupportedType] for other values.
func (v *NoteValidator) Validate(_ context.Context, obj any, fields ...string) error {
	for _, f := range fields {
		if !shouldValidate(f, fieldOrder) {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	var draft models.NoteDraft
	switch value := obj.(type) {
	case models.NoteDraft:
		draft = value
	case *models.NoteDraft:
		draft = *value
	case models.NewNotePayload:
		draft = payloadDraft(value)
	case *models.NewNotePayload:
		draft = payloadDraft(*value)
	default:
		return ErrUnsupportedType
	}

	if errs := ValidateNoteFields(draft, fields...); !errs.Valid() {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func payloadDraft(p models.NewNotePayload) models.NoteDraft {
	d := models.NoteDraft{Title: p.Title, Tag: p.Tag}
	if p.Content != nil {
		d.Content = *p.Content
	}
	return d
}
