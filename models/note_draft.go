package models

import "strings"

// NoteDraft holds the raw values of the create-note form.
type NoteDraft struct {
	Title   string
	Content string
	Tag     Tag
}

// NewNoteDraft returns an empty draft with [DefaultTag] preselected.
func NewNoteDraft() NoteDraft {
	return NoteDraft{Tag: DefaultTag}
}

// Payload converts the draft into a create request: the title is trimmed and
// blank content is omitted.
func (d NoteDraft) Payload() NewNotePayload {
	payload := NewNotePayload{
		Title: strings.TrimSpace(d.Title),
		Tag:   d.Tag,
	}
	if content := strings.TrimSpace(d.Content); content != "" {
		payload.Content = &content
	}
	return payload
}
