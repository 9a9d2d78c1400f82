// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// Tag is the category a note belongs to. The set of tags is closed: only the
// values listed in [Tags] are accepted by the NoteHub API.
type Tag string

const (
	TagTodo     Tag = "Todo"
	TagWork     Tag = "Work"
	TagPersonal Tag = "Personal"
	TagMeeting  Tag = "Meeting"
	TagShopping Tag = "Shopping"
)

// TagAll is the route sentinel meaning "no tag filter". It is never stored on
// a note and is matched case-insensitively.
const TagAll = "All"

// DefaultTag is preselected in a fresh create-note form.
const DefaultTag = TagTodo

// Tags lists every valid tag in display order.
var Tags = []Tag{TagTodo, TagWork, TagPersonal, TagMeeting, TagShopping}

// IsValid reports whether t is one of [Tags].
func (t Tag) IsValid() bool {
	for _, tag := range Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (t Tag) String() string {
	return string(t)
}

// IsAllTag reports whether a route tag means "no filter": empty, blank or
// "All" in any letter case.
func IsAllTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	return tag == "" || strings.EqualFold(tag, TagAll)
}

// Note is a single note as returned by the NoteHub API.
//
// ID is assigned by the server on creation and never changes. Notes are never
// edited or deleted by this application; the values held here are transient
// copies that live only as long as the query cache keeps them.
type Note struct {
	// ID is the server-assigned identifier.
	ID int64 `json:"id"`

	// Title is a short heading, 3 to 50 characters.
	Title string `json:"title"`

	// Content is the optional body, at most 500 characters.
	Content string `json:"content"`

	// Tag is one of [Tags].
	Tag Tag `json:"tag"`

	// CreatedAt and UpdatedAt are filled by the server when it reports them.
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewNotePayload is the body of a create-note request.
type NewNotePayload struct {
	Title string `json:"title"`

	// Content is nil when the user left the field blank; the field is then
	// omitted from the request entirely.
	Content *string `json:"content,omitempty"`

	Tag Tag `json:"tag"`
}
