// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains user-facing message strings shared by the validators,
// the web handlers and the terminal client, so both front ends word things
// the same way.
package app

// Form validation messages.
const (
	MsgRequired        = "Required"
	MsgTitleTooShort   = "Min 3 characters"
	MsgTitleTooLong    = "Max 50 characters"
	MsgContentTooLong  = "Max 500 characters"
	MsgTagNotAllowed   = "Must be one of: Todo, Work, Personal, Meeting, Shopping"
	MsgInvalidFormData = "invalid data provided"
)

// View messages.
const (
	MsgLoadingNotes   = "Loading notes..."
	MsgLoadingNote    = "Loading, please wait..."
	MsgNoNotesFound   = "No notes found. Try adjusting your search."
	MsgNoteNotFound   = "Note not found."
	MsgCreating       = "Creating..."
	MsgCreateNote     = "Create note +"
	MsgSomethingWrong = "Something went wrong."
	MsgNoNetwork      = "No network or the NoteHub API is unavailable."
)

// API messages.
const (
	MsgInternalServerError = "internal server error"
	MsgUpstreamUnavailable = "notes service unavailable"
	MsgInvalidNoteID       = "invalid note id"
	MsgNotFound            = "not found"
)
