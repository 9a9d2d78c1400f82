// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the input rules of the create-note form.
//
// [ValidateNoteFields] is a pure function used by the form controller on
// every change, blur and submit. [NoteValidator] wraps it behind the
// [Validator] interface for the web handlers, returning a [*ValidationError]
// that carries the same per-field messages.
package validators

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

// Validator validates an input value, optionally restricted to the named
// fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
