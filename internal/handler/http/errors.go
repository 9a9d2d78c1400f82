// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrNoSession is returned when a page handler runs without the session
	// middleware.
	ErrNoSession = errors.New("no session in request context")

	// ErrInvalidFormData is returned when a create request body cannot be
	// parsed.
	ErrInvalidFormData = errors.New("invalid form data")
)
