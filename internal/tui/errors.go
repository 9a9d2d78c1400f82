// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/note-hub/internal/adapter"
	"github.com/MKhiriev/note-hub/internal/app"
	"github.com/MKhiriev/note-hub/internal/view"
)

func humanizeError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, adapter.ErrNetwork) || errors.Is(err, context.DeadlineExceeded) {
		return app.MsgNoNetwork
	}
	return view.UserMessage(err)
}
