package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/note-hub/internal/adapter"
	"github.com/MKhiriev/note-hub/internal/service"
	"github.com/MKhiriev/note-hub/internal/validators"
	"github.com/MKhiriev/note-hub/internal/view"
)

var errorStatusMap = map[error]int{
	view.ErrInvalidNoteID:    http.StatusNotFound,
	adapter.ErrNotFound:      http.StatusNotFound,
	validators.ErrValidation: http.StatusUnprocessableEntity,
	service.ErrInvalidPage:   http.StatusBadRequest,
	ErrInvalidFormData:       http.StatusBadRequest,
	ErrNoSession:             http.StatusInternalServerError,

	adapter.ErrNetwork:             http.StatusBadGateway,
	adapter.ErrHTTP:                http.StatusBadGateway,
	adapter.ErrBadRequest:          http.StatusBadGateway,
	adapter.ErrUnauthorized:        http.StatusBadGateway,
	adapter.ErrForbidden:           http.StatusBadGateway,
	adapter.ErrConflict:            http.StatusBadGateway,
	adapter.ErrInternalServerError: http.StatusBadGateway,
	adapter.ErrBadGateway:          http.StatusBadGateway,

	context.DeadlineExceeded: http.StatusGatewayTimeout,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
