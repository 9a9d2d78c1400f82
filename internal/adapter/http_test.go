// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/note-hub/internal/config"
	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/models"
)

func newTestAdapter(t *testing.T, serverURL string) NotesAdapter {
	t.Helper()
	a, err := NewHTTPNotesAdapter(config.Adapter{
		BaseURL:        serverURL,
		RequestTimeout: config.Duration(5 * time.Second),
	}, logger.Nop())
	require.NoError(t, err)
	return a
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func strPtr(s string) *string { return &s }

// ── ListNotes ───────────────────────────────────────────────────────────────

func TestListNotes_QueryParams(t *testing.T) {
	tests := []struct {
		name       string
		params     models.ListParams
		wantTag    string
		hasTag     bool
		wantSearch string
		hasSearch  bool
	}{
		{name: "all tag omitted", params: models.ListParams{Page: 1, PerPage: 12, Tag: "All"}},
		{name: "lowercase all omitted", params: models.ListParams{Page: 1, PerPage: 12, Tag: "all"}},
		{name: "empty tag omitted", params: models.ListParams{Page: 1, PerPage: 12}},
		{name: "tag sent", params: models.ListParams{Page: 2, PerPage: 12, Tag: "Work"}, wantTag: "Work", hasTag: true},
		{name: "search sent", params: models.ListParams{Page: 1, PerPage: 12, Search: "milk"}, wantSearch: "milk", hasSearch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/notes", r.URL.Path)

				q := r.URL.Query()
				assert.Equal(t, "12", q.Get("perPage"))
				assert.Equal(t, tt.hasTag, q.Has("tag"))
				assert.Equal(t, tt.wantTag, q.Get("tag"))
				assert.Equal(t, tt.hasSearch, q.Has("search"))
				assert.Equal(t, tt.wantSearch, q.Get("search"))

				writeJSON(t, w, http.StatusOK, models.NotesPage{
					Notes:      []models.Note{{ID: 1, Title: "Milk", Tag: models.TagShopping}},
					TotalPages: 3,
				})
			}))
			defer srv.Close()

			page, err := newTestAdapter(t, srv.URL).ListNotes(context.Background(), tt.params)

			require.NoError(t, err)
			assert.Equal(t, 3, page.TotalPages)
			require.Len(t, page.Notes, 1)
			assert.Equal(t, "Milk", page.Notes[0].Title)
		})
	}
}

func TestListNotes_EmptyPageHasNonNilSlice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"totalPages": 0})
	}))
	defer srv.Close()

	page, err := newTestAdapter(t, srv.URL).ListNotes(context.Background(), models.ListParams{Page: 1, PerPage: 12})

	require.NoError(t, err)
	assert.NotNil(t, page.Notes)
	assert.Empty(t, page.Notes)
}

func TestListNotes_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).ListNotes(context.Background(), models.ListParams{Page: 1, PerPage: 12})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "boom", httpErr.Body)
}

func TestListNotes_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestAdapter(t, url).ListNotes(context.Background(), models.ListParams{Page: 1, PerPage: 12})

	assert.ErrorIs(t, err, ErrNetwork)
	assert.False(t, IsHTTPError(err))
}

// ── GetNote ─────────────────────────────────────────────────────────────────

func TestGetNote_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notes/42", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.Note{ID: 42, Title: "Standup", Tag: models.TagMeeting})
	}))
	defer srv.Close()

	note, err := newTestAdapter(t, srv.URL).GetNote(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), note.ID)
	assert.Equal(t, models.TagMeeting, note.Tag)
}

func TestGetNote_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).GetNote(context.Background(), 7)

	assert.ErrorIs(t, err, ErrNotFound)
}

// ── CreateNote ──────────────────────────────────────────────────────────────

func TestCreateNote_ContentHandling(t *testing.T) {
	tests := []struct {
		name        string
		content     *string
		wantContent bool
	}{
		{name: "nil omitted", content: nil},
		{name: "blank omitted", content: strPtr("   ")},
		{name: "text sent", content: strPtr("bread"), wantContent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/notes", r.URL.Path)

				raw, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				var body map[string]any
				require.NoError(t, json.Unmarshal(raw, &body))

				assert.Equal(t, "Groceries", body["title"])
				assert.Equal(t, "Shopping", body["tag"])
				_, has := body["content"]
				assert.Equal(t, tt.wantContent, has)

				writeJSON(t, w, http.StatusCreated, models.Note{ID: 9, Title: "Groceries", Tag: models.TagShopping})
			}))
			defer srv.Close()

			note, err := newTestAdapter(t, srv.URL).CreateNote(context.Background(), models.NewNotePayload{
				Title:   "Groceries",
				Content: tt.content,
				Tag:     models.TagShopping,
			})

			require.NoError(t, err)
			assert.Equal(t, int64(9), note.ID)
		})
	}
}

func TestCreateNote_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "title too short", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).CreateNote(context.Background(), models.NewNotePayload{Title: "x", Tag: models.TagTodo})

	assert.ErrorIs(t, err, ErrBadRequest)
}

// ── auth and construction ───────────────────────────────────────────────────

func TestBearerTokenSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer opaque-key", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.Note{ID: 1})
	}))
	defer srv.Close()

	for _, token := range []string{"opaque-key", "Bearer opaque-key"} {
		a, err := NewHTTPNotesAdapter(config.Adapter{BaseURL: srv.URL, Token: token}, logger.Nop())
		require.NoError(t, err)

		_, err = a.GetNote(context.Background(), 1)
		require.NoError(t, err, token)
	}
}

func TestNewHTTPNotesAdapter_ExpiredToken(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewHTTPNotesAdapter(config.Adapter{BaseURL: "http://api.local", Token: token}, logger.Nop())

	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestNewHTTPNotesAdapter_InvalidBaseURL(t *testing.T) {
	_, err := NewHTTPNotesAdapter(config.Adapter{BaseURL: "  "}, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidBaseURL)
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := normalizeBaseURL("api.local/v1/")
	require.NoError(t, err)
	assert.Equal(t, "https://api.local/v1", got)

	got, err = normalizeBaseURL("http://127.0.0.1:8080")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080", got)
}

func TestRateLimiter_HonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.Note{ID: 1})
	}))
	defer srv.Close()

	a, err := NewHTTPNotesAdapter(config.Adapter{BaseURL: srv.URL, RateLimitRPS: 0.001, RateLimitBurst: 1}, logger.Nop())
	require.NoError(t, err)

	_, err = a.GetNote(context.Background(), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = a.GetNote(ctx, 1)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestHTTPError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, &HTTPError{StatusCode: http.StatusTeapot}, ErrHTTP)
	assert.ErrorIs(t, &HTTPError{StatusCode: http.StatusUnauthorized}, ErrUnauthorized)
	assert.Equal(t, "http 403: Forbidden", (&HTTPError{StatusCode: http.StatusForbidden}).Error())
}
