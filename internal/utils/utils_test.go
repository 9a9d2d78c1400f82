package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

// ── TokenExpiry ───────────────────────────────────────────────────────────────

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	got, ok, err := TokenExpiry(signToken(t, jwt.MapClaims{"exp": exp.Unix()}))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, exp.Equal(got))
}

func TestTokenExpiry_NoExp(t *testing.T) {
	_, ok, err := TokenExpiry(signToken(t, jwt.MapClaims{"sub": "1"}))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenExpiry_Opaque(t *testing.T) {
	_, _, err := TokenExpiry("opaque-api-key")
	assert.ErrorIs(t, err, ErrNotJWT)

	_, _, err = TokenExpiry("a.b.c")
	assert.ErrorIs(t, err, ErrNotJWT)
}

func TestParseBearerToken(t *testing.T) {
	tok, err := ParseBearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = ParseBearerToken("Basic abc")
	assert.Error(t, err)

	_, err = ParseBearerToken("Bearer ")
	assert.Error(t, err)
}

// ── context ───────────────────────────────────────────────────────────────────

func TestContextIDs(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDCtxKey, "trace-1")
	ctx = context.WithValue(ctx, SessionIDCtxKey, "sess-1")

	id, ok := GetTraceIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "trace-1", id)

	sid, ok := GetSessionIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "sess-1", sid)

	_, ok = GetTraceIDFromContext(context.Background())
	assert.False(t, ok)
}

// ── HTTP helpers ──────────────────────────────────────────────────────────────

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	n, err := WriteJSON(w, map[string]string{"key": "value"}, http.StatusCreated)

	require.NoError(t, err)
	assert.Positive(t, n)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"key":"value"}`, w.Body.String())
}

func TestWriteJSON_Unmarshalable(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "nope", http.StatusBadGateway)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"nope"}`, w.Body.String())
}

func TestNewHTTPClient(t *testing.T) {
	c := NewHTTPClient("http://example.local", 2*time.Second)
	assert.Equal(t, "http://example.local", c.BaseURL)
	assert.Equal(t, "application/json", c.Header.Get("Accept"))
}

func TestUUIDGenerator_Unique(t *testing.T) {
	g := NewUUIDGenerator()
	assert.NotEqual(t, g.Generate(), g.Generate())
}
