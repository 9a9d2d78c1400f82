// Package utils provides general-purpose helper utilities used across
// NoteHub: typed context keys, JSON response writing, the shared HTTP
// client, unverified JWT inspection and id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys, preventing collisions with
// other packages that use string keys.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// TraceIDCtxKey stores the request trace id.
var TraceIDCtxKey = contextKey("traceID")

// SessionIDCtxKey stores the browser session id.
var SessionIDCtxKey = contextKey("sessionID")

// GetTraceIDFromContext returns the trace id stored by the trace middleware.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(TraceIDCtxKey).(string)
	return id, ok && id != ""
}

// GetSessionIDFromContext returns the session id stored by the session
// middleware.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDCtxKey).(string)
	return id, ok && id != ""
}
