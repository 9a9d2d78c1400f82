package http

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/note-hub/internal/app"
	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/session"
	"github.com/MKhiriev/note-hub/internal/utils"
)

type sessionCtxKey struct{}

// withSession resolves the session cookie into a live session, starting one
// when the cookie is missing or refers to an expired session.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if cookie, err := r.Cookie(h.cfg.SessionCookie); err == nil {
			id = cookie.Value
		}

		s, started, err := h.sessions.GetOrStart(id)
		if err != nil {
			logger.FromRequest(r).Err(err).Msg("failed to start session")
			http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}

		if started {
			http.SetCookie(w, &http.Cookie{
				Name:     h.cfg.SessionCookie,
				Value:    s.ID(),
				Path:     "/",
				MaxAge:   int(h.sessions.TTL().Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		l := logger.FromRequest(r).GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("session_id", s.ID())
		})

		ctx := context.WithValue(r.Context(), sessionCtxKey{}, s)
		ctx = context.WithValue(ctx, utils.SessionIDCtxKey, s.ID())
		next.ServeHTTP(w, r.WithContext(l.WithContext(ctx)))
	})
}

func sessionFromRequest(r *http.Request) (*session.Session, error) {
	s, ok := r.Context().Value(sessionCtxKey{}).(*session.Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}
