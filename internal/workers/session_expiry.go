package workers

import "github.com/MKhiriev/note-hub/internal/logger"

// SessionExpiry ends idle web sessions.
type SessionExpiry struct {
	expirer Expirer
	logger  *logger.Logger
}

func NewSessionExpiry(expirer Expirer, log *logger.Logger) *SessionExpiry {
	return &SessionExpiry{expirer: expirer, logger: log.WithComponent("session_expiry")}
}

func (w *SessionExpiry) Run() {
	if n := w.expirer.Expire(); n > 0 {
		w.logger.Debug().Int("expired", n).Msg("sessions expired")
	}
}
