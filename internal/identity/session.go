package identity

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/models"
)

// SessionCookieName is the cookie carrying the server-side session id.
const SessionCookieName = "tk_session"

// SessionStrategy resolves the session named by the session cookie.
// Any problem with the session makes it Unauthenticated, never Failed.
type SessionStrategy struct {
	sessions store.SessionStore
	now      func() time.Time
}

func NewSessionStrategy(sessions store.SessionStore) *SessionStrategy {
	return &SessionStrategy{sessions: sessions, now: time.Now}
}

func (s *SessionStrategy) Name() string { return "session" }

func (s *SessionStrategy) Resolve(r *http.Request) Result {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return Result{Outcome: Unauthenticated}
	}

	session, err := s.sessions.GetSession(r.Context(), cookie.Value)
	if err != nil {
		return Result{Outcome: Unauthenticated, Err: err}
	}
	if !session.IsAuthenticated() || session.IsExpired(s.now()) {
		return Result{Outcome: Unauthenticated}
	}

	return Result{
		Outcome: Authenticated,
		Identity: models.Identity{
			UserID: session.UserID,
			Email:  session.Email,
			Name:   session.Name,
		},
	}
}
