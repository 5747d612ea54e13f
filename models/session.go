package models

import "time"

// Session is a server-side authentication record correlated with a browser
// cookie. It is created when the Google handshake starts (carrying the OAuth
// state) and bound to a user once the callback succeeds.
type Session struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id,omitempty"`
	Email      string    `json:"email,omitempty"`
	Name       string    `json:"name,omitempty"`
	OAuthState string    `json:"oauth_state,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IsAuthenticated reports whether the session has been bound to a user.
func (s Session) IsAuthenticated() bool {
	return s.UserID > 0
}

// IsExpired reports whether the session is no longer valid at now.
func (s Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
