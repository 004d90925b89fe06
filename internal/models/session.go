package models

import "time"

// Session is a server-side login session resolved from the opaque token
// carried in the client's cookie.
type Session struct {
	ID        int       `json:"id"`
	Token     string    `json:"-"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given time
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
