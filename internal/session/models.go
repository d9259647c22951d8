package session

import "time"

// Session represents an authenticated admin session.
// The id is not part of the record; it is the key it is stored under.
type Session struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ExpiredAt reports whether the session is no longer valid at t.
// A session expires at its recorded instant, not after it.
func (s *Session) ExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}
