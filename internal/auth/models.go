package auth

import "time"

// SessionCookie is the cookie carrying the admin session id.
const SessionCookie = "session_id"

// LoginRequest is the request payload for admin login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Success bool `json:"success"`
}

// LogoutResponse reports whether a session was actually destroyed
type LogoutResponse struct {
	Success   bool `json:"success"`
	Destroyed bool `json:"destroyed"`
}

// SessionResponse describes the caller's live session
type SessionResponse struct {
	Valid     bool      `json:"valid"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
