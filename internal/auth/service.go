// Package auth implements the admin credential check and the login,
// logout and session-status endpoints built on top of it.
package auth

import (
	"crypto/subtle"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Credentials is the single configured admin account.
// PasswordHash, when set, is a bcrypt hash and takes precedence over Password.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Authenticator checks submitted credentials against the configured ones.
type Authenticator struct {
	creds  Credentials
	logger *slog.Logger
}

// NewAuthenticator creates an authenticator for creds.
func NewAuthenticator(creds Credentials, logger *slog.Logger) *Authenticator {
	return &Authenticator{creds: creds, logger: logger}
}

// Configured reports whether both a username and a secret are set.
func (a *Authenticator) Configured() bool {
	return a.creds.Username != "" && (a.creds.Password != "" || a.creds.PasswordHash != "")
}

// Authenticate returns true only on an exact match with the configured account.
// It always fails when the account is not configured.
func (a *Authenticator) Authenticate(username, password string) bool {
	if !a.Configured() {
		a.logger.Error("Missing ADMIN_USERNAME or ADMIN_PASSWORD in environment")
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.creds.Username)) == 1

	var passOK bool
	if a.creds.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(a.creds.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.creds.Password)) == 1
	}

	return userOK && passOK
}
