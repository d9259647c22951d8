package auth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"cenovnik/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionManager is the part of the session manager the handlers use.
type SessionManager interface {
	Create(ctx context.Context, username string) (string, error)
	Get(ctx context.Context, id string) (*session.Session, error)
	Destroy(ctx context.Context, id string) bool
}

// CookieOptions controls the session cookie.
type CookieOptions struct {
	MaxAge time.Duration
	Secure bool
}

// Handler handles admin authentication HTTP requests
type Handler struct {
	auth     *Authenticator
	sessions SessionManager
	cookie   CookieOptions
	logger   *slog.Logger
}

// NewHandler creates a new authentication handler
func NewHandler(auth *Authenticator, sessions SessionManager, cookie CookieOptions, logger *slog.Logger) *Handler {
	return &Handler{
		auth:     auth,
		sessions: sessions,
		cookie:   cookie,
		logger:   logger,
	}
}

// Login handles POST /admin/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if !h.auth.Authenticate(req.Username, req.Password) {
		h.logger.Warn("Admin login rejected",
			"username", req.Username,
			"request_id", c.GetString("request_id"),
		)
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
		return
	}

	sessionID, err := h.sessions.Create(c.Request.Context(), req.Username)
	if err != nil {
		h.logger.Error("Failed to create session", "username", req.Username, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create session"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, sessionID, int(h.cookie.MaxAge.Seconds()), "/", "", h.cookie.Secure, true)

	c.JSON(http.StatusOK, LoginResponse{Success: true})
}

// Logout handles POST /admin/logout
func (h *Handler) Logout(c *gin.Context) {
	destroyed := false
	if sessionID, err := c.Cookie(SessionCookie); err == nil {
		destroyed = h.sessions.Destroy(c.Request.Context(), sessionID)
	}

	c.SetCookie(SessionCookie, "", -1, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, LogoutResponse{Success: true, Destroyed: destroyed})
}

// Session handles GET /admin/session
func (h *Handler) Session(c *gin.Context) {
	sessionID, err := c.Cookie(SessionCookie)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized: no session cookie"})
		return
	}

	sess, err := h.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized: invalid session"})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		Valid:     true,
		Username:  sess.Username,
		ExpiresAt: sess.ExpiresAt,
	})
}
