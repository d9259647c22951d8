package auth

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireSession rejects requests that do not carry a live admin session
// and exposes the session's username as "username" in the gin context.
func RequireSession(sessions SessionManager, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "unauthorized: no session cookie",
			})
			return
		}

		sess, err := sessions.Get(c.Request.Context(), sessionID)
		if err != nil {
			logger.Warn("Invalid session",
				"error", err.Error(),
				"request_id", c.GetString("request_id"),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "unauthorized: invalid session",
			})
			return
		}

		c.Set("username", sess.Username)
		c.Next()
	}
}
