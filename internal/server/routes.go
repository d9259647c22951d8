package server

import (
	"net/http"

	"cenovnik/internal/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes builds the gin engine with middleware and all routes.
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(s.logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true, // session cookie
	}))

	r.GET("/", s.rootHandler)
	r.GET("/health", s.healthHandler)

	// the admin frontend calls both spellings
	for _, prefix := range []string{"/admin", "/api/admin"} {
		admin := r.Group(prefix)
		{
			admin.POST("/login", s.auth.Login)
			admin.POST("/logout", s.auth.Logout)
			admin.GET("/session", s.auth.Session)
		}
	}

	upload := []gin.HandlerFunc{s.uploadHandler}
	if s.cfg.RequireAdminSession {
		upload = append([]gin.HandlerFunc{auth.RequireSession(s.sessions, s.logger)}, upload...)
	}
	r.POST("/upload", upload...)

	r.GET("/products", s.productsHandler)
	r.GET("/markets", s.marketsHandler)

	return r
}
