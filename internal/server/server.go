// Package server exposes the listing and admin endpoints over HTTP.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cenovnik/internal/auth"
	"cenovnik/internal/config"
	"cenovnik/internal/listing"
	"cenovnik/internal/markets"
	"cenovnik/internal/storage"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg *config.Config

	listings *listing.Service
	storage  storage.Service
	markets  []markets.Market
	auth     *auth.Handler
	sessions auth.SessionManager
	logger   *slog.Logger
}

// Deps are the components the server routes requests to.
type Deps struct {
	Config   *config.Config
	Listings *listing.Service
	Storage  storage.Service
	Markets  []markets.Market
	Auth     *auth.Handler
	Sessions auth.SessionManager
	Logger   *slog.Logger
}

// New creates a Server from its dependencies.
func New(d Deps) *Server {
	return &Server{
		cfg:      d.Config,
		listings: d.Listings,
		storage:  d.Storage,
		markets:  d.Markets,
		auth:     d.Auth,
		sessions: d.Sessions,
		logger:   d.Logger,
	}
}

// HTTPServer configures the http.Server serving this Server's routes.
func (s *Server) HTTPServer() *http.Server {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.RegisterRoutes(),
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	s.logger.Info("HTTP server configured", "port", s.cfg.Port)
	return server
}
