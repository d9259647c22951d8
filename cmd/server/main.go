package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cenovnik/internal/auth"
	"cenovnik/internal/config"
	"cenovnik/internal/kafka"
	"cenovnik/internal/listing"
	"cenovnik/internal/logger"
	"cenovnik/internal/markets"
	"cenovnik/internal/server"
	"cenovnik/internal/session"
	"cenovnik/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize structured logger
	log := logger.New()
	logger.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	slog.Info("Starting cenovnik backend",
		"port", cfg.Port,
		"storage", cfg.StorageBackend,
		"session_store", cfg.SessionStore,
		"kafka", cfg.KafkaEnabled,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := newStorage(ctx, cfg, log)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	sessionStore, closeSessions, err := newSessionStore(ctx, cfg, log)
	if err != nil {
		slog.Error("Failed to initialize session store", "error", err)
		os.Exit(1)
	}
	defer closeSessions()

	sessions := session.NewManager(sessionStore, log, session.WithTTL(cfg.SessionTTL))
	if _, err := sessions.Load(ctx); err != nil {
		slog.Warn("Failed to load sessions", "error", err)
	}

	authenticator := auth.NewAuthenticator(auth.Credentials{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
	}, log)
	if !authenticator.Configured() {
		slog.Warn("Admin login is disabled until ADMIN_USERNAME and ADMIN_PASSWORD are set")
	}
	authHandler := auth.NewHandler(authenticator, sessions, auth.CookieOptions{
		MaxAge: cfg.SessionTTL,
		Secure: cfg.Production,
	}, log)

	catalogue, err := markets.Load(cfg.MarketsFile)
	if err != nil {
		slog.Error("Failed to load markets", "error", err)
		os.Exit(1)
	}

	var listingOpts []listing.Option
	if cfg.KafkaEnabled {
		kafkaCfg, err := kafka.LoadConfig()
		if err != nil {
			slog.Error("Failed to load Kafka config", "error", err)
			os.Exit(1)
		}
		producer, err := kafka.NewProducer(kafkaCfg, log)
		if err != nil {
			// events are best effort; serve without them
			slog.Warn("Kafka producer unavailable, listing events disabled", "error", err)
		} else {
			defer producer.Close()
			listingOpts = append(listingOpts, listing.WithEvents(producer))
		}
	}

	listings := listing.NewService(store, listing.NewCache(), log, listingOpts...)

	srv := server.New(server.Deps{
		Config:   cfg,
		Listings: listings,
		Storage:  store,
		Markets:  catalogue,
		Auth:     authHandler,
		Sessions: sessions,
		Logger:   log,
	})
	httpServer := srv.HTTPServer()

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server stopped")
}

func newStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Service, error) {
	if cfg.StorageBackend == config.StorageS3 {
		s, err := storage.NewS3(ctx, storage.S3Options{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Prefix:    cfg.S3.Prefix,
			UseSSL:    cfg.S3.UseSSL,
			Region:    cfg.S3.Region,
		}, log)
		if err != nil {
			return nil, err
		}
		log.Info("Connected to storage (S3)", "bucket", cfg.S3.Bucket)
		return s, nil
	}

	d, err := storage.NewDisk(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	log.Info("Using local upload directory", "dir", d.Dir())
	return d, nil
}

func newSessionStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (session.Store, func(), error) {
	if cfg.SessionStore == config.SessionStoreRedis {
		rs := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if err := rs.Ping(ctx); err != nil {
			rs.Close()
			return nil, nil, err
		}
		log.Info("Connected to Redis", "addr", cfg.RedisAddr)
		return rs, func() { rs.Close() }, nil
	}

	fs, err := session.NewFileStore(cfg.SessionsDir, log)
	if err != nil {
		return nil, nil, err
	}
	return fs, func() {}, nil
}
