// Package config loads service configuration from the environment.
// A .env file in the working directory is picked up automatically.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	// StorageDisk keeps uploaded spreadsheets on the local filesystem.
	StorageDisk = "disk"
	// StorageS3 keeps uploaded spreadsheets in an S3-compatible bucket.
	StorageS3 = "s3"

	// SessionStoreFile mirrors sessions to one JSON file each.
	SessionStoreFile = "file"
	// SessionStoreRedis mirrors sessions to Redis keys.
	SessionStoreRedis = "redis"
)

// Config holds all runtime settings of the server.
type Config struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Production   bool

	AllowedOrigins      []string
	MaxUploadBytes      int64
	RequireAdminSession bool

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	SessionTTL    time.Duration
	SessionStore  string
	SessionsDir   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	StorageBackend string
	UploadDir      string
	S3             S3Config

	KafkaEnabled bool

	MarketsFile string
}

// S3Config holds settings for the S3/MinIO upload backend.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
	Region    string
}

// Load reads the configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(GetEnvOrDefault("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(GetEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxUpload, err := strconv.ParseInt(GetEnvOrDefault("MAX_UPLOAD_BYTES", "33554432"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
	}

	cfg := &Config{
		Port:         port,
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second), // uploads
		IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		Production:   os.Getenv("APP_ENV") == "production",

		AllowedOrigins:      splitList(GetEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		MaxUploadBytes:      maxUpload,
		RequireAdminSession: getEnvBool("REQUIRE_ADMIN_SESSION", false),

		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionStore:  strings.ToLower(GetEnvOrDefault("SESSION_STORE", SessionStoreFile)),
		SessionsDir:   GetEnvOrDefault("SESSIONS_DIR", "sessions"),
		RedisAddr:     GetEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		StorageBackend: strings.ToLower(GetEnvOrDefault("STORAGE_BACKEND", StorageDisk)),
		UploadDir:      GetEnvOrDefault("UPLOAD_DIR", "uploads/marketFiles"),
		S3: S3Config{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Bucket:    os.Getenv("S3_BUCKET_NAME"),
			Prefix:    os.Getenv("S3_PREFIX"),
			UseSSL:    getEnvBool("S3_USE_SSL", false),
			Region:    GetEnvOrDefault("S3_REGION", "us-east-1"),
		},

		KafkaEnabled: os.Getenv("KAFKA_BROKERS") != "" && getEnvBool("ENABLE_KAFKA", true),

		MarketsFile: os.Getenv("MARKETS_FILE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected backends have what they need.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}

	switch c.StorageBackend {
	case StorageDisk:
		if c.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR cannot be empty")
		}
	case StorageS3:
		if err := ValidateEnv([]string{"S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET_NAME"}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	switch c.SessionStore {
	case SessionStoreFile, SessionStoreRedis:
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore)
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	return nil
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
