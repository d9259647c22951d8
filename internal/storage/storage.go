// Package storage keeps the uploaded price-list files. Files are addressed by
// flat names (no directories); the default backend is a local directory and an
// S3-compatible bucket (MinIO) can be used instead.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrNotFound is returned when a named file does not exist
	ErrNotFound = errors.New("file not found")
	// ErrInvalidName is returned for names that are empty or contain path elements
	ErrInvalidName = errors.New("invalid file name")
)

// Service defines the interface for upload storage operations
type Service interface {
	// Save stores r under name, replacing any existing file
	Save(ctx context.Context, name string, r io.Reader) error

	// Open returns the contents of name; the caller closes it
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// List returns the names of all stored files
	List(ctx context.Context) ([]string, error)

	// Delete removes name; deleting a missing file is not an error
	Delete(ctx context.Context, name string) error

	// Health checks if the storage backend is accessible
	Health(ctx context.Context) error
}

// ValidateName rejects names that could escape the storage root.
func ValidateName(name string) error {
	if name == "" || name == "." || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
