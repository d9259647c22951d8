package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Disk stores files in a single local directory.
type Disk struct {
	dir string
}

// NewDisk creates dir if needed and returns a store rooted there.
func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Disk{dir: dir}, nil
}

// Dir returns the directory files are kept in.
func (d *Disk) Dir() string {
	return d.dir
}

// Save writes r to a temporary file and renames it into place, so a reader
// never sees a half-written spreadsheet.
func (d *Disk) Save(_ context.Context, name string, r io.Reader) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", name, err)
	}

	if err := os.Rename(tmpName, filepath.Join(d.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to store %s: %w", name, err)
	}
	return nil
}

// Open opens a stored file for reading.
func (d *Disk) Open(_ context.Context, name string) (io.ReadCloser, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(d.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return f, nil
}

// List returns regular files in the directory, skipping in-flight temp files.
func (d *Disk) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Delete removes a stored file.
func (d *Disk) Delete(_ context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(d.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}

// Health checks that the directory is still there.
func (d *Disk) Health(_ context.Context) error {
	info, err := os.Stat(d.dir)
	if err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage health check failed: %s is not a directory", d.dir)
	}
	return nil
}
