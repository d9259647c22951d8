package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Store defines the durable side of session storage.
type Store interface {
	Save(ctx context.Context, id string, s *Session) error
	Delete(ctx context.Context, id string) error
	// LoadAll returns every readable session; unreadable records are skipped.
	LoadAll(ctx context.Context) (map[string]*Session, error)
}

const sessionFileExt = ".json"

// FileStore keeps one JSON file per session, named after the session id.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Save writes the session to <dir>/<id>.json, replacing any previous copy.
func (f *FileStore) Save(_ context.Context, id string, s *Session) error {
	path, err := f.path(id)
	if err != nil {
		return err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Delete removes the session file. A missing file is not an error.
func (f *FileStore) Delete(_ context.Context, id string) error {
	path, err := f.path(id)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// LoadAll reads every *.json file in the directory.
func (f *FileStore) LoadAll(_ context.Context) (map[string]*Session, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read session directory: %w", err)
	}

	sessions := make(map[string]*Session, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, sessionFileExt) {
			continue
		}

		id := strings.TrimSuffix(name, sessionFileExt)
		data, err := os.ReadFile(filepath.Join(f.dir, name))
		if err != nil {
			f.logger.Error("Error reading session file", "file", name, "error", err)
			continue
		}

		var s Session
		if err := json.Unmarshal(data, &s); err != nil {
			f.logger.Error("Error parsing session file", "file", name, "error", err)
			continue
		}
		sessions[id] = &s
	}

	return sessions, nil
}

// path maps an id to its file, refusing ids that would escape the directory.
func (f *FileStore) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", fmt.Errorf("invalid session id %q", id)
	}
	return filepath.Join(f.dir, id+sessionFileExt), nil
}
