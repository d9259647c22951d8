// Package listing owns the uploaded price lists: it stores each upload under
// a timestamped name, parses it and serves the latest parsed entry per
// market and location.
package listing

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"cenovnik/internal/spreadsheet"
	"cenovnik/internal/storage"
)

// EventPublisher receives listing events. Implemented by kafka.Producer.
type EventPublisher interface {
	Publish(ctx context.Context, key string, payload any) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, any) error { return nil }

// Service handles uploads and lookups of listings
type Service struct {
	store  storage.Service
	cache  *Cache
	locks  keyLocks
	events EventPublisher
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithEvents publishes a listing.updated event after every successful upload.
func WithEvents(p EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.events = p
		}
	}
}

// WithClock overrides the time source used for stored file names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a listing service over store.
func NewService(store storage.Service, cache *Cache, logger *slog.Logger, opts ...Option) *Service {
	if cache == nil {
		cache = NewCache()
	}
	s := &Service{
		store:  store,
		cache:  cache,
		events: noopPublisher{},
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload stores and parses a spreadsheet and makes it the entry for its key.
// On a parse failure the new file is removed and the previous entry stays.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (*Entry, error) {
	key := NewKey(req.Market, req.Location)
	if key.Market == "" {
		return nil, ErrMarketRequired
	}
	if req.Body == nil {
		return nil, ErrFileRequired
	}
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if !spreadsheet.Supported(req.OriginalName) {
		return nil, &ParseError{
			FileName: req.OriginalName,
			Err:      fmt.Errorf("%w: %q", spreadsheet.ErrUnsupportedFormat, filepath.Ext(req.OriginalName)),
		}
	}

	unlock := s.locks.lock(key)
	defer unlock()

	name := FileName(key, s.now(), filepath.Ext(req.OriginalName))
	if err := s.store.Save(ctx, name, req.Body); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	result, err := s.parse(ctx, name)
	if err != nil {
		if delErr := s.store.Delete(ctx, name); delErr != nil {
			s.logger.Warn("Failed to remove unparseable upload", "file", name, "error", delErr)
		}
		return nil, err
	}

	entry := &Entry{
		Products:   result.Products,
		FileName:   name,
		UpdateInfo: result.UpdateInfo,
	}
	s.cache.Set(key, entry)
	s.removeSiblings(ctx, key, name)

	s.logger.Info("Listing updated",
		"market", key.Market,
		"location", key.Location,
		"file", name,
		"products", len(entry.Products))

	s.publish(ctx, key, entry)

	return entry, nil
}

// Lookup returns the entry for a key, falling back to the newest stored file
// when nothing is cached. A key with no file yields an empty entry.
func (s *Service) Lookup(ctx context.Context, market, location string) (*Entry, error) {
	key := NewKey(market, location)
	if err := key.Validate(); err != nil {
		return nil, err
	}

	if e, ok := s.cache.Get(key); ok {
		return e, nil
	}

	unlock := s.locks.lock(key)
	defer unlock()

	// an upload may have filled the cache while we waited
	if e, ok := s.cache.Get(key); ok {
		return e, nil
	}

	names, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored files: %w", err)
	}

	name, ok := newest(key, names)
	if !ok {
		return EmptyEntry(), nil
	}

	result, err := s.parse(ctx, name)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		Products:   result.Products,
		FileName:   name,
		UpdateInfo: result.UpdateInfo,
	}
	s.cache.Set(key, entry)

	s.logger.Debug("Listing loaded from storage", "market", key.Market, "location", key.Location, "file", name)
	return entry, nil
}

func (s *Service) parse(ctx context.Context, name string) (*spreadsheet.Result, error) {
	rc, err := s.store.Open(ctx, name)
	if err != nil {
		return nil, &ParseError{FileName: name, Err: err}
	}
	defer rc.Close()

	result, err := spreadsheet.Parse(rc, name)
	if err != nil {
		return nil, &ParseError{FileName: name, Err: err}
	}
	return result, nil
}

// removeSiblings deletes every other stored file of key. Failures are logged;
// the fresh entry is already being served.
func (s *Service) removeSiblings(ctx context.Context, key Key, keep string) {
	names, err := s.store.List(ctx)
	if err != nil {
		s.logger.Warn("Failed to list files for cleanup", "key", key.String(), "error", err)
		return
	}
	for _, name := range names {
		if name == keep || !BelongsTo(key, name) {
			continue
		}
		if err := s.store.Delete(ctx, name); err != nil {
			s.logger.Warn("Failed to delete old listing file", "file", name, "error", err)
			continue
		}
		s.logger.Debug("Deleted old listing file", "file", name)
	}
}

func (s *Service) publish(ctx context.Context, key Key, entry *Entry) {
	event := UpdatedEvent{
		Type:         EventListingUpdated,
		Market:       key.Market,
		Location:     key.Location,
		FileName:     entry.FileName,
		ProductCount: len(entry.Products),
		UpdateInfo:   entry.UpdateInfo,
		OccurredAt:   s.now().UTC(),
	}
	if err := s.events.Publish(ctx, key.String(), event); err != nil {
		s.logger.Warn("Failed to publish listing event", "key", key.String(), "error", err)
	}
}
