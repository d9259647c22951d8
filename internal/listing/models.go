package listing

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cenovnik/internal/spreadsheet"
)

var (
	// ErrMarketRequired is returned when an upload or lookup names no market
	ErrMarketRequired = errors.New("market is required")
	// ErrFileRequired is returned when an upload carries no file
	ErrFileRequired = errors.New("file is required")
	// ErrInvalidKey is returned when market or location contain path elements
	ErrInvalidKey = errors.New("invalid market or location")
)

// Key identifies one listing. An empty Location is a key of its own, distinct
// from every (Market, Location) pair.
type Key struct {
	Market   string
	Location string
}

// NewKey trims both parts.
func NewKey(market, location string) Key {
	return Key{
		Market:   strings.TrimSpace(market),
		Location: strings.TrimSpace(location),
	}
}

// String renders the key the way it prefixes stored file names.
func (k Key) String() string {
	if k.Location == "" {
		return k.Market
	}
	return k.Market + "_" + k.Location
}

// Validate checks that the key can be used as part of a file name.
func (k Key) Validate() error {
	if k.Market == "" {
		return ErrMarketRequired
	}
	for _, part := range []string{k.Market, k.Location} {
		if strings.ContainsAny(part, `/\`) || strings.Contains(part, "..") {
			return fmt.Errorf("%w: %q", ErrInvalidKey, part)
		}
	}
	return nil
}

// Entry is the parsed listing currently served for a key.
type Entry struct {
	Products   []spreadsheet.Product  `json:"products"`
	FileName   string                 `json:"fileName"`
	UpdateInfo spreadsheet.UpdateInfo `json:"updateInfo"`
}

// EmptyEntry is what a lookup returns for a key with no stored file.
func EmptyEntry() *Entry {
	return &Entry{Products: []spreadsheet.Product{}}
}

// ParseError reports a stored file that could not be parsed.
type ParseError struct {
	FileName string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.FileName, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UploadRequest is one spreadsheet upload.
type UploadRequest struct {
	Market       string
	Location     string
	OriginalName string
	Body         io.Reader
}

// EventListingUpdated is the type of the event published after an upload.
const EventListingUpdated = "listing.updated"

// UpdatedEvent is published after a listing was replaced.
type UpdatedEvent struct {
	Type         string                 `json:"type"`
	Market       string                 `json:"market"`
	Location     string                 `json:"location,omitempty"`
	FileName     string                 `json:"fileName"`
	ProductCount int                    `json:"productCount"`
	UpdateInfo   spreadsheet.UpdateInfo `json:"updateInfo"`
	OccurredAt   time.Time              `json:"occurredAt"`
}
