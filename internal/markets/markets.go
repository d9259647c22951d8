// Package markets serves the static list of markets shown to clients.
package markets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed markets.yaml
var defaultCatalogue []byte

// ErrEmptyName is returned for a market entry without a name
var ErrEmptyName = errors.New("market name is empty")

// Market describes one market and its locations, if it has any.
type Market struct {
	Name      string   `yaml:"name" json:"name"`
	Locations []string `yaml:"locations,omitempty" json:"locations,omitempty"`
}

type catalogue struct {
	Markets []Market `yaml:"markets"`
}

// Default returns the built-in market list.
func Default() ([]Market, error) {
	return parse(defaultCatalogue)
}

// Load reads the market list from path, or the built-in list when path is empty.
func Load(path string) ([]Market, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read markets file: %w", err)
	}
	markets, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return markets, nil
}

func parse(data []byte) ([]Market, error) {
	var c catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse markets: %w", err)
	}

	markets := make([]Market, 0, len(c.Markets))
	for i, m := range c.Markets {
		m.Name = strings.TrimSpace(m.Name)
		if m.Name == "" {
			return nil, fmt.Errorf("entry %d: %w", i+1, ErrEmptyName)
		}

		var locations []string
		for _, loc := range m.Locations {
			if loc = strings.TrimSpace(loc); loc != "" {
				locations = append(locations, loc)
			}
		}
		m.Locations = locations
		markets = append(markets, m)
	}
	return markets, nil
}
