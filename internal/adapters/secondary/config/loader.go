// Package config loads deck files. A deck file is the top-level YAML
// document naming the slide files of a deck plus presentation-wide
// settings; loads always go through the provenance-tagged YAML entry
// points so later errors can name their source.
package config

import (
	"fmt"
	"os"

	"github.com/harvey-slides/harvey/internal/adapters/secondary/yamlsource"
	"github.com/harvey-slides/harvey/internal/domain/entities"
)

// Loader loads deck files from disk.
type Loader struct {
	registry *yamlsource.Registry
}

// NewLoader creates a deck file loader recording provenance into the
// given registry.
func NewLoader(registry *yamlsource.Registry) *Loader {
	return &Loader{registry: registry}
}

// Load reads and decodes a deck file.
func (l *Loader) Load(path string) (*entities.DeckFile, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("deck file not found: %s", path)
		}
		return nil, fmt.Errorf("checking deck file: %w", err)
	}

	var deck entities.DeckFile
	if err := l.registry.FromFile(path, &deck); err != nil {
		return nil, fmt.Errorf("loading deck file %s: %w", path, err)
	}

	if err := deck.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck file %s: %w", path, err)
	}

	return &deck, nil
}

// LoadWithDefaults loads a deck file and fills its unset fields from
// a defaults deck file. The defaults file is optional.
func (l *Loader) LoadWithDefaults(path, defaultsPath string) (*entities.DeckFile, error) {
	deck, err := l.Load(path)
	if err != nil {
		return nil, err
	}

	if defaultsPath == "" {
		return deck, nil
	}
	if _, err := os.Stat(defaultsPath); os.IsNotExist(err) {
		return deck, nil
	}

	var defaults entities.DeckFile
	if err := l.registry.FromFile(defaultsPath, &defaults); err != nil {
		return nil, fmt.Errorf("loading defaults %s: %w", defaultsPath, err)
	}

	deck.MergeFrom(&defaults)
	return deck, nil
}
