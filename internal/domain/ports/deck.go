package ports

import (
	"context"

	"github.com/harvey-slides/harvey/internal/domain/entities"
)

// DeckFileLoader defines the interface for loading deck files.
type DeckFileLoader interface {
	// Load reads and decodes a deck file from disk.
	Load(path string) (*entities.DeckFile, error)
}

// DeckService defines the main service interface for decks.
type DeckService interface {
	// LoadDeck loads a deck file and parses every slide file it
	// names.
	LoadDeck(ctx context.Context, path string) (*entities.Deck, error)

	// WatchDeck watches a loaded deck's source files for changes.
	WatchDeck(ctx context.Context, deck *entities.Deck) (<-chan FileChangeEvent, error)
}
