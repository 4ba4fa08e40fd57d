// Package harvey loads slide decks. A deck is described by a YAML
// deck file naming one or more slide files; slide files are flat text
// where dash delimiters separate slides, each slide carries a
// free-form YAML metadata block, "***" splits a slide into fragments,
// and "???" starts the speaker notes. Every metadata document parsed
// anywhere in a deck is traceable back to its exact origin through
// the provenance registry.
package harvey

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/harvey-slides/harvey/internal/adapters/secondary/config"
	"github.com/harvey-slides/harvey/internal/adapters/secondary/parser"
	"github.com/harvey-slides/harvey/internal/adapters/secondary/resources"
	"github.com/harvey-slides/harvey/internal/adapters/secondary/watcher"
	"github.com/harvey-slides/harvey/internal/adapters/secondary/yamlsource"
	"github.com/harvey-slides/harvey/internal/domain/entities"
	"github.com/harvey-slides/harvey/internal/domain/ports"
	"github.com/harvey-slides/harvey/internal/domain/services"
)

// Re-exported domain types.
type (
	// Deck is a fully loaded deck.
	Deck = entities.Deck
	// DeckFile is the deck configuration document.
	DeckFile = entities.DeckFile
	// SlideDeck is one parsed slide file.
	SlideDeck = entities.SlideDeck
	// Slide is a single slide.
	Slide = entities.Slide
	// LoadErrors is the ordered list of slide-file problems.
	LoadErrors = entities.LoadErrors
	// FileChangeEvent reports a change to a watched deck source.
	FileChangeEvent = ports.FileChangeEvent
)

// Harvey wires the deck loader together: one provenance registry, a
// slide file parser, a resource resolver, and a change watcher, all
// sharing that registry.
type Harvey struct {
	registry *yamlsource.Registry
	service  *services.DeckService
	parser   *parser.SlideFileParser
	resolver *resources.Resolver
	watcher  *watcher.DeckWatcher
}

// New creates a deck loader with a fresh provenance registry.
func New() (*Harvey, error) {
	return NewWithLogger(nil)
}

// NewWithLogger creates a deck loader logging watcher activity to the
// given logger.
func NewWithLogger(logger *slog.Logger) (*Harvey, error) {
	registry := yamlsource.NewRegistry()

	w, err := watcher.NewDeckWatcher(100*time.Millisecond, logger)
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	p := parser.NewSlideFileParser(registry)
	return &Harvey{
		registry: registry,
		service:  services.NewDeckService(config.NewLoader(registry), p, w),
		parser:   p,
		resolver: resources.NewResolver(registry),
		watcher:  w,
	}, nil
}

// LoadDeck loads a deck file and parses every slide file it names.
func (h *Harvey) LoadDeck(ctx context.Context, path string) (*Deck, error) {
	return h.service.LoadDeck(ctx, path)
}

// ParseSlideFile parses a single slide file without a deck file.
func (h *Harvey) ParseSlideFile(path string) (*SlideDeck, error) {
	return h.parser.ParseFile(path)
}

// WatchDeck watches a loaded deck's sources; callers re-run LoadDeck
// when an event arrives.
func (h *Harvey) WatchDeck(ctx context.Context, deck *Deck) (<-chan FileChangeEvent, error) {
	return h.service.WatchDeck(ctx, deck)
}

// Resources returns the deck's resource resolver. Adding a deck's
// template paths here lets files on disk override bundled assets.
func (h *Harvey) Resources() *resources.Resolver {
	return h.resolver
}

// DescribeOrigin renders the origin behind a provenance handle, as
// found on a slide's metadata document.
func (h *Harvey) DescribeOrigin(handle int) string {
	return h.registry.Describe(handle)
}

// Close stops the change watcher.
func (h *Harvey) Close() error {
	return h.watcher.Stop()
}
