package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/harvey-slides/harvey/internal/domain/entities"
	"github.com/harvey-slides/harvey/internal/domain/ports"
)

// DeckService implements the business logic for loading decks.
type DeckService struct {
	loader  ports.DeckFileLoader
	parser  ports.SlideParser
	watcher ports.FileWatcher
}

// NewDeckService creates a new deck service instance. The watcher may
// be nil when change notification is not needed.
func NewDeckService(loader ports.DeckFileLoader, parser ports.SlideParser, watcher ports.FileWatcher) *DeckService {
	return &DeckService{
		loader:  loader,
		parser:  parser,
		watcher: watcher,
	}
}

// LoadDeck loads a deck file and parses every slide file it names.
// Slide files parse independently, so they are scanned concurrently;
// the result keeps the deck file's order regardless of which finishes
// first. Errors from all files are reported together.
func (s *DeckService) LoadDeck(ctx context.Context, path string) (*entities.Deck, error) {
	if path == "" {
		return nil, errors.New("deck path cannot be empty")
	}

	config, err := s.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}

	paths := config.SlidePaths(path)
	files := make([]*entities.SlideDeck, len(paths))
	fileErrs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, slidePath := range paths {
		wg.Add(1)
		go func(i int, slidePath string) {
			defer wg.Done()
			file, err := s.parser.ParseFile(slidePath)
			if err != nil {
				fileErrs[i] = fmt.Errorf("parsing %s: %w", slidePath, err)
				return
			}
			files[i] = file
		}(i, slidePath)
	}
	wg.Wait()

	if err := errors.Join(fileErrs...); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deck := &entities.Deck{
		ID:     uuid.New().String(),
		Path:   path,
		Config: config,
		Files:  files,
	}
	for _, file := range deck.Files {
		if err := file.Validate(); err != nil {
			return nil, fmt.Errorf("invalid slide file %s: %w", file.Path, err)
		}
	}

	return deck, nil
}

// WatchDeck watches the deck file and every slide file of a loaded
// deck for changes.
func (s *DeckService) WatchDeck(ctx context.Context, deck *entities.Deck) (<-chan ports.FileChangeEvent, error) {
	if s.watcher == nil {
		return nil, errors.New("deck service has no watcher")
	}
	if deck == nil {
		return nil, errors.New("deck cannot be nil")
	}

	paths := append([]string{deck.Path}, deck.Config.SlidePaths(deck.Path)...)
	events, err := s.watcher.Watch(ctx, paths...)
	if err != nil {
		return nil, fmt.Errorf("watching deck: %w", err)
	}
	return events, nil
}
