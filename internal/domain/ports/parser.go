package ports

import (
	"github.com/harvey-slides/harvey/internal/domain/entities"
)

// MetadataSource defines the provenance-tagged YAML parsing entry
// point. Every top-level document load in the module goes through an
// implementation of this interface, never an ad-hoc YAML read.
type MetadataSource interface {
	// NodeFromSource parses content as an untyped document,
	// registering origin and tagging the result with the handle.
	NodeFromSource(origin entities.Origin, content []byte) (*entities.Document, error)

	// Describe renders the origin behind a handle.
	Describe(handle int) string
}

// SlideParser defines the interface for parsing slide files.
type SlideParser interface {
	// ParseFile reads and parses a slide file from disk. When any
	// recoverable problem is found the returned error is an
	// entities.LoadErrors holding every problem in file order, and
	// no deck is returned.
	ParseFile(path string) (*entities.SlideDeck, error)

	// Parse parses in-memory slide file content. The name is used
	// as the deck's source identifier.
	Parse(name string, content []byte) (*entities.SlideDeck, error)
}
