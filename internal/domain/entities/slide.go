package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Slide represents a single slide parsed out of a slide file.
type Slide struct {
	// Metadata is the slide's free-form metadata document, parsed
	// from the block between the opening delimiter and its
	// terminator.
	Metadata *Document `json:"-"`

	// StartLine is the 1-based line number of the delimiter that
	// opened this slide's metadata block.
	StartLine int `json:"startLine"`

	// Fragments holds the slide body split on "***" lines, in file
	// order. There is always at least one fragment, possibly empty.
	Fragments []string `json:"fragments"`

	// Notes contains speaker notes accumulated after a "???" line.
	Notes string `json:"notes,omitempty"`
}

// Validate ensures the slide upholds its structural invariants.
func (s *Slide) Validate() error {
	if len(s.Fragments) == 0 {
		return errors.New("slide must have at least one fragment")
	}
	if s.StartLine < 1 {
		return errors.New("slide start line must be 1-based")
	}
	return nil
}

// HasNotes returns true if the slide has speaker notes.
func (s *Slide) HasNotes() bool {
	return strings.TrimSpace(s.Notes) != ""
}

// Body returns the slide content with fragments joined back together.
func (s *Slide) Body() string {
	return strings.Join(s.Fragments, "")
}

// SlideDeck is the parsed form of one slide file: an identifier for
// the source file and the slides in order of appearance.
type SlideDeck struct {
	// ID is a unique identifier for the deck.
	ID string `json:"id,omitempty"`

	// Path identifies the slide file the deck was parsed from.
	Path string `json:"path"`

	// Slides contains all slides in file order.
	Slides []Slide `json:"slides"`
}

// Validate ensures the deck and every slide in it are well formed.
func (d *SlideDeck) Validate() error {
	for i := range d.Slides {
		if err := d.Slides[i].Validate(); err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
	}
	return nil
}

// SlideCount returns the total number of slides.
func (d *SlideDeck) SlideCount() int {
	return len(d.Slides)
}
