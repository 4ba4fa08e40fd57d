package entities

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DeckFile is the top-level configuration for a deck of slides. At
// bare minimum it names the slide file(s) to load; everything else
// tunes how the deck is assembled and presented.
type DeckFile struct {
	// Markdown holds the markdown dialect configuration.
	Markdown *Markdown `yaml:"markdown"`

	// Context is free-form data made available to templates.
	Context map[string]interface{} `yaml:"context"`

	// Meta carries the deck-wide slide rules.
	Meta *SlideRules `yaml:"meta"`

	// Styles lists style resources to include.
	Styles []string `yaml:"styles"`

	// Scripts lists script resources to include.
	Scripts []string `yaml:"scripts"`

	// TemplatePath lists extra directories searched for templates
	// and overridden resources.
	TemplatePath []string `yaml:"template-path"`

	// Slides names the slide files making up the deck, in order.
	Slides []string `yaml:"slides"`

	// TreeSitterHighlight maps CSS class names to highlight names.
	TreeSitterHighlight map[string]string `yaml:"tree-sitter-highlight"`
}

// Markdown configures markdown handling for the deck.
type Markdown struct {
	Blockquote      *MarkdownBlockquote `yaml:"blockquote"`
	CodeBlockPrefix string              `yaml:"code-block-prefix"`
	CodeBlockFocus  string              `yaml:"code-block-focus"`
}

// MarkdownBlockquote sets the admonition labels used in blockquotes.
type MarkdownBlockquote struct {
	Note      string `yaml:"note"`
	Tip       string `yaml:"tip"`
	Important string `yaml:"important"`
	Warning   string `yaml:"warning"`
	Caution   string `yaml:"caution"`
}

// SlideRules is the deck-level metadata contract for slides. This is
// not full slide metadata, which is an arbitrary document, but the
// specific values the deck machinery works upon.
type SlideRules struct {
	// ContentName is the context key holding the slide content.
	ContentName string `yaml:"content-name"`

	// ContentList is the context key holding the subslide elements.
	ContentList string `yaml:"content-list"`

	// DefaultTemplate names the template used when a slide does not
	// pick one.
	DefaultTemplate string `yaml:"default-template"`

	// Inherit lists metadata values carried from slide to slide.
	Inherit []string `yaml:"inherit"`

	// Require lists metadata values every slide must set.
	Require []string `yaml:"require"`

	// Deny lists metadata value names slides may not set.
	Deny []string `yaml:"deny"`

	// Ratio is the screen ratio for the deck.
	Ratio *Ratio `yaml:"ratio"`
}

// Ratio is a screen ratio written as "W:H" in deck metadata.
type Ratio struct {
	Width  int
	Height int
}

// UnmarshalYAML parses a ratio from a "W:H" scalar.
func (r *Ratio) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	width, height, ok := strings.Cut(raw, ":")
	if !ok {
		return fmt.Errorf("expected W:H, got %q", raw)
	}

	w, err := strconv.Atoi(width)
	if err != nil {
		return fmt.Errorf("ratio width: %w", err)
	}
	h, err := strconv.Atoi(height)
	if err != nil {
		return fmt.Errorf("ratio height: %w", err)
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("ratio must be positive, got %q", raw)
	}

	r.Width = w
	r.Height = h
	return nil
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.Width, r.Height)
}

// MergeFrom fills unset fields of the deck from other, where other is
// considered the default values. Values already present on the deck
// always win; list and map fields are taken wholesale, not unioned.
func (d *DeckFile) MergeFrom(other *DeckFile) {
	if other == nil {
		return
	}

	if d.Markdown == nil {
		d.Markdown = other.Markdown
	} else if other.Markdown != nil {
		d.Markdown.mergeFrom(other.Markdown)
	}

	if d.Context == nil {
		d.Context = other.Context
	}
	if d.Meta == nil {
		d.Meta = other.Meta
	} else if other.Meta != nil {
		d.Meta.mergeFrom(other.Meta)
	}
	if len(d.Styles) == 0 {
		d.Styles = other.Styles
	}
	if len(d.Scripts) == 0 {
		d.Scripts = other.Scripts
	}
	if len(d.TemplatePath) == 0 {
		d.TemplatePath = other.TemplatePath
	}
	if len(d.Slides) == 0 {
		d.Slides = other.Slides
	}
	if d.TreeSitterHighlight == nil {
		d.TreeSitterHighlight = other.TreeSitterHighlight
	}
}

func (m *Markdown) mergeFrom(other *Markdown) {
	if m.Blockquote == nil {
		m.Blockquote = other.Blockquote
	}
	if m.CodeBlockPrefix == "" {
		m.CodeBlockPrefix = other.CodeBlockPrefix
	}
	if m.CodeBlockFocus == "" {
		m.CodeBlockFocus = other.CodeBlockFocus
	}
}

func (s *SlideRules) mergeFrom(other *SlideRules) {
	if s.ContentName == "" {
		s.ContentName = other.ContentName
	}
	if s.ContentList == "" {
		s.ContentList = other.ContentList
	}
	if s.DefaultTemplate == "" {
		s.DefaultTemplate = other.DefaultTemplate
	}
	if len(s.Inherit) == 0 {
		s.Inherit = other.Inherit
	}
	if len(s.Require) == 0 {
		s.Require = other.Require
	}
	if len(s.Deny) == 0 {
		s.Deny = other.Deny
	}
	if s.Ratio == nil {
		s.Ratio = other.Ratio
	}
}

// Highlights returns the tree-sitter highlight rules as
// (highlight-name, css-class-name) pairs.
func (d *DeckFile) Highlights() [][2]string {
	pairs := make([][2]string, 0, len(d.TreeSitterHighlight))
	for class, highlight := range d.TreeSitterHighlight {
		pairs = append(pairs, [2]string{highlight, class})
	}
	return pairs
}

// Validate checks the deck file names at least one slide file.
func (d *DeckFile) Validate() error {
	if len(d.Slides) == 0 {
		return fmt.Errorf("deck file must name at least one slide file")
	}
	return nil
}

// SlidePaths resolves the deck's slide file names relative to the
// directory of the deck file at deckPath.
func (d *DeckFile) SlidePaths(deckPath string) []string {
	dir := filepath.Dir(deckPath)
	paths := make([]string, len(d.Slides))
	for i, name := range d.Slides {
		if filepath.IsAbs(name) {
			paths[i] = name
			continue
		}
		paths[i] = filepath.Join(dir, name)
	}
	return paths
}

// Deck is a fully loaded deck: its configuration and the parsed
// slide files, in the order the deck file names them.
type Deck struct {
	// ID is a unique identifier for the loaded deck.
	ID string `json:"id,omitempty"`

	// Path is the deck file the deck was loaded from.
	Path string `json:"path"`

	// Config is the deck file contents.
	Config *DeckFile `json:"-"`

	// Files holds the parsed slide files.
	Files []*SlideDeck `json:"files"`
}

// Slides returns every slide of the deck, in presentation order.
func (d *Deck) Slides() []Slide {
	var slides []Slide
	for _, file := range d.Files {
		slides = append(slides, file.Slides...)
	}
	return slides
}
