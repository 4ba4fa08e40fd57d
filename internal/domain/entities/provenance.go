package entities

import "fmt"

// Origin describes where a parsed YAML document came from. Every
// document loaded through the yamlsource package records exactly one
// Origin in the provenance registry, and the returned handle lets
// error-formatting code far away from the parser render a
// human-readable location for any node in the document.
type Origin interface {
	// Describe renders the origin for diagnostics.
	Describe() string

	isOrigin()
}

// FileOrigin is YAML loaded directly from a file on disk, such as a
// deck file or an overridden resource.
type FileOrigin struct {
	Path string
}

// ResourceOrigin is YAML loaded from an embedded resource.
type ResourceOrigin struct {
	Name string
}

// SlideOrigin is YAML parsed as slide metadata out of a slide file.
type SlideOrigin struct {
	// File is the slide file the metadata block was read from.
	File string

	// Slide is the 1-based ordinal of the slide within the file.
	Slide int

	// LineOffset is the 0-based offset of the line that terminated
	// the metadata block.
	LineOffset int
}

func (o FileOrigin) Describe() string {
	return o.Path
}

func (o ResourceOrigin) Describe() string {
	return "resource:" + o.Name
}

func (o SlideOrigin) Describe() string {
	return fmt.Sprintf("%s: slide %d (line %d)", o.File, o.Slide, o.LineOffset+1)
}

func (FileOrigin) isOrigin()     {}
func (ResourceOrigin) isOrigin() {}
func (SlideOrigin) isOrigin()    {}
