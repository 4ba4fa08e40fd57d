package entities

import (
	"errors"

	"gopkg.in/yaml.v3"
)

// Document is a generic, untyped metadata tree together with the
// provenance handle it was registered under. The handle ties every
// node in the tree back to an Origin in the registry, which is how
// later error formatting names the file, slide, and line a value was
// authored on.
type Document struct {
	// Root is the document node of the parsed YAML. Line and column
	// information on the nodes is relative to the raw block text.
	Root *yaml.Node

	// Handle is the provenance registry index assigned when the
	// document was parsed.
	Handle int
}

// IsEmpty reports whether the document holds no content, as parsed
// from an empty metadata block.
func (d *Document) IsEmpty() bool {
	return d == nil || d.Root == nil || len(d.Root.Content) == 0
}

// Decode unmarshals the document into out.
func (d *Document) Decode(out interface{}) error {
	if d.IsEmpty() {
		return errors.New("empty metadata document")
	}
	return d.Root.Decode(out)
}
