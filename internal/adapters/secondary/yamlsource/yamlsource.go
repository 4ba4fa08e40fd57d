// Package yamlsource parses YAML with provenance tracking. All YAML
// loaded or deserialised in this module goes through these entry
// points so that every document has a logged source which later error
// reporting can name.
package yamlsource

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/harvey-slides/harvey/internal/domain/entities"
)

// ParseError is a failed attempt to parse a metadata document. The
// origin is registered even for failures, so the error still carries
// a usable handle.
type ParseError struct {
	// Handle is the provenance handle assigned to the attempt.
	Handle int

	// Line is the 1-based line within the document where parsing
	// failed, or 0 when the underlying error did not locate itself.
	Line int

	// Cause is the underlying failure.
	Cause error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Cause)
	}
	return e.Cause.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NodeFromSource parses content as a single YAML document without
// deserialising it, registering origin under a fresh handle. The
// handle is embedded in the returned document so that downstream code
// can attribute any node in it back to the origin. Registration
// happens whether or not the parse succeeds.
//
// Duplicate keys within one mapping are a hard error rather than
// last-write-wins, so authored metadata is never silently lost.
func (r *Registry) NodeFromSource(origin entities.Origin, content []byte) (*entities.Document, error) {
	handle := r.Register(origin)

	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, &ParseError{Handle: handle, Line: yamlErrorLine(err), Cause: err}
	}
	if key, line, ok := findDuplicateKey(&root); ok {
		return nil, &ParseError{
			Handle: handle,
			Line:   line,
			Cause:  fmt.Errorf("duplicate mapping key %q", key),
		}
	}

	return &entities.Document{Root: &root, Handle: handle}, nil
}

// FromSource parses content from origin and decodes it into out.
func (r *Registry) FromSource(origin entities.Origin, content []byte, out interface{}) error {
	doc, err := r.NodeFromSource(origin, content)
	if err != nil {
		return err
	}
	if err := doc.Decode(out); err != nil {
		return &ParseError{Handle: doc.Handle, Line: yamlErrorLine(err), Cause: err}
	}
	return nil
}

// FromFile loads YAML from disk, logging the file as the origin.
func (r *Registry) FromFile(path string, out interface{}) error {
	content, err := os.ReadFile(path) // #nosec G304 - deck and resource paths are caller-controlled
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return r.FromSource(entities.FileOrigin{Path: path}, content, out)
}

// FromResource loads YAML from a built-in resource.
func (r *Registry) FromResource(name string, content []byte, out interface{}) error {
	return r.FromSource(entities.ResourceOrigin{Name: name}, content, out)
}

// FromSlide loads YAML captured as slide metadata. The slide ordinal
// is 1-based; lineOffset is the 0-based offset of the line that
// terminated the metadata block within the slide file.
func (r *Registry) FromSlide(file string, slide, lineOffset int, content []byte, out interface{}) error {
	return r.FromSource(entities.SlideOrigin{File: file, Slide: slide, LineOffset: lineOffset}, content, out)
}

// findDuplicateKey walks every mapping in the document looking for a
// repeated scalar key. yaml.Node decoding does not enforce this, so
// the walk is done here. Alias targets are not revisited.
func findDuplicateKey(node *yaml.Node) (string, int, bool) {
	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range node.Content {
			if key, line, ok := findDuplicateKey(child); ok {
				return key, line, ok
			}
		}
	case yaml.MappingNode:
		seen := make(map[string]bool, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Kind == yaml.ScalarNode {
				if seen[key.Value] {
					return key.Value, key.Line, true
				}
				seen[key.Value] = true
			}
			if k, line, ok := findDuplicateKey(value); ok {
				return k, line, ok
			}
		}
	}
	return "", 0, false
}

var yamlLinePattern = regexp.MustCompile(`line (\d+):`)

// yamlErrorLine pulls the line number out of a yaml.v3 error message,
// which is the only place the library exposes it.
func yamlErrorLine(err error) int {
	m := yamlLinePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	line, _ := strconv.Atoi(m[1])
	return line
}
