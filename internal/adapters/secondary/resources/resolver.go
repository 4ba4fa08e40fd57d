// Package resources resolves named resources for a deck. A resource
// is looked up first in the override search paths, most recently
// added first, and then in the statically bundled assets.
package resources

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/harvey-slides/harvey/internal/adapters/secondary/yamlsource"
	"github.com/harvey-slides/harvey/internal/domain/entities"
)

//go:embed assets
var builtin embed.FS

// Resolver looks up resources by logical name.
type Resolver struct {
	registry *yamlsource.Registry

	mu    sync.Mutex
	paths []string
}

// NewResolver creates a resolver with no override paths.
func NewResolver(registry *yamlsource.Registry) *Resolver {
	return &Resolver{registry: registry}
}

// AddPath appends a directory to the override search path. Paths
// added later are checked first.
func (r *Resolver) AddPath(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.paths = append(r.paths, dir)
}

// Get returns a resource's content. The returned path names the
// on-disk file the content came from, or "" for a bundled resource.
func (r *Resolver) Get(name string) (string, []byte, error) {
	r.mu.Lock()
	paths := make([]string, len(r.paths))
	copy(paths, r.paths)
	r.mu.Unlock()

	for i := len(paths) - 1; i >= 0; i-- {
		candidate := filepath.Join(paths[i], name)
		content, err := os.ReadFile(candidate) // #nosec G304 - override paths are caller-controlled
		if err == nil {
			return candidate, content, nil
		}
		if os.IsNotExist(err) {
			continue
		}
		return "", nil, fmt.Errorf("reading resource %s: %w", candidate, err)
	}

	// Not in the override paths, check the bundled assets.
	content, err := builtin.ReadFile("assets/" + name)
	if err != nil {
		if _, ok := err.(*fs.PathError); ok {
			return "", nil, fmt.Errorf("resource not found: %s", name)
		}
		return "", nil, fmt.Errorf("reading bundled resource %s: %w", name, err)
	}
	return "", content, nil
}

// GetYAML loads a resource and decodes it as YAML, logging either the
// overriding file or the bundled resource name as the origin.
func (r *Resolver) GetYAML(name string, out interface{}) error {
	path, content, err := r.Get(name)
	if err != nil {
		return err
	}

	var origin entities.Origin
	if path != "" {
		origin = entities.FileOrigin{Path: path}
	} else {
		origin = entities.ResourceOrigin{Name: name}
	}
	return r.registry.FromSource(origin, content, out)
}
