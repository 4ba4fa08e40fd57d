package ports

// ResourceResolver defines the interface for loading named resources.
// Resources come either from an override search path, checked
// most-recently-added first, or from a statically bundled fallback.
type ResourceResolver interface {
	// Get returns the bytes of a resource. The returned path is the
	// on-disk file the resource was read from, or "" when it came
	// from the embedded bundle.
	Get(name string) (path string, content []byte, err error)

	// GetYAML loads a resource and decodes it as YAML through the
	// provenance-tagged parse entry point.
	GetYAML(name string, out interface{}) error

	// AddPath appends a directory to the override search path.
	// Later additions are checked first.
	AddPath(dir string)
}
