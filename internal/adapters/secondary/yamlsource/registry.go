package yamlsource

import (
	"fmt"
	"sync"

	"github.com/harvey-slides/harvey/internal/domain/entities"
)

// Registry records the origin of every YAML document parsed through
// this package. Records are appended for the life of the registry and
// never removed, compacted, or deduplicated: the handle returned by
// Register is the record's index, and anything holding a handle can
// resolve it back to an origin at any later point.
//
// A single registry is shared by every parse entry point in a process
// so that handles are globally unique; tests create their own.
type Registry struct {
	mu      sync.Mutex
	records []entities.Origin
}

// NewRegistry creates an empty provenance registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends origin and returns its handle. Safe for concurrent
// use; the append and the index read happen under one lock so the
// handle is always exactly the record's position.
func (r *Registry) Register(origin entities.Origin) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle := len(r.records)
	r.records = append(r.records, origin)
	return handle
}

// Origin resolves a handle back to the origin registered under it.
func (r *Registry) Origin(handle int) (entities.Origin, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if handle < 0 || handle >= len(r.records) {
		return nil, false
	}
	return r.records[handle], true
}

// Describe renders the origin behind a handle for diagnostics.
func (r *Registry) Describe(handle int) string {
	origin, ok := r.Origin(handle)
	if !ok {
		return fmt.Sprintf("unknown source #%d", handle)
	}
	return origin.Describe()
}

// Len returns the number of registered records.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.records)
}
