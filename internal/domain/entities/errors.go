package entities

import (
	"fmt"
	"strings"
)

// MissingDelimiterError reports a slide file whose first line is not a
// delimiter, so effectively no slides are present.
type MissingDelimiterError struct{}

func (MissingDelimiterError) Error() string {
	return "missing initial delimiter: slide files must start with ---"
}

// IncompleteMetadataError reports a metadata block that was opened but
// never closed before the end of the file.
type IncompleteMetadataError struct {
	// Line is the 1-based line the block was opened on.
	Line int
}

func (e IncompleteMetadataError) Error() string {
	return fmt.Sprintf("incomplete metadata found at line %d", e.Line)
}

// BadMetadataError reports a metadata block that closed but failed to
// parse as a well-formed YAML document, including duplicate-key
// violations.
type BadMetadataError struct {
	// Line is the 1-based line the block was opened on.
	Line int

	// Cause is the underlying parse failure.
	Cause error
}

func (e BadMetadataError) Error() string {
	return fmt.Sprintf("bad yaml found at line %d: %v", e.Line, e.Cause)
}

func (e BadMetadataError) Unwrap() error {
	return e.Cause
}

// LoadErrors is the ordered list of every recoverable problem found in
// one pass over a slide file. It is appended to in file order and never
// deduplicated or truncated, so a caller can report all problems at
// once. A non-empty list means the caller receives no deck at all.
type LoadErrors []error

func (e LoadErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d error(s) loading slides: %s", len(e), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e LoadErrors) Unwrap() []error {
	return e
}
