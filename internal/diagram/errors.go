package diagram

import (
	"fmt"
	"strings"

	"github.com/sparxbridge/eamcp/internal/ea"
)

// Validation errors. These are caller mistakes: they are reported as
// structured tool errors and never reach the repository.

// MissingParameterError reports an absent (or empty) required field. Field
// uses index notation for array entries, e.g. "classes[1].name".
type MissingParameterError struct {
	Field string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter %q", e.Field)
}

// InvalidGUIDError reports a value that does not parse as an EA GUID.
type InvalidGUIDError struct {
	Value string
}

func (e *InvalidGUIDError) Error() string {
	return fmt.Sprintf("%q is not a valid GUID", e.Value)
}

// UnknownElementTypeError reports an element type outside the vocabulary
// for the request's diagram kind.
type UnknownElementTypeError struct {
	Value   string
	Allowed []string
}

func (e *UnknownElementTypeError) Error() string {
	return fmt.Sprintf("unknown element type %q (allowed: %s)", e.Value, strings.Join(e.Allowed, ", "))
}

// InvalidParameterError reports a field whose JSON shape is wrong, e.g. an
// array entry that is not an object.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

// Creation errors. These surface repository failures with enough detail for
// the caller to know exactly what got created, since nothing is rolled back.

// DiagramError reports that the diagram itself could not be created. No
// elements exist when this is returned.
type DiagramError struct {
	Err error
}

func (e *DiagramError) Error() string {
	return fmt.Sprintf("creating diagram: %v", e.Err)
}

func (e *DiagramError) Unwrap() error { return e.Err }

// ElementError reports a failure while creating the element at Index.
// Diagram and Created describe what exists in the repository despite the
// failure; elements are not rolled back.
type ElementError struct {
	Index   int
	Name    string
	Diagram ea.DiagramRef
	Created []ea.ElementRef
	Err     error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("creating element %d (%q): %v", e.Index, e.Name, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }
