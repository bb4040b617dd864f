package topology

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNodeNotFound  = errors.New("node not found")
	ErrLinkNotFound  = errors.New("link not found")
	ErrInvalidLink   = errors.New("invalid link")
	ErrInvalidNode   = errors.New("invalid node")
	ErrDuplicateNode = errors.New("node already exists")
	ErrDuplicateLink = errors.New("link already exists")
)

// TopologyError provides structured error information for store
// operations.
type TopologyError struct {
	Op     string // Operation that failed (e.g., "AddLink", "GetLink")
	Entity string // Entity type ("node" or "link")
	ID     string // Node ID, or "a-b" for a link
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *TopologyError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *TopologyError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *TopologyError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func nodeErr(op, id string, cause error) error {
	return &TopologyError{Op: op, Entity: "node", ID: id, Cause: cause}
}

func linkErr(op, a, b string, cause error) error {
	k := keyFor(a, b)
	return &TopologyError{Op: op, Entity: "link", ID: k.a + "-" + k.b, Cause: cause}
}
