package supply

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrEmptyInput       = errors.New("edge list is empty")
	ErrNilGraph         = errors.New("graph is nil")
	ErrNodeNotFound     = errors.New("node not found")
	ErrEmptyTerminalSet = errors.New("terminal set is empty")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op     string // Operation that failed (e.g., "Build", "ReduceTiers")
	NodeID string // Node ID, if the failure concerns a single node
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("%s node %q: %v", e.Op, e.NodeID, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// newError builds a GraphError for the given operation.
func newError(op, nodeID string, cause error) *GraphError {
	return &GraphError{Op: op, NodeID: nodeID, Cause: cause}
}
