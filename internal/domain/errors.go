package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrIOFailure        = errors.New("io failure")
	ErrTraversalFailure = errors.New("traversal failure")
	ErrInvalidEncoding  = errors.New("invalid utf-8 encoding")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	// KindIO: a matched file could not be opened or read.
	KindIO ErrorKind = "io_failure"
	// KindTraversal: the root or a directory below it could not be walked.
	KindTraversal ErrorKind = "traversal_failure"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: root-relative path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match an OpError against the sentinel of its kind.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrIOFailure:
		return e.Kind == KindIO
	case ErrTraversalFailure:
		return e.Kind == KindTraversal
	}
	return false
}

// IOFailure builds a KindIO error for path.
func IOFailure(op, path string, err error) error {
	return &OpError{Op: op, Kind: KindIO, Path: path, Err: err}
}

// TraversalFailure builds a KindTraversal error for path.
func TraversalFailure(op, path string, err error) error {
	return &OpError{Op: op, Kind: KindTraversal, Path: path, Err: err}
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
