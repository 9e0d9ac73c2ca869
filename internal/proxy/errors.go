package proxy

import (
	"errors"
	"fmt"
	"log"
)

// ErrNonLinearLayout is returned when a recycler is set up with a layout
// manager other than recycler.LinearLayoutManager.
var ErrNonLinearLayout = errors.New("a linear layout manager is required")

// UnsupportedError is returned by operations a backend does not implement.
// It matches errors.ErrUnsupported.
type UnsupportedError struct {
	Backend   string
	Operation string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s does not support %s", e.Backend, e.Operation)
}

func (e *UnsupportedError) Unwrap() error {
	return errors.ErrUnsupported
}

func unsupported(backend, operation string) error {
	log.Printf("%s: unsupported operation %s", backend, operation)
	return &UnsupportedError{Backend: backend, Operation: operation}
}
