package batch

import (
	"fmt"

	"github.com/pkg/errors"
)

// Failure kinds. Match them with errors.Is against any error returned by
// the converter.
var (
	ErrNotFound = errors.New("source image not found")
	ErrDecode   = errors.New("image decode failed")
	ErrIO       = errors.New("io failed")
)

// Error describes a failure on a single directory entry.
type Error struct {
	Kind error
	Name string
	Err  error
}

func newError(kind error, name string, err error) error {
	return &Error{Kind: kind, Name: name, Err: errors.WithStack(err)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Name, e.Kind, errors.Cause(e.Err))
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}
