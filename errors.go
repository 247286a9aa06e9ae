package skemaform

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by field operations. Match them with errors.Is.
var (
	ErrEditInProgress  = errors.New("skemaform: an edit is already in progress")
	ErrNotEditing      = errors.New("skemaform: no edit in progress")
	ErrIndexOutOfRange = errors.New("skemaform: index out of range")
	ErrUnknownOption   = errors.New("skemaform: unknown option")
	ErrNoLookup        = errors.New("skemaform: no lookup configured")
)

// FieldError reports a rejected field operation.
type FieldError struct {
	Op   string // operation name, for example "delete"
	Path string // JSON Pointer of the field
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s at %s: %v", e.Op, e.Path, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func fieldErr(op, path string, err error) error {
	return &FieldError{Op: op, Path: path, Err: err}
}

// AsFieldError extracts a FieldError using errors.As internally.
func AsFieldError(err error) (*FieldError, bool) {
	if err == nil {
		return nil, false
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
