package domain

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure categories in the pipeline. Each step
// tags its errors with a kind; the HTTP boundary maps kinds to status codes
// and nothing below the boundary looks at status codes at all.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindAuthorization  Kind = "authorization"
	KindClassification Kind = "classification"
	KindWriter         Kind = "writer"
)

// Error is a kinded error wrapping the underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with a kind. Returns nil when err is nil.
func NewError(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Errorf builds a kinded error from a format string.
func Errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf reports the kind of err. Unkinded errors return ok==false and are
// treated as internal failures at the boundary.
func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}
