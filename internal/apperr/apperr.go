// Package apperr classifies domain errors into the kinds the API reports:
// not_found, invalid_argument, conflict, upstream_failure and internal.
package apperr

import (
	"errors"
)

var (
	ErrNotFound        = errors.New("not_found")
	ErrInvalidArgument = errors.New("invalid_argument")
	ErrConflict        = errors.New("conflict")
	ErrUpstream        = errors.New("upstream_failure")
)

// Error is a domain error tagged with one of the kinds above.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Is matches the kind so errors.Is(err, ErrNotFound) works through wrapping.
func (e *Error) Is(target error) bool { return target == e.kind }

func NotFound(msg string) *Error        { return &Error{kind: ErrNotFound, msg: msg} }
func InvalidArgument(msg string) *Error { return &Error{kind: ErrInvalidArgument, msg: msg} }
func Conflict(msg string) *Error        { return &Error{kind: ErrConflict, msg: msg} }
func Upstream(msg string) *Error        { return &Error{kind: ErrUpstream, msg: msg} }

// Kind returns the kind name for err, "internal" when it carries none.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return ErrNotFound.Error()
	case errors.Is(err, ErrInvalidArgument):
		return ErrInvalidArgument.Error()
	case errors.Is(err, ErrConflict):
		return ErrConflict.Error()
	case errors.Is(err, ErrUpstream):
		return ErrUpstream.Error()
	default:
		return "internal"
	}
}
