// Package apperr defines the tagged application errors used across the
// service layer. Handlers map an error's Kind to an HTTP status exactly
// once, at the response boundary; nothing inspects error text.
package apperr

import "errors"

type Kind uint8

const (
	Internal Kind = iota
	Validation
	NotFound
	Unauthorized
	Conflict
	RateLimited
	Unavailable
)

// Shared sentinels. Compare with errors.Is.
var (
	ErrStoreUnavailable = New(Unavailable, "storage is not available")
	ErrDuplicateNumber  = New(Conflict, "duplicate invoice number")
)

type Error struct {
	kind Kind
	msg  string
	err  error
}

func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

// KindOf extracts the Kind from an error chain. Unrecognised errors are
// Internal so they surface as a generic 500 rather than leaking detail.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return Internal
}
