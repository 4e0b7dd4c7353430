// Package errorutil provides the error primitives shared by all httpmsg packages.
//
// Packages declare sentinel errors as [Error] constants and attach details
// with [NewWrapperError], so callers match them with [errors.Is].
package errorutil

//go:generate go tool errtrace -w .

import (
	"errors"
	"fmt"
)

// Error is a string type that implements the error interface.
type Error string

func (s Error) Error() string { return string(s) }

// ErrInvalidArgument is the generic sentinel for bad input.
const ErrInvalidArgument Error = "invalid argument"

// NewWrapperError attaches details to sentinel.
// The first argument selects the form:
//   - none or an unsupported type: sentinel itself;
//   - error: "sentinel: err", matching both, or err as is when it already matches sentinel;
//   - string: "sentinel: msg", the rest of args are formatting arguments of msg.
func NewWrapperError(sentinel error, args ...any) error {
	if len(args) == 0 {
		return sentinel //errtrace:skip
	}

	var detail string
	switch v := args[0].(type) {
	case error:
		if errors.Is(v, sentinel) {
			return v //errtrace:skip
		}
		return &wrapError{sentinel: sentinel, cause: v} //errtrace:skip
	case string:
		detail = v
		if len(args) > 1 {
			detail = fmt.Sprintf(v, args[1:]...)
		}
	default:
		return sentinel //errtrace:skip
	}
	return &wrapError{sentinel: sentinel, detail: detail} //errtrace:skip
}

// NewInvalidArgumentError is [NewWrapperError] with [ErrInvalidArgument].
func NewInvalidArgumentError(args ...any) error {
	return NewWrapperError(ErrInvalidArgument, args...) //errtrace:skip
}

type wrapError struct {
	sentinel error
	cause    error
	detail   string
}

func (e *wrapError) Error() string {
	if e.cause != nil {
		return e.sentinel.Error() + ": " + e.cause.Error()
	}
	return e.sentinel.Error() + ": " + e.detail
}

func (e *wrapError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.sentinel, e.cause}
	}
	return []error{e.sentinel}
}
