// Package bridge invokes named backend operations and normalizes their
// failures for display.
package bridge

import (
	"context"
	"errors"
)

// Caller invokes a named backend operation. args is marshaled as a JSON
// object of named parameters; the result is decoded into out (which may be
// nil for operations without a result).
type Caller interface {
	Call(ctx context.Context, op string, args any, out any) error
}

// CallerFunc adapts a function to the Caller interface.
type CallerFunc func(ctx context.Context, op string, args any, out any) error

func (f CallerFunc) Call(ctx context.Context, op string, args any, out any) error {
	return f(ctx, op, args, out)
}

// ErrClosed is returned for calls on a closed client.
var ErrClosed = errors.New("bridge: connection closed")

// RemoteError is a failure reported by the backend.
type RemoteError struct {
	Op  string
	Msg string
}

func (e *RemoteError) Error() string { return e.Msg }

// Message returns the backend's error text.
func (e *RemoteError) Message() string { return e.Msg }

const unknownError = "unknown error"

type messager interface {
	Message() string
}

// ErrorMessage converts err into display text: its Message() if it has one,
// then its Error() text, then "unknown error".
func ErrorMessage(err error) string {
	if err == nil {
		return unknownError
	}
	if m, ok := err.(messager); ok && m.Message() != "" {
		return m.Message()
	}
	if s := err.Error(); s != "" {
		return s
	}
	return unknownError
}

// ErrorMessageOf converts an arbitrary failure value (for example a recovered
// panic) into display text.
func ErrorMessageOf(v any) string {
	switch x := v.(type) {
	case error:
		return ErrorMessage(x)
	case string:
		if x != "" {
			return x
		}
	}
	return unknownError
}
