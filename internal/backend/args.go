package backend

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kostyay/docsee/internal/model"
)

// Args holds the named parameters of one request.
type Args map[string]json.RawMessage

// ParseArgs decodes a request's args object. Empty input is no arguments.
func ParseArgs(raw json.RawMessage) (Args, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Args{}, nil
	}
	var a Args
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("args must be a JSON object: %w", err)
	}
	return a, nil
}

func (a Args) present(key string) (json.RawMessage, bool) {
	v, ok := a[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	return v, true
}

// String returns a required string parameter.
func (a Args) String(key string) (string, error) {
	v, ok := a.present(key)
	if !ok {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", fmt.Errorf("argument %q: expected string", key)
	}
	return s, nil
}

// StringPtr returns an optional string parameter.
func (a Args) StringPtr(key string) (*string, error) {
	v, ok := a.present(key)
	if !ok {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil, fmt.Errorf("argument %q: expected string", key)
	}
	return &s, nil
}

// Bool returns an optional boolean parameter, false when absent.
func (a Args) Bool(key string) (bool, error) {
	v, ok := a.present(key)
	if !ok {
		return false, nil
	}
	var b bool
	if err := json.Unmarshal(v, &b); err != nil {
		return false, fmt.Errorf("argument %q: expected boolean", key)
	}
	return b, nil
}

// IntPtr returns an optional integer parameter.
func (a Args) IntPtr(key string) (*int, error) {
	v, ok := a.present(key)
	if !ok {
		return nil, nil
	}
	var n int
	if err := json.Unmarshal(v, &n); err != nil {
		return nil, fmt.Errorf("argument %q: expected integer", key)
	}
	return &n, nil
}

// Int64Ptr returns an optional 64-bit integer parameter.
func (a Args) Int64Ptr(key string) (*int64, error) {
	v, ok := a.present(key)
	if !ok {
		return nil, nil
	}
	var n int64
	if err := json.Unmarshal(v, &n); err != nil {
		return nil, fmt.Errorf("argument %q: expected integer", key)
	}
	return &n, nil
}

// Object strictly decodes a required object parameter into v.
func (a Args) Object(key string, v any) error {
	raw, ok := a.present(key)
	if !ok {
		return fmt.Errorf("missing required argument %q", key)
	}
	if err := model.Decode(raw, v); err != nil {
		return fmt.Errorf("argument %q: %w", key, err)
	}
	return nil
}
