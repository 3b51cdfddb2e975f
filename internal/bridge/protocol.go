package bridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kostyay/docsee/internal/model"
)

// Request is sent from the front-end to the backend. Args is a JSON object of
// named parameters.
type Request struct {
	ID   int64           `json:"id"`
	Op   string          `json:"op"`
	Args json.RawMessage `json:"args,omitempty"`
}

// Response answers exactly one Request with the same ID.
type Response struct {
	ID    int64           `json:"id"`
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

var errArgsNotObject = errors.New("args must be a JSON object")

// EncodeArgs marshals named call arguments. nil encodes to no arguments.
func EncodeArgs(args any) (json.RawMessage, error) {
	if args == nil {
		return nil, nil
	}
	if raw, ok := args.(json.RawMessage); ok {
		if !isObject(raw) {
			return nil, errArgsNotObject
		}
		return raw, nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode args: %w", err)
	}
	if bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if !isObject(data) {
		return nil, errArgsNotObject
	}
	return data, nil
}

func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}

// DecodeResponse turns a response into the call result. A failed response
// becomes a *RemoteError; a successful one is strictly decoded into out
// unless out is nil.
func DecodeResponse(op string, resp Response, out any) error {
	if !resp.OK {
		return &RemoteError{Op: op, Msg: resp.Error}
	}
	if out == nil {
		return nil
	}
	data := resp.Data
	if len(data) == 0 {
		data = []byte("null")
	}
	if err := model.Decode(data, out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
