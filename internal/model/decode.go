package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Validator is implemented by payload types with required fields.
type Validator interface {
	Validate() error
}

// ShapeError reports a payload whose JSON shape does not match the target type.
type ShapeError struct {
	Want string
	Got  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected payload shape: want %s, got %s", e.Want, e.Got)
}

// Decode unmarshals a bridge payload into v and validates it.
//
// The top-level JSON kind must match the target: objects for structs and maps,
// arrays for slices (null decodes to an empty slice). Field type mismatches are
// rejected by encoding/json. Values implementing Validator, including slice
// elements, are validated after decoding.
func Decode(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode: target must be a non-nil pointer, got %T", v)
	}
	target := rv.Elem()

	got := jsonKind(data)
	if want := expectedKind(target.Kind()); want != "" && want != got {
		if !(got == "null" && target.Kind() == reflect.Slice) {
			return &ShapeError{Want: want, Got: got}
		}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if target.Kind() == reflect.Slice && target.IsNil() {
		target.Set(reflect.MakeSlice(target.Type(), 0, 0))
	}
	return validate(target)
}

func validate(v reflect.Value) error {
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			if err := validate(v.Index(i)); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	}
	if !v.CanInterface() {
		return nil
	}
	if val, ok := v.Interface().(Validator); ok {
		return val.Validate()
	}
	return nil
}

func expectedKind(k reflect.Kind) string {
	switch k {
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice:
		return "array"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int32, reflect.Int64, reflect.Uint, reflect.Uint32, reflect.Uint64, reflect.Float64:
		return "number"
	default:
		return ""
	}
}

func jsonKind(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "empty"
	}
	switch c := data[0]; {
	case c == '{':
		return "object"
	case c == '[':
		return "array"
	case c == '"':
		return "string"
	case c == 't' || c == 'f':
		return "boolean"
	case c == 'n':
		return "null"
	default:
		return "number"
	}
}
