package commands

import (
	"bytes"
	"encoding/json"
)

// Optional holds a request body field that may be absent, explicitly null,
// or carry a value of an unexpected JSON type.
//
// Decoding never fails on a type mismatch: the mismatch is recorded in Kind
// so that validation can report which field was wrong and what it held.
type Optional[T any] struct {
	// Present is true when the key appeared in the body, even with a null value.
	Present bool
	// Valid is true when Value was decoded from a JSON value of the expected type.
	Valid bool
	Value T
	// Kind is the JSON type found in the body: "string", "number", "boolean",
	// "object", "array" or "null". Empty when the key was absent.
	Kind string
}

// UnmarshalJSON implements json.Unmarshaler.
// A repeated key replaces whatever an earlier occurrence decoded.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	*o = Optional[T]{Present: true, Kind: jsonKind(data)}
	if o.Kind == "null" {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		if _, ok := err.(*json.UnmarshalTypeError); ok {
			return nil
		}
		return err
	}
	o.Value = v
	o.Valid = true
	return nil
}

// TypeName returns the JSON type description used in validation messages.
func (o Optional[T]) TypeName() string {
	if !o.Present {
		return "undefined"
	}
	return o.Kind
}

func jsonKind(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "undefined"
	}
	switch data[0] {
	case 'n':
		return "null"
	case 't', 'f':
		return "boolean"
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "number"
	}
}
