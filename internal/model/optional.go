package model

import (
	"bytes"
	"encoding/json"
)

// Optional wraps an update field so that an absent field, an explicit null
// and a concrete value are three distinct states. The zero value means
// "not supplied".
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a supplied Optional holding value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Value: value}
}

// Null returns a supplied Optional carrying an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked for fields present in the document, so a
// decoded Optional is always Set; "null" marks a deliberate clear.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}
