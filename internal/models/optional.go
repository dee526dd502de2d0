package models

import (
	"encoding/json"
)

// Optional is a JSON field that records whether it was supplied at all,
// and whether it was supplied as null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a supplied, non-null Optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns an Optional supplied as JSON null
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON is only called for keys present in the document
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value = zero
		o.Null = true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// HasValue reports whether a non-null value was supplied
func (o Optional[T]) HasValue() bool {
	return o.Set && !o.Null
}
