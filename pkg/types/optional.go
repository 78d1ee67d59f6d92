package types

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state JSON field for partial update bodies. A plain
// pointer cannot tell an absent key from an explicit null, and several
// update endpoints treat those differently (null clears a nullable column,
// absent leaves it alone, and null on a required column is rejected).
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Ptr returns the value as a pointer, nil when the field was absent or null.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// OptionalOf builds a set, non-null Optional. Test helper shape.
func OptionalOf[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Value: value}
}

// OptionalNull builds a set, explicit-null Optional.
func OptionalNull[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}
