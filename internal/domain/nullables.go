package domain

import (
	"encoding/json"
	"strings"
)

// Optional is a patch field with three states: absent (Set=false),
// explicit null (Set=true, Null=true) and a value.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some builds a set, non-null Optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null builds an Optional that clears the field
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// MarshalJSON implements json.Marshaler
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON implements json.Unmarshaler. It is only called for keys
// present in the document, so an absent key leaves Set=false.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// Ptr returns nil for null and a pointer to the value otherwise
func (o Optional[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// applyOptional overwrites *dst when the patch field is present
func applyOptional[T any](dst **T, o Optional[T]) {
	if o.Set {
		*dst = o.Ptr()
	}
}

// applyRequired overwrites *dst when the patch field carries a value.
// Null on a required field is rejected by validation.
func applyRequired[T any](dst *T, o Optional[T]) {
	if o.Set && !o.Null {
		*dst = o.Value
	}
}

// cleanString trims s and turns blank values into nil
func cleanString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
