// Package optional provides an explicit present-or-absent value type.
package optional

import (
	"encoding/json"
	"fmt"
)

// Value holds either a present value of type T or nothing.
// The zero Value is absent.
type Value[T any] struct {
	v  T
	ok bool
}

// Of returns a present Value holding v.
func Of[T any](v T) Value[T] {
	return Value[T]{v: v, ok: true}
}

// Empty returns an absent Value.
func Empty[T any]() Value[T] {
	return Value[T]{}
}

// FromPtr returns a Value holding *p, or an absent Value when p is nil.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return Value[T]{}
	}
	return Of(*p)
}

// FromString returns a Value holding s, or an absent Value when s is empty.
func FromString(s string) Value[string] {
	if s == "" {
		return Value[string]{}
	}
	return Of(s)
}

// Map applies fn to the value held by v. Absent stays absent.
func Map[T, U any](v Value[T], fn func(T) U) Value[U] {
	if !v.ok {
		return Value[U]{}
	}
	return Of(fn(v.v))
}

// Get returns the held value and whether it is present.
func (o Value[T]) Get() (T, bool) {
	return o.v, o.ok
}

// IsPresent reports whether a value is held.
func (o Value[T]) IsPresent() bool {
	return o.ok
}

// OrElse returns the held value, or fallback when absent.
func (o Value[T]) OrElse(fallback T) T {
	if !o.ok {
		return fallback
	}
	return o.v
}

// String renders the held value with %v, or "<absent>".
func (o Value[T]) String() string {
	if !o.ok {
		return "<absent>"
	}
	return fmt.Sprintf("%v", o.v)
}

// MarshalJSON encodes the held value, or null when absent.
func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}
