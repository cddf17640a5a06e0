// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package serializer

import (
	"fmt"
	"reflect"
)

// Serializer converts a value into its line representation. Serialize must
// not panic for any value Applies accepted.
type Serializer interface {
	Applies(value any) bool
	Serialize(value any) string
}

type funcSerializer struct {
	applies   func(any) bool
	serialize func(any) string
}

func (s funcSerializer) Applies(value any) bool     { return s.applies(value) }
func (s funcSerializer) Serialize(value any) string { return s.serialize(value) }

// Func builds a Serializer from a predicate and a conversion.
func Func(applies func(any) bool, serialize func(any) string) Serializer {
	return funcSerializer{applies: applies, serialize: serialize}
}

// For serializes every non-nil value whose dynamic type is T or, when T is an
// interface, implements it.
func For[T any](fn func(T) string) Serializer {
	return Func(
		func(value any) bool {
			if IsNil(value) {
				return false
			}
			_, ok := value.(T)
			return ok
		},
		func(value any) string {
			return fn(value.(T))
		},
	)
}

// ToString serializes values of exactly the dynamic types of the given
// samples with fmt.Sprint.
func ToString(samples ...any) Serializer {
	types := make(map[reflect.Type]struct{}, len(samples))
	for _, s := range samples {
		if s != nil {
			types[reflect.TypeOf(s)] = struct{}{}
		}
	}
	return Func(
		func(value any) bool {
			if value == nil {
				return false
			}
			_, ok := types[reflect.TypeOf(value)]
			return ok
		},
		func(value any) string {
			return fmt.Sprint(value)
		},
	)
}

// Stringer serializes any non-nil fmt.Stringer through its String method.
func Stringer() Serializer {
	return For(func(s fmt.Stringer) string {
		return s.String()
	})
}

// IsNil reports whether value is nil or a nil pointer, interface, map, slice,
// func or chan.
func IsNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// QualifiedName returns pkgpath.Name for named types and the type literal
// otherwise.
func QualifiedName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
