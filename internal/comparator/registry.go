// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparator

import (
	"reflect"
	"slices"
)

// Registry is an immutable lookup of comparators.
type Registry struct {
	natural []reflect.Type
	custom  []Comparator
}

// NewRegistry snapshots the natural-ordering types and custom comparators.
// Natural types are expected to have passed Orderable.
func NewRegistry(natural []reflect.Type, custom []Comparator) *Registry {
	return &Registry{
		natural: slices.Clone(natural),
		custom:  slices.Clone(custom),
	}
}

// Find returns the order for value: the natural order if its type, or the
// type a non-nil pointer leads to, was registered for it, else the first
// applicable custom comparator.
func (r *Registry) Find(value any) (CompareFunc, bool) {
	if value == nil {
		return nil, false
	}

	if r.isNatural(reflect.TypeOf(value)) || r.isNatural(indirect(reflect.ValueOf(value)).Type()) {
		return Natural, true
	}

	for _, c := range r.custom {
		if c.Applies(value) {
			return c.Compare, true
		}
	}
	return nil, false
}

func (r *Registry) isNatural(t reflect.Type) bool {
	for _, n := range r.natural {
		if n == t || indirectType(n) == t {
			return true
		}
		if n.Kind() == reflect.Interface && t.Implements(n) {
			return true
		}
	}
	return false
}
