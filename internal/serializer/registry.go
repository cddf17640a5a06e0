// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package serializer

import (
	"reflect"
)

const quote = "'"

// quoted encloses the output of the wrapped serializer in single quotes.
type quoted struct {
	Serializer
}

func (q quoted) Serialize(value any) string {
	return quote + q.Serializer.Serialize(value) + quote
}

// typeSerializer renders reflect.Type values by their qualified name.
type typeSerializer struct{}

func (typeSerializer) Applies(value any) bool {
	t, ok := value.(reflect.Type)
	return ok && t != nil
}

func (typeSerializer) Serialize(value any) string {
	return QualifiedName(value.(reflect.Type))
}

// nullSerializer renders the absence of a value.
type nullSerializer struct{}

func (nullSerializer) Applies(value any) bool { return IsNil(value) }
func (nullSerializer) Serialize(any) string   { return "null" }

// defaults are consulted after every custom serializer.
var defaults = []Serializer{
	quoted{typeSerializer{}},
	nullSerializer{},
}

// Registry is an immutable, ordered lookup of serializers.
type Registry struct {
	custom []Serializer
}

// NewRegistry returns a registry consulting the given serializers, each
// quote-enclosed, before the built-in defaults.
func NewRegistry(custom ...Serializer) *Registry {
	r := &Registry{custom: make([]Serializer, 0, len(custom))}
	for _, s := range custom {
		r.custom = append(r.custom, quoted{s})
	}
	return r
}

// Find returns the first serializer applying to value. A miss is expected for
// structured values and is not an error by itself.
func (r *Registry) Find(value any) (Serializer, bool) {
	for _, tier := range [][]Serializer{r.custom, defaults} {
		for _, s := range tier {
			if s.Applies(value) {
				return s, true
			}
		}
	}
	return nil, false
}
