// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package property

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

const tagKey = "diff"

// Property is a named, readable aspect of a struct value.
type Property struct {
	Name string
	Get  func(v reflect.Value) (any, error)
}

// Enumerator lists the properties of a type. Types without properties yield
// an empty list.
type Enumerator interface {
	Properties(t reflect.Type) []Property
}

// Reflector enumerates exported struct fields. It is safe for concurrent use.
type Reflector struct {
	typeProperty string
	cache        sync.Map // reflect.Type -> []Property
}

// Option configures a Reflector.
type Option func(*Reflector)

// WithTypeProperty prepends a synthetic property of the given name holding the
// value's reflect.Type.
func WithTypeProperty(name string) Option {
	return func(r *Reflector) {
		r.typeProperty = name
	}
}

// NewReflector returns a Reflector.
func NewReflector(opts ...Option) *Reflector {
	r := &Reflector{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Properties returns the properties of struct type t. Any other type has none.
func (r *Reflector) Properties(t reflect.Type) []Property {
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	if cached, ok := r.cache.Load(t); ok {
		return cached.([]Property)
	}

	props, _ := r.cache.LoadOrStore(t, r.enumerate(t))
	return props.([]Property)
}

func (r *Reflector) enumerate(t reflect.Type) []Property {
	var props []Property

	if r.typeProperty != "" {
		props = append(props, Property{
			Name: r.typeProperty,
			Get: func(v reflect.Value) (any, error) {
				return v.Type(), nil
			},
		})
	}

	fields := reflect.VisibleFields(t)
	for _, f := range fields {
		if !f.IsExported() {
			continue
		}
		// An embedded field stands for itself only when nothing is promoted
		// from it, as with time.Time or a named string.
		if f.Anonymous && promotes(f, fields) {
			continue
		}

		name, ok := fieldName(f)
		if !ok {
			continue
		}

		props = append(props, Property{
			Name: name,
			Get:  getter(f),
		})
	}

	return props
}

// fieldName resolves the property name of f, reporting false for hidden
// fields.
func fieldName(f reflect.StructField) (string, bool) {
	tag, ok := f.Tag.Lookup(tagKey)
	if ok {
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return "", false
		}
		if name != "" {
			return name, true
		}
	}
	return decapitalize(f.Name), true
}

// promotes reports whether a property is promoted through the embedded field
// f, either a plain exported field or a nested embedded one standing for
// itself.
func promotes(f reflect.StructField, fields []reflect.StructField) bool {
	for _, g := range fields {
		if len(g.Index) <= len(f.Index) || !g.IsExported() ||
			!slices.Equal(g.Index[:len(f.Index)], f.Index) {
			continue
		}
		if !g.Anonymous || !promotes(g, fields) {
			return true
		}
	}
	return false
}

// getter reads the field at f.Index. A nil embedded pointer on the way makes
// the field absent, which reads as nil.
func getter(f reflect.StructField) func(reflect.Value) (any, error) {
	index := f.Index
	return func(v reflect.Value) (value any, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("reading field %s: %v", f.Name, rec)
			}
		}()

		for i, x := range index {
			if i > 0 && v.Kind() == reflect.Pointer {
				if v.IsNil() {
					return nil, nil
				}
				v = v.Elem()
			}
			v = v.Field(x)
		}
		return v.Interface(), nil
	}
}

// decapitalize lowers the first rune of name unless the second rune is upper
// case as well, so acronyms keep their spelling.
func decapitalize(name string) string {
	first, size := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError || !unicode.IsUpper(first) {
		return name
	}

	if second, _ := utf8.DecodeRuneInString(name[size:]); unicode.IsUpper(second) {
		return name
	}

	return string(unicode.ToLower(first)) + name[size:]
}
