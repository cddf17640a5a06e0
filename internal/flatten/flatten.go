// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package flatten

import (
	"reflect"
	"slices"

	"github.com/tfctl/graphdiff/internal/comparator"
	"github.com/tfctl/graphdiff/internal/linepath"
	"github.com/tfctl/graphdiff/internal/property"
	"github.com/tfctl/graphdiff/internal/serializer"
)

// Flattener writes value graphs as documents. It holds no mutable state and
// is safe for concurrent use.
type Flattener struct {
	serializers *serializer.Registry
	comparators *comparator.Registry
	filter      property.Filter
	enumerator  property.Enumerator
}

// New returns a Flattener resolving through the given registries.
func New(
	serializers *serializer.Registry,
	comparators *comparator.Registry,
	filter property.Filter,
	enumerator property.Enumerator,
) *Flattener {
	return &Flattener{
		serializers: serializers,
		comparators: comparators,
		filter:      filter,
		enumerator:  enumerator,
	}
}

// Flatten returns the lines of value rooted at path. Any resolution failure
// aborts the whole traversal.
func (f *Flattener) Flatten(path string, value any) ([]string, error) {
	var lines []string
	if err := f.write(&lines, path, value); err != nil {
		return nil, err
	}
	return lines, nil
}

func (f *Flattener) write(lines *[]string, path string, value any) error {
	if serializer.IsNil(value) {
		*lines = append(*lines, linepath.Null(path))
		return nil
	}

	if s, ok := f.serializers.Find(value); ok {
		*lines = append(*lines, linepath.Value(path, s.Serialize(value)))
		return nil
	}

	rv := reflect.ValueOf(value)
	switch {
	case rv.Kind() == reflect.Pointer:
		return f.write(lines, path, rv.Elem().Interface())
	case isSequence(rv):
		return f.writeSequence(lines, path, elements(rv))
	case rv.Kind() == reflect.Map:
		return f.writeMap(lines, path, rv)
	}
	return f.writeProperties(lines, path, rv)
}

func (f *Flattener) writeSequence(lines *[]string, path string, elems []any) error {
	if len(elems) == 0 {
		return nil
	}

	if i := slices.IndexFunc(elems, isPresent); i >= 0 {
		compare, ok := f.comparators.Find(elems[i])
		if !ok {
			return &MissingComparatorError{Kind: KindIterable, Path: path, Type: reflect.TypeOf(elems[i])}
		}
		slices.SortStableFunc(elems, comparator.NullsFirst(compare))
	}

	for i, elem := range elems {
		if err := f.write(lines, linepath.Index(path, i), elem); err != nil {
			return err
		}
	}
	return nil
}

type entry struct {
	key   any
	value any
}

func (f *Flattener) writeMap(lines *[]string, path string, rv reflect.Value) error {
	if rv.Len() == 0 {
		return nil
	}

	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: iter.Key().Interface(), value: iter.Value().Interface()})
	}

	if i := slices.IndexFunc(entries, func(e entry) bool { return isPresent(e.key) }); i >= 0 {
		key := entries[i].key
		compare, ok := f.comparators.Find(key)
		if !ok {
			return &MissingComparatorError{Kind: KindMapKey, Path: path, Type: reflect.TypeOf(key)}
		}
		byKey := comparator.NullsFirst(compare)
		slices.SortStableFunc(entries, func(a, b entry) int {
			return byKey(a.key, b.key)
		})
	}

	for _, e := range entries {
		s, ok := f.serializers.Find(e.key)
		if !ok {
			return &MissingSerializerError{Kind: KindMapKey, Path: path, Type: reflect.TypeOf(e.key)}
		}
		if err := f.write(lines, linepath.MapKey(path, s.Serialize(e.key)), e.value); err != nil {
			return err
		}
	}
	return nil
}

func (f *Flattener) writeProperties(lines *[]string, path string, rv reflect.Value) error {
	before := len(*lines)

	for _, p := range f.enumerator.Properties(rv.Type()) {
		if !f.filter.Accepts(p) {
			continue
		}

		propertyPath := linepath.Property(path, p.Name)
		value, err := p.Get(rv)
		if err != nil {
			return &UnreadablePropertyError{Path: propertyPath, Err: err}
		}

		if err := f.write(lines, propertyPath, value); err != nil {
			return err
		}
	}

	if len(*lines) == before {
		return &MissingSerializerError{Kind: KindProperty, Path: path, Type: rv.Type()}
	}
	return nil
}

// isSequence reports slices, arrays and maps used as sets.
func isSequence(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return true
	case reflect.Map:
		elem := rv.Type().Elem()
		return elem.Kind() == reflect.Struct && elem.NumField() == 0
	}
	return false
}

// elements materialises a sequence. Sets contribute their keys.
func elements(rv reflect.Value) []any {
	elems := make([]any, 0, rv.Len())
	if rv.Kind() == reflect.Map {
		iter := rv.MapRange()
		for iter.Next() {
			elems = append(elems, iter.Key().Interface())
		}
		return elems
	}

	for i := range rv.Len() {
		elems = append(elems, rv.Index(i).Interface())
	}
	return elems
}

func isPresent(value any) bool {
	return !serializer.IsNil(value)
}
