// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package flatten

import (
	"errors"
	"fmt"
	"reflect"
)

// Kind tells which part of the graph a resolution failure refers to.
type Kind int

const (
	KindProperty Kind = iota
	KindMapKey
	KindIterable
)

func (k Kind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindMapKey:
		return "map key"
	case KindIterable:
		return "iterable"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var (
	ErrMissingSerializer  = errors.New("missing serializer")
	ErrMissingComparator  = errors.New("missing comparator")
	ErrUnreadableProperty = errors.New("unreadable property")
)

// MissingSerializerError reports a value or map key nothing could render.
type MissingSerializerError struct {
	Kind Kind
	Path string
	Type reflect.Type
}

func (e *MissingSerializerError) Error() string {
	if e.Kind == KindMapKey {
		return fmt.Sprintf("could not find serializer for map key of type '%s' at '%s'", typeName(e.Type), e.Path)
	}
	return fmt.Sprintf("could not find serializer for '%s' at '%s'", typeName(e.Type), e.Path)
}

func (e *MissingSerializerError) Is(target error) bool {
	return target == ErrMissingSerializer
}

// MissingComparatorError reports an unordered collection whose elements or
// keys cannot be sorted.
type MissingComparatorError struct {
	Kind Kind
	Path string
	Type reflect.Type
}

func (e *MissingComparatorError) Error() string {
	if e.Kind == KindMapKey {
		return fmt.Sprintf("could not find comparator for map keys of type '%s' at '%s'", typeName(e.Type), e.Path)
	}
	return fmt.Sprintf("could not find comparator for iterable at '%s'", e.Path)
}

func (e *MissingComparatorError) Is(target error) bool {
	return target == ErrMissingComparator
}

// UnreadablePropertyError wraps the failure of a property getter.
type UnreadablePropertyError struct {
	Path string
	Err  error
}

func (e *UnreadablePropertyError) Error() string {
	return fmt.Sprintf("could not read property at '%s': %v", e.Path, e.Err)
}

func (e *UnreadablePropertyError) Unwrap() error {
	return e.Err
}

func (e *UnreadablePropertyError) Is(target error) bool {
	return target == ErrUnreadableProperty
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
