// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparator

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrNotOrderable reports a natural-ordering registration for a type that has
// no intrinsic order.
var ErrNotOrderable = errors.New("type has no natural ordering")

const compareMethod = "Compare"

// Orderable reports whether values of t can be compared by Natural. That is
// the case for integer, float, string and bool kinds, for types with a
// Compare(T) int method and for interfaces declaring a Compare method.
func Orderable(t reflect.Type) error {
	if t == nil {
		return fmt.Errorf("%w: nil type", ErrNotOrderable)
	}

	if t.Kind() == reflect.Interface {
		if _, ok := t.MethodByName(compareMethod); ok {
			return nil
		}
		return fmt.Errorf("%w: interface %s does not declare %s", ErrNotOrderable, t, compareMethod)
	}

	if m, ok := t.MethodByName(compareMethod); ok && isCompareSignature(1, m.Type, t) {
		return nil
	}

	if t.Kind() == reflect.Pointer {
		return Orderable(t.Elem())
	}

	if basicKind(t.Kind()) {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrNotOrderable, t)
}

// Natural compares two non-nil values by their intrinsic order. Non-nil
// pointers are compared by what they point to. Values of different dynamic
// types are ordered by type name.
func Natural(a, b any) int {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() == vb.Type() {
		if m := va.MethodByName(compareMethod); m.IsValid() && isCompareSignature(0, m.Type(), vb.Type()) {
			return int(m.Call([]reflect.Value{vb})[0].Int())
		}
	}

	va, vb = indirect(va), indirect(vb)
	if va.Type() != vb.Type() {
		return strings.Compare(va.Type().String(), vb.Type().String())
	}

	if m := va.MethodByName(compareMethod); m.IsValid() && isCompareSignature(0, m.Type(), vb.Type()) {
		return int(m.Call([]reflect.Value{vb})[0].Int())
	}

	switch va.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(va.Int(), vb.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(va.Uint(), vb.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(va.Float(), vb.Float())
	case reflect.String:
		return strings.Compare(va.String(), vb.String())
	case reflect.Bool:
		return cmp.Compare(boolRank(va.Bool()), boolRank(vb.Bool()))
	}

	return strings.Compare(fmt.Sprint(va.Interface()), fmt.Sprint(vb.Interface()))
}

// isCompareSignature checks for func(T) int where the argument sits at index
// arg of ft, which is 1 for method expressions and 0 for bound methods.
func isCompareSignature(arg int, ft reflect.Type, operand reflect.Type) bool {
	if ft.NumIn() != arg+1 || ft.NumOut() != 1 {
		return false
	}
	return operand.AssignableTo(ft.In(arg)) && ft.Out(0).Kind() == reflect.Int
}

func basicKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.String, reflect.Bool:
		return true
	}
	return false
}

// indirect follows non-nil pointers.
func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
