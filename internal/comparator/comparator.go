// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparator

import (
	"fmt"
	"strings"

	"github.com/tfctl/graphdiff/internal/serializer"
)

// CompareFunc returns a negative number when a sorts before b, a positive
// number when it sorts after and zero when both are equal.
type CompareFunc func(a, b any) int

// Comparator orders the values it applies to. Compare must be a strict total
// order and must not depend on anything but its arguments.
type Comparator interface {
	Applies(value any) bool
	Compare(a, b any) int
}

type funcComparator struct {
	applies func(any) bool
	compare CompareFunc
}

func (c funcComparator) Applies(value any) bool { return c.applies(value) }
func (c funcComparator) Compare(a, b any) int   { return c.compare(a, b) }

// Func builds a Comparator from a predicate and a compare function.
func Func(applies func(any) bool, compare func(a, b any) int) Comparator {
	return funcComparator{applies: applies, compare: compare}
}

// For applies to every non-nil T. Operands that are not T, which happens in
// heterogeneous collections, are ordered by their type name.
func For[T any](compare func(a, b T) int) Comparator {
	return Func(
		func(value any) bool {
			if serializer.IsNil(value) {
				return false
			}
			_, ok := value.(T)
			return ok
		},
		func(a, b any) int {
			ta, okA := a.(T)
			tb, okB := b.(T)
			if !okA || !okB {
				return byTypeName(a, b)
			}
			return compare(ta, tb)
		},
	)
}

// NullsFirst lifts cmp to nil operands, which sort before everything else and
// are equal among themselves.
func NullsFirst(cmp CompareFunc) CompareFunc {
	return func(a, b any) int {
		aNil, bNil := serializer.IsNil(a), serializer.IsNil(b)
		switch {
		case aNil && bNil:
			return 0
		case aNil:
			return -1
		case bNil:
			return 1
		}
		return cmp(a, b)
	}
}

func byTypeName(a, b any) int {
	return strings.Compare(fmt.Sprintf("%T", a), fmt.Sprintf("%T", b))
}
