// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"reflect"
	"slices"

	"github.com/tfctl/graphdiff/internal/comparator"
	"github.com/tfctl/graphdiff/internal/property"
	"github.com/tfctl/graphdiff/internal/serializer"
)

const (
	DefaultBaseLabel    = "base"
	DefaultWorkingLabel = "working"
)

// Configuration describes how values are flattened and how the diff is
// labelled. The zero value is usable and knows how to render nil values and
// reflect.Type values only.
type Configuration struct {
	excluded     []string
	serializers  []serializer.Serializer
	natural      []reflect.Type
	comparators  []comparator.Comparator
	baseLabel    string
	workingLabel string
	enumerator   property.Enumerator
	typeProperty string
}

// NewConfiguration returns a Configuration with the default labels.
func NewConfiguration() Configuration {
	return Configuration{
		baseLabel:    DefaultBaseLabel,
		workingLabel: DefaultWorkingLabel,
	}
}

// ExcludeProperty skips properties with the given name wherever they occur.
func (c Configuration) ExcludeProperty(name string) Configuration {
	c.excluded = appended(c.excluded, name)
	return c
}

// UseSerializer adds s after the serializers already registered.
func (c Configuration) UseSerializer(s serializer.Serializer) Configuration {
	c.serializers = appended(c.serializers, s)
	return c
}

// UseNaturalOrderingFor sorts values of type t by their intrinsic order. An
// interface type matches every type implementing it.
func (c Configuration) UseNaturalOrderingFor(t reflect.Type) Configuration {
	c.natural = appended(c.natural, t)
	return c
}

// UseComparator adds cmp after the comparators already registered.
func (c Configuration) UseComparator(cmp comparator.Comparator) Configuration {
	c.comparators = appended(c.comparators, cmp)
	return c
}

// UseBaseLabel names the base side in the diff header.
func (c Configuration) UseBaseLabel(label string) Configuration {
	c.baseLabel = label
	return c
}

// UseWorkingLabel names the working side in the diff header.
func (c Configuration) UseWorkingLabel(label string) Configuration {
	c.workingLabel = label
	return c
}

// UsePropertyEnumerator replaces the reflection based property enumeration.
func (c Configuration) UsePropertyEnumerator(e property.Enumerator) Configuration {
	c.enumerator = e
	return c
}

// UseTypeProperty makes every struct expose its type as the first property,
// named name. It only affects the default enumerator.
func (c Configuration) UseTypeProperty(name string) Configuration {
	c.typeProperty = name
	return c
}

// BaseLabel returns the base header label, falling back to the default.
func (c Configuration) BaseLabel() string {
	return labelOr(c.baseLabel, DefaultBaseLabel)
}

// WorkingLabel returns the working header label, falling back to the default.
func (c Configuration) WorkingLabel() string {
	return labelOr(c.workingLabel, DefaultWorkingLabel)
}

// appended never writes into the backing array of s, so configurations
// derived from a common parent stay independent.
func appended[T any](s []T, v T) []T {
	return append(slices.Clip(s), v)
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}
