// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/tfctl/graphdiff/internal/comparator"
	"github.com/tfctl/graphdiff/internal/differ"
	"github.com/tfctl/graphdiff/internal/serializer"
)

// Configuration extends base so that every decoded value can be flattened:
// scalars are serialized and naturally ordered, while objects and arrays
// nested in arrays are ordered by their canonical JSON encoding.
func Configuration(base differ.Configuration) differ.Configuration {
	cfg := base.
		UseSerializer(serializer.For(func(s string) string { return s })).
		UseSerializer(serializer.For(strconv.FormatBool)).
		UseSerializer(serializer.For(formatFloat)).
		UseSerializer(serializer.For(strconv.Itoa)).
		UseSerializer(serializer.For(func(i int64) string { return strconv.FormatInt(i, 10) })).
		UseSerializer(serializer.For(func(u uint64) string { return strconv.FormatUint(u, 10) })).
		UseSerializer(serializer.For(func(t time.Time) string { return t.Format(time.RFC3339Nano) }))

	for _, t := range []reflect.Type{
		reflect.TypeFor[string](),
		reflect.TypeFor[bool](),
		reflect.TypeFor[float64](),
		reflect.TypeFor[int](),
		reflect.TypeFor[int64](),
		reflect.TypeFor[uint64](),
		reflect.TypeFor[time.Time](),
	} {
		cfg = cfg.UseNaturalOrderingFor(t)
	}

	return cfg.UseComparator(comparator.Func(
		func(value any) bool { return !serializer.IsNil(value) },
		func(a, b any) int { return strings.Compare(canonical(a), canonical(b)) },
	))
}

// formatFloat prints whole numbers without a fraction or exponent so that
// JSON 3 and YAML 3 render alike.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// canonical encodes value as JSON with object members in key order.
func canonical(value any) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(raw)
}
