// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package linepath

import (
	"strconv"
	"strings"
)

const (
	separator  = "."
	assign     = "="
	indexStart = "["
	indexEnd   = "]"
	nullValue  = "null"
)

// Property extends path with a named property.
func Property(path, name string) string {
	return join(path, separator, name)
}

// Index extends path with a sequence position.
func Index(path string, i int) string {
	return join(path, indexStart, strconv.Itoa(i), indexEnd)
}

// MapKey extends path with an already serialized map key.
func MapKey(path, key string) string {
	return join(path, indexStart, key, indexEnd)
}

// Value terminates path with a rendered value.
func Value(path, value string) string {
	return join(path, assign, value)
}

// Null terminates path with the literal null.
func Null(path string) string {
	return join(path, assign, nullValue)
}

func join(parts ...string) string {
	var sb strings.Builder
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	sb.Grow(n)
	for _, p := range parts {
		sb.WriteString(p)
	}
	return sb.String()
}
