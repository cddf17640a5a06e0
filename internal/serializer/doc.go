// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package serializer turns single values into the strings that appear on the
// right hand side of a document line.
//
// Serializers declare which values they apply to. A Registry resolves a value
// to a serializer by precedence: user serializers first, in registration
// order and enclosed in single quotes, then the built-in defaults, which
// render reflect.Type values by their qualified name (quoted) and nil values
// as the bare word null.
package serializer
