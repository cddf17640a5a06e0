// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package flatten turns an arbitrary value graph into a document: an ordered
// list of path=value lines.
//
// Every value is handled by the first matching rule of a fixed chain:
//
//  1. nil values render as path=null
//  2. values with a serializer render as one quoted line
//  3. pointers are followed without extending the path
//  4. slices, arrays and sets (map[K]struct{}) are sorted, then flattened at
//     path[i]
//  5. maps are sorted by key, then flattened at path['key']
//  6. anything else is decomposed into properties at path.name
//
// The serializer rule always precedes the structural ones, so registering a
// serializer for a collection type renders it as a single line. Unordered
// collections are sorted before they are written, which makes the document a
// deterministic function of the data. Cyclic graphs are not detected and
// recurse until the stack is exhausted.
package flatten
