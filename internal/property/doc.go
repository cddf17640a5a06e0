// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package property enumerates the readable properties of struct values and
// decides which of them take part in a diff.
//
// The Reflector lists exported fields in declaration order. Fields of
// embedded structs are promoted the same way the compiler promotes them. A
// `diff:"name"` tag renames a field and `diff:"-"` hides it. Untagged names
// are decapitalised, so Street becomes street while URL stays URL.
package property
