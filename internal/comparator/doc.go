// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package comparator resolves the total order used to make unordered
// collections deterministic before they are written as document lines.
//
// Types registered for natural ordering compare through their own Compare
// method or, for basic kinds, through the language order. That registration
// always wins over user comparators, which are consulted in registration order
// afterwards.
package comparator
