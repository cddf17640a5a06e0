// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes line-oriented unified diffs between two value
// graphs.
//
// Both values are flattened into documents of path=value lines, which are
// then compared line by line and rendered with zero lines of context:
//
//	--- base
//	+++ working
//	@@ -1,1 +1,1 @@
//	-Address.street='street'
//	+Address.street='something new'
//
// A Configuration lists the serializers, natural orderings and comparators
// the flattening needs. It is an immutable value: every Use and Exclude
// method returns a modified copy, so one base configuration can be shared
// and specialised freely. New validates a configuration once and returns a
// Differ that is safe for concurrent use.
package differ
