// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// patch holds the hunks that turn one document into another.
type patch struct {
	a, b   []string
	groups [][]difflib.OpCode
}

// newPatch compares two documents line by line without any context.
func newPatch(a, b []string) patch {
	m := difflib.NewMatcherWithJunk(a, b, false, nil)
	return patch{a: a, b: b, groups: m.GetGroupedOpCodes(0)}
}

// Empty reports whether both documents are equal.
func (p patch) Empty() bool {
	return len(p.groups) == 0
}

// Render returns the unified diff lines. Hunk ranges are 1-based and always
// carry their length, e.g. @@ -1,0 +1,4 @@ for an insertion into nothing.
func (p patch) Render(fromLabel, toLabel string) []string {
	if p.Empty() {
		return nil
	}

	out := []string{"--- " + fromLabel, "+++ " + toLabel}
	for _, group := range p.groups {
		first, last := group[0], group[len(group)-1]
		out = append(out, fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			first.I1+1, last.I2-first.I1, first.J1+1, last.J2-first.J1))

		for _, op := range group {
			if op.Tag == 'r' || op.Tag == 'd' {
				for _, line := range p.a[op.I1:op.I2] {
					out = append(out, "-"+line)
				}
			}
			if op.Tag == 'r' || op.Tag == 'i' {
				for _, line := range p.b[op.J1:op.J2] {
					out = append(out, "+"+line)
				}
			}
		}
	}
	return out
}
