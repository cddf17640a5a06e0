// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package property

// Filter excludes properties by name.
type Filter struct {
	excluded map[string]struct{}
}

// NewFilter returns a Filter rejecting the given names.
func NewFilter(excluded ...string) Filter {
	f := Filter{excluded: make(map[string]struct{}, len(excluded))}
	for _, name := range excluded {
		f.excluded[name] = struct{}{}
	}
	return f
}

// Includes reports whether name is not excluded.
func (f Filter) Includes(name string) bool {
	_, ok := f.excluded[name]
	return !ok
}

// Accepts reports whether p is a usable descriptor whose name is included.
func (f Filter) Accepts(p Property) bool {
	if p.Name == "" || p.Get == nil {
		return false
	}
	return f.Includes(p.Name)
}
