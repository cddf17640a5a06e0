// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

// Prune removes object members whose name is in excluded, at every depth.
// It returns value for convenience and modifies it in place.
func Prune(value any, excluded ...string) any {
	if len(excluded) == 0 {
		return value
	}

	drop := make(map[string]struct{}, len(excluded))
	for _, name := range excluded {
		drop[name] = struct{}{}
	}
	prune(value, drop)
	return value
}

func prune(value any, drop map[string]struct{}) {
	switch v := value.(type) {
	case Document:
		prune(map[string]any(v), drop)
	case map[string]any:
		for key, item := range v {
			if _, ok := drop[key]; ok {
				delete(v, key)
				continue
			}
			prune(item, drop)
		}
	case []any:
		for _, item := range v {
			prune(item, drop)
		}
	}
}
