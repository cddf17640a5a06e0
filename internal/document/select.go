// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNoSelection is returned when a select path matches nothing.
var ErrNoSelection = errors.New("path selects nothing")

var segmentPattern = regexp.MustCompile(`^([^.\[\]]+)(\[(\d+|\*)?\])?$`)

// Select returns the part of value addressed by a dotted path such as
// spec.containers[0].env. A segment naming an array may carry an index, or
// [] and [*] for the whole array. Without brackets a one-element array is
// unwrapped and longer arrays are kept whole.
func Select(value any, path string) (any, error) {
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return value, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", path, err)
	}

	current := gjson.ParseBytes(raw)
	for _, segment := range strings.Split(path, ".") {
		m := segmentPattern.FindStringSubmatch(segment)
		if m == nil {
			return nil, fmt.Errorf("invalid path segment %q in %s", segment, path)
		}
		key, brackets, index := m[1], m[2], m[3]

		if !current.IsObject() {
			return nil, fmt.Errorf("%w: %s is not an object at %q", ErrNoSelection, path, segment)
		}
		next, ok := current.Map()[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no %q", ErrNoSelection, path, key)
		}

		if next.IsArray() {
			arr := next.Array()
			switch {
			case brackets == "":
				if len(arr) == 1 {
					next = arr[0]
				}
			case index == "" || index == "*":
			default:
				i, err := strconv.Atoi(index)
				if err != nil || i >= len(arr) {
					return nil, fmt.Errorf("%w: %s index %s out of range", ErrNoSelection, path, index)
				}
				next = arr[i]
			}
		} else if brackets != "" {
			return nil, fmt.Errorf("%w: %s is not an array at %q", ErrNoSelection, path, key)
		}

		current = next
	}

	return Root(current.Value()), nil
}
