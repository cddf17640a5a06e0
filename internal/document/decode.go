// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/tidwall/gjson"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"
)

// Document is the root object of a decoded file.
type Document map[string]any

// Format names a document encoding.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// Formats lists the values accepted by ParseFormat.
var Formats = []Format{FormatAuto, FormatJSON, FormatYAML, FormatHCL}

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown document format")

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if f == "" {
		return FormatAuto, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q, must be one of %v", ErrUnknownFormat, s, Formats)
}

// Detect guesses the format of data from its name, falling back to the
// content: anything that starts like a JSON object or array is JSON, the
// rest YAML.
func Detect(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".tfstate":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".hcl", ".tfvars":
		return FormatHCL
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') && gjson.ValidBytes(trimmed) {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses data in format f. FormatAuto detects it first. Name is used
// for detection and in error messages.
func Decode(name string, data []byte, f Format) (any, error) {
	if f == FormatAuto || f == "" {
		f = Detect(name, data)
	}

	var (
		value any
		err   error
	)
	switch f {
	case FormatJSON:
		value, err = decodeJSON(data)
	case FormatYAML:
		value, err = decodeYAML(data)
	case FormatHCL:
		value, err = decodeHCL(name, data)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s as %s: %w", name, f, err)
	}

	return Root(value), nil
}

// Root types a top level object as Document. Other values pass unchanged.
func Root(value any) any {
	if m, ok := value.(map[string]any); ok {
		return Document(m)
	}
	return value
}

func decodeJSON(data []byte) (any, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid json")
	}
	return gjson.ParseBytes(data).Value(), nil
}

func decodeYAML(data []byte) (any, error) {
	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return normalize(value), nil
}

// decodeHCL evaluates the top level attributes of an HCL file, such as a
// tfvars file, without variables or functions.
func decodeHCL(name string, data []byte) (any, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, diags
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	out := make(map[string]any, len(attrs))
	for key, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		if val.IsNull() {
			out[key] = nil
			continue
		}

		raw, err := ctyjson.Marshal(val, val.Type())
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", key, err)
		}
		out[key] = gjson.ParseBytes(raw).Value()
	}
	return out, nil
}

// normalize rewrites YAML mappings with non-string keys into string keyed
// maps and YAML integers into float64, so every document has the same shape
// regardless of the source format.
func normalize(value any) any {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case map[string]any:
		for key, item := range v {
			v[key] = normalize(item)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range v {
			v[i] = normalize(item)
		}
		return v
	}
	return value
}
