// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/graphdiff/internal/config"
	"github.com/tfctl/graphdiff/internal/meta"
)

const (
	baseJSON    = `{"name": "a", "n": 1, "secret": "s1"}`
	workingYAML = "name: b\nn: 1\nsecret: s2\n"
)

// fixtures writes the base and working documents and isolates the config.
func fixtures(t *testing.T) (base, working string) {
	t.Helper()

	config.Config = config.Type{Data: map[string]any{"unused": true}}
	t.Cleanup(func() { config.Config = config.Type{} })

	dir := t.TempDir()
	base = filepath.Join(dir, "base.json")
	working = filepath.Join(dir, "working.yaml")
	require.NoError(t, os.WriteFile(base, []byte(baseJSON), 0o600))
	require.NoError(t, os.WriteFile(working, []byte(workingYAML), 0o600))
	return base, working
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := NewApp(meta.Meta{
		Args:    args,
		Context: context.Background(),
		Stdin:   strings.NewReader(stdin),
		Stdout:  &out,
	})
	err := app.Run(context.Background(), append([]string{"graphdiff"}, args...))
	return out.String(), err
}

func TestDiffCommand(t *testing.T) {
	base, working := fixtures(t)

	tests := []struct {
		name     string
		stdin    string
		args     []string
		expected []string
	}{
		{
			name: "labels from references",
			args: []string{"diff", "-x", "secret", base, working},
			expected: []string{
				"--- " + base,
				"+++ " + working,
				"@@ -2,1 +2,1 @@",
				"-Document.name=a",
				"+Document.name=b",
			},
		},
		{
			name: "explicit labels",
			args: []string{"diff", "--base-label", "old", "--working-label", "new", "-x", "secret", base, working},
			expected: []string{
				"--- old",
				"+++ new",
				"@@ -2,1 +2,1 @@",
				"-Document.name=a",
				"+Document.name=b",
			},
		},
		{
			name: "absent base",
			args: []string{"diff", "--none", "-x", "secret,name", working},
			expected: []string{
				"--- base",
				"+++ " + working,
				"@@ -1,0 +1,1 @@",
				"+Document.n=1",
			},
		},
		{
			name:  "stdin working",
			stdin: baseJSON,
			args:  []string{"diff", base, "-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.stdin, tt.args...)
			require.NoError(t, err)

			var got []string
			if out != "" {
				got = strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDiffCommand_Select(t *testing.T) {
	base, _ := fixtures(t)
	nested := filepath.Join(filepath.Dir(base), "nested.json")
	require.NoError(t, os.WriteFile(nested, []byte(`{"spec": [{"name": "a", "n": 1}]}`), 0o600))

	out, err := run(t, `{"spec": [{"name": "a", "n": 2}]}`, "diff", "-s", "spec", nested, "-")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"--- " + nested,
		"+++ working",
		"@@ -1,1 +1,1 @@",
		"-Document.n=1",
		"+Document.n=2",
		"",
	}, "\n"), out)
}

func TestDiffCommand_JSONOutput(t *testing.T) {
	base, working := fixtures(t)

	out, err := run(t, "", "diff", "-o", "json", "-x", "secret,name", base, working)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestDiffCommand_Errors(t *testing.T) {
	base, working := fixtures(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"one argument", []string{"diff", base}, "requires BASE and WORKING"},
		{"three arguments", []string{"diff", base, working, base}, "requires BASE and WORKING"},
		{"missing base", []string{"diff", base + ".nope", working}, "failed to load base"},
		{"bad output", []string{"diff", "-o", "raw", base, working}, "must be one of"},
		{"bad format", []string{"diff", "--format", "toml", base, working}, "unknown document format"},
		{"color with json", []string{"diff", "-c", "-o", "json", base, working}, "--color"},
		{"nothing selected", []string{"diff", "-s", "missing", base, working}, "path selects nothing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFlattenCommand(t *testing.T) {
	base, working := fixtures(t)

	out, err := run(t, "", "flatten", base)
	require.NoError(t, err)
	assert.Equal(t, "Document.n=1\nDocument.name=a\nDocument.secret=s1\n", out)

	out, err = run(t, "", "flatten", "-o", "yaml", "-x", "secret", working)
	require.NoError(t, err)
	assert.Equal(t, "- Document.n=1\n- Document.name=b\n", out)

	_, err = run(t, "", "flatten")
	assert.Error(t, err)
}

func TestFlattenCommand_Color(t *testing.T) {
	base, _ := fixtures(t)

	out, err := run(t, "", "flatten", "-c", base)
	require.NoError(t, err)
	assert.Contains(t, out, "Document.name=a")
}

func TestCompletionCommand(t *testing.T) {
	config.Config = config.Type{Data: map[string]any{"unused": true}}
	t.Cleanup(func() { config.Config = config.Type{} })

	out, err := run(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _graphdiff graphdiff")

	out, err = run(t, "", "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef graphdiff")
}

func TestExcludes_FromConfig(t *testing.T) {
	base, _ := fixtures(t)
	config.Config = config.Type{Data: map[string]any{"exclude": []any{"secret", "n"}}}

	out, err := run(t, "", "flatten", base)
	require.NoError(t, err)
	assert.Equal(t, "Document.name=a\n", out)
}

func TestNameSpacedValueChainFlagFromConfigFile(t *testing.T) {
	fixtures(t)

	path := filepath.Join(t.TempDir(), "graphdiff.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: yaml\ndiff:\n  output: json\n"), 0o600))

	tests := []struct {
		ns   string
		args []string
		want string
	}{
		{"diff", []string{"--none", "-"}, "json"},
		{"flatten", []string{"-"}, "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.ns, func(t *testing.T) {
			var out bytes.Buffer
			app := NewApp(meta.Meta{
				Config: config.Type{Source: path, Data: map[string]any{"unused": true}},
				Stdout: &out,
				Stdin:  strings.NewReader(`{"a": 1}`),
			})
			require.NoError(t, app.Run(context.Background(), append([]string{"graphdiff", tt.ns}, tt.args...)))
			if tt.want == "json" {
				assert.Equal(t, "[\n  \"--- base\",\n  \"+++ working\",\n  \"@@ -1,0 +1,1 @@\",\n  \"+Document.a=1\"\n]\n", out.String())
			} else {
				assert.Equal(t, "- Document.a=1\n", out.String())
			}
		})
	}
}
