// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/graphdiff/internal/config"
)

// Format is an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the accepted output formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat validates an output format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("must be one of %v", Formats)
}

// Options controls Emit.
type Options struct {
	Format Format
	Color  bool
}

// Emit writes lines to w in the requested format. Colour only applies to
// text.
func Emit(w io.Writer, lines []string, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		if lines == nil {
			lines = []string{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(lines)
	case FormatYAML:
		if len(lines) == 0 {
			_, err := io.WriteString(w, "[]\n")
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(lines); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return emitText(w, lines, opts.Color)
	}
	return fmt.Errorf("unknown output format %q", opts.Format)
}

func emitText(w io.Writer, lines []string, color bool) error {
	var p *palette
	if color {
		p = newPalette(w)
	}

	for _, line := range lines {
		if p != nil {
			line = p.style(line).Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

type palette struct {
	header, hunk, removed, added, plain lipgloss.Style
}

// newPalette builds styles rendering to w. Colours are forced on because the
// caller asked for them, even when w is not a terminal.
func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.TrueColor)
	dark := r.HasDarkBackground()

	pick := func(key, light, darkValue string) lipgloss.Color {
		if c, err := config.GetString("colors." + key); err == nil && c != "" {
			return lipgloss.Color(c)
		}
		if dark {
			return lipgloss.Color(darkValue)
		}
		return lipgloss.Color(light)
	}

	return &palette{
		header:  r.NewStyle().Bold(true),
		hunk:    r.NewStyle().Foreground(pick("hunk", "#0088a0", "#00c8f0")),
		removed: r.NewStyle().Foreground(pick("removed", "#b31d28", "#ff6b6b")),
		added:   r.NewStyle().Foreground(pick("added", "#22863a", "#7ee787")),
		plain:   r.NewStyle(),
	}
}

func (p *palette) style(line string) lipgloss.Style {
	switch {
	case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
		return p.header
	case strings.HasPrefix(line, "@@ "):
		return p.hunk
	case strings.HasPrefix(line, "-"):
		return p.removed
	case strings.HasPrefix(line, "+"):
		return p.added
	}
	return p.plain
}

// ColorWanted reports whether text output should be coloured: always when
// forced, otherwise when f is a terminal and NO_COLOR is unset.
func ColorWanted(forced bool, f *os.File) bool {
	if forced {
		return true
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}
