// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"io"
	"os"

	"github.com/tfctl/graphdiff/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, and the streams documents are read from and
// results written to.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	Stdin   io.Reader
	Stdout  io.Writer
}

// Out returns the writer for command results, defaulting to os.Stdout.
func (m Meta) Out() io.Writer {
	if m.Stdout == nil {
		return os.Stdout
	}
	return m.Stdout
}

// In returns the reader for the "-" document, defaulting to os.Stdin.
func (m Meta) In() io.Reader {
	if m.Stdin == nil {
		return os.Stdin
	}
	return m.Stdin
}
