// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/graphdiff/internal/config"
	"github.com/tfctl/graphdiff/internal/log"
	"github.com/tfctl/graphdiff/internal/meta"
)

// InitApp builds the graphdiff command tree for args, reading and writing the
// process streams.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	// The arg[1] immediately following the binary (arg[0]) is the graphdiff
	// subcommand and also the namespace key for config values. arg[1] could
	// be -h/--help, so ignore it if it appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	config.Config.Namespace = ns
	cfg, err := config.Load()
	if err != nil {
		// A missing config file is normal. Everything has a default.
		log.Debugf("config not loaded: err=%v", err)
		cfg = config.Config
	}

	return NewApp(meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
	}), nil
}

// NewApp returns the root command wired to m.
func NewApp(m meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:  "graphdiff",
		Usage: "Object Graph Diff",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "graphdiff version info",
				HideDefault: true,
			},
		},
		Writer: m.Out(),
	}

	app.Commands = append(app.Commands,
		diffCommandBuilder(m),
		flattenCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}
