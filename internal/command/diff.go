// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/graphdiff/internal/log"
	"github.com/tfctl/graphdiff/internal/meta"
	"github.com/tfctl/graphdiff/internal/source"
)

// diffCommandAction is the action handler for the "diff" subcommand. It
// prints the unified diff turning BASE into WORKING.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()

	// -none parses as a flag, so it stands in for BASE.
	if cmd.Bool("none") {
		args = append([]string{source.None}, args...)
	}
	if len(args) != 2 {
		return fmt.Errorf("diff requires BASE and WORKING, got %d argument(s)", len(args))
	}
	baseRef, workingRef := args[0], args[1]

	m := metaOf(cmd)
	loader := newLoader(cmd, m)

	base, err := loadDocument(ctx, cmd, loader, baseRef)
	if err != nil {
		return fmt.Errorf("failed to load base: %w", err)
	}
	working, err := loadDocument(ctx, cmd, loader, workingRef)
	if err != nil {
		return fmt.Errorf("failed to load working: %w", err)
	}
	if working == nil {
		return fmt.Errorf("working document cannot be %s", source.None)
	}

	d, err := newDiffer(cmd, diffLabel(cmd, "base-label", baseRef), diffLabel(cmd, "working-label", workingRef))
	if err != nil {
		return err
	}

	lines, err := d.Diff(base, working)
	if err != nil {
		return err
	}
	log.Debugf("diff: %d lines", len(lines))

	return emit(cmd, m, lines)
}

// diffLabel returns the label flag when set, otherwise the document
// reference. Stdin and None keep the default label.
func diffLabel(cmd *cli.Command, flag, ref string) string {
	if label := cmd.String(flag); label != "" {
		return label
	}
	if ref == source.Stdin || ref == source.None {
		return ""
	}
	return ref
}

func diffCommandBuilder(m meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "diff",
		Usage:     "diff two documents",
		UsageText: "graphdiff diff BASE WORKING [options]\n   graphdiff diff -none WORKING [options]",
		Flags: append(NewLabelFlags("diff", m.Config.Source), &cli.BoolFlag{
			Name:  "none",
			Usage: "diff against a base that does not exist yet",
		}),
		Action: diffCommandAction,
		Meta:   m,
	}).Build()
}
