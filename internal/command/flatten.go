// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/graphdiff/internal/meta"
	"github.com/tfctl/graphdiff/internal/source"
)

// flattenCommandAction is the action handler for the "flatten" subcommand.
// It prints the sorted path=value lines of DOC.
func flattenCommandAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("flatten requires DOC, got %d argument(s)", len(args))
	}

	m := metaOf(cmd)
	doc, err := loadDocument(ctx, cmd, newLoader(cmd, m), args[0])
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("cannot flatten %s", source.None)
	}

	d, err := newDiffer(cmd, "", "")
	if err != nil {
		return err
	}

	lines, err := d.Flatten(doc)
	if err != nil {
		return err
	}

	return emit(cmd, m, lines)
}

func flattenCommandBuilder(m meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "flatten",
		Usage:     "print the flattened document",
		UsageText: "graphdiff flatten DOC [options]",
		Action:    flattenCommandAction,
		Meta:      m,
	}).Build()
}
