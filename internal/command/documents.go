// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/graphdiff/internal/aws"
	"github.com/tfctl/graphdiff/internal/config"
	"github.com/tfctl/graphdiff/internal/differ"
	"github.com/tfctl/graphdiff/internal/document"
	"github.com/tfctl/graphdiff/internal/log"
	"github.com/tfctl/graphdiff/internal/meta"
	"github.com/tfctl/graphdiff/internal/output"
	"github.com/tfctl/graphdiff/internal/source"
)

// newLoader returns a source.Loader reading stdin from m and building its S3
// client from the aws-* flags on first use.
func newLoader(cmd *cli.Command, m meta.Meta) source.Loader {
	return source.Loader{
		Stdin: m.In(),
		S3: func(ctx context.Context) (aws.ObjectGetter, error) {
			cfg, err := aws.LoadConfig(ctx,
				aws.WithProfile(cmd.String("aws-profile")),
				aws.WithRegion(cmd.String("aws-region")),
			)
			if err != nil {
				return nil, fmt.Errorf("failed to load aws config: %w", err)
			}

			var optFns []func(*s3v2.Options)
			if endpoint := cmd.String("s3-endpoint"); endpoint != "" {
				optFns = append(optFns, aws.WithS3BaseEndpoint(endpoint))
			}
			return aws.NewS3(cfg, optFns...), nil
		},
	}
}

// loadDocument reads, decodes, selects and prunes the document ref names. It
// returns nil for source.None.
func loadDocument(ctx context.Context, cmd *cli.Command, loader source.Loader, ref string) (any, error) {
	src, err := loader.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, nil
	}

	format, err := document.ParseFormat(cmd.String("format"))
	if err != nil {
		return nil, err
	}

	doc, err := document.Decode(src.Name, src.Data, format)
	if err != nil {
		return nil, err
	}

	if path := cmd.String("select"); path != "" {
		if doc, err = document.Select(doc, path); err != nil {
			return nil, fmt.Errorf("%s: %w", src.Name, err)
		}
	}

	return document.Prune(doc, excludes(cmd)...), nil
}

// excludes returns the --exclude names, falling back to the exclude list in
// the config file.
func excludes(cmd *cli.Command) []string {
	var names []string
	if spec := cmd.String("exclude"); spec != "" {
		names = strings.Split(spec, ",")
	} else {
		names, _ = config.GetStringSlice("exclude", nil)
	}

	var trimmed []string
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			trimmed = append(trimmed, name)
		}
	}
	log.Debugf("excludes: %v", trimmed)
	return trimmed
}

// newDiffer builds the document differ with the given header labels.
func newDiffer(cmd *cli.Command, baseLabel, workingLabel string) (*differ.Differ, error) {
	cfg := differ.NewConfiguration().
		UseBaseLabel(baseLabel).
		UseWorkingLabel(workingLabel)
	for _, name := range excludes(cmd) {
		cfg = cfg.ExcludeProperty(name)
	}
	return differ.New(document.Configuration(cfg))
}

// emit writes lines in the --output format.
func emit(cmd *cli.Command, m meta.Meta, lines []string) error {
	format, err := output.ParseFormat(cmd.String("output"))
	if err != nil {
		return err
	}

	var tty *os.File
	if f, ok := m.Out().(*os.File); ok {
		tty = f
	}

	return output.Emit(m.Out(), lines, output.Options{
		Format: format,
		Color:  format == output.FormatText && output.ColorWanted(cmd.Bool("color"), tty),
	})
}
