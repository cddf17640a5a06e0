// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewGlobalFlags returns the flags shared by the document commands. When
// params carries the command name and the config file path, string flags
// also read ns.flag and flag from that file.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	stringFlags := []*cli.StringFlag{
		{
			Name:    "exclude",
			Aliases: []string{"x"},
			Usage:   "comma-separated list of property names to leave out",
		},
		{
			Name:  "format",
			Usage: "document format, one of auto, json, yaml or hcl",
			Value: "auto",
			Validator: func(value string) error {
				return FlagValidators(value, FormatValidator)
			},
		},
		{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		{
			Name:    "select",
			Aliases: []string{"s"},
			Usage:   "path of the part of each document to use, such as spec.containers[0]",
		},
		{
			Name:  "aws-profile",
			Usage: "shared config profile for s3:// documents",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AWS_PROFILE"),
			),
		},
		{
			Name:  "aws-region",
			Usage: "region for s3:// documents",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AWS_REGION"),
			),
		},
		{
			Name:  "s3-endpoint",
			Usage: "S3 compatible endpoint for s3:// documents",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("GRAPHDIFF_S3_ENDPOINT"),
			),
		},
	}

	for _, f := range stringFlags {
		flags = append(flags, namespaced(f, params...))
	}

	flags = append(flags, &cli.BoolFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "enable colored text output",
		Value:   false,
	})

	return
}

// NewLabelFlags returns the --base-label and --working-label flags of diff.
func NewLabelFlags(params ...string) []cli.Flag {
	return []cli.Flag{
		namespaced(&cli.StringFlag{
			Name:  "base-label",
			Usage: "name of the base document in the diff header",
		}, params...),
		namespaced(&cli.StringFlag{
			Name:  "working-label",
			Usage: "name of the working document in the diff header",
		}, params...),
	}
}

func namespaced(flag *cli.StringFlag, params ...string) *cli.StringFlag {
	if len(params) == 2 && params[1] != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}
	return flag
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
