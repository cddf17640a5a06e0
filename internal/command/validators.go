// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/graphdiff/internal/document"
	"github.com/tfctl/graphdiff/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks flag combinations a single flag validator
// cannot see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Bool("color") && c.String("output") != string(output.FormatText) {
		return fmt.Errorf("--color only applies to text output")
	}
	return nil
}

func OutputValidator(value any) error {
	s, _ := value.(string)
	_, err := output.ParseFormat(s)
	return err
}

func FormatValidator(value any) error {
	s, _ := value.(string)
	_, err := document.ParseFormat(s)
	return err
}
