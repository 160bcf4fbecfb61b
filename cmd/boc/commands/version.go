// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/bureau-foundation/boc/cmd/boc/cli"
	"github.com/bureau-foundation/boc/lib/version"
)

func versionCommand(stdio cli.IO) *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(args []string) error {
			_, err := fmt.Fprintf(stdio.Out, "boc %s\n", version.Full())
			return err
		},
	}
}
