// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command boc inspects, decodes, builds and stores Bag of Cells
// containers.
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/boc/cmd/boc/cli"
	"github.com/bureau-foundation/boc/cmd/boc/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that already reported their outcome return an
		// error carrying the exit code; don't print it again.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return commands.Root(cli.StandardIO()).Execute(os.Args[1:])
}
