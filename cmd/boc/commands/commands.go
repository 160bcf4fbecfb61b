// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the boc command tree.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/boc/cmd/boc/cli"
	"github.com/bureau-foundation/boc/lib/config"
)

// Root builds the complete command tree writing through stdio.
func Root(stdio cli.IO) *cli.Command {
	return &cli.Command{
		Name: "boc",
		Description: `boc: Bag of Cells container tools.

Inspect, decode, build and re-encode serialized cell graphs, and keep
them in a local content-addressed store.

Settings are read from the YAML file given by --config, else the file
named by BOC_CONFIG, else built-in defaults.`,
		Help: stdio.Err,
		Subcommands: []*cli.Command{
			inspectCommand(stdio),
			decodeCommand(stdio),
			encodeCommand(stdio),
			reencodeCommand(stdio),
			storeCommand(stdio),
			versionCommand(stdio),
		},
	}
}

// commonParams are the flags every command that reads configuration
// carries.
type commonParams struct {
	ConfigPath string `json:"-" flag:"config" desc:"path to boc.yaml (default: $BOC_CONFIG)"`
	Verbose    bool   `json:"-" flag:"verbose,v" desc:"log debug output to stderr"`
}

// load resolves the configuration and a logger scoped to command.
func (p *commonParams) load(stdio cli.IO, command string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Resolve(p.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	logger := cli.NewCommandLogger(stdio.Err, p.Verbose).With("command", command)
	return cfg, logger, nil
}

// singleArg returns the optional positional file argument.
func singleArg(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("expected at most one file argument, got %d", len(args))
	}
}
