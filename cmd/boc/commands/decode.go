// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/boc/cmd/boc/cli"
	"github.com/bureau-foundation/boc/lib/boc"
	"github.com/bureau-foundation/boc/lib/celldoc"
)

type decodeParams struct {
	commonParams
	cli.BinaryInput
	Format string `json:"format" flag:"format,f" desc:"document format: json, yaml, cbor or text" default:"json"`
	Root   int    `json:"root"   flag:"root"     desc:"index of the root to decode"`
}

func decodeCommand(stdio cli.IO) *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Decode a container into a cell document",
		Description: `Decode a serialized container and print the graph under one of its
roots as a cell document: the cells in order, each with its bits in
hex text form and the positions of the cells it references.

The document can be edited and turned back into a container with
"boc encode".`,
		Usage: "boc decode [flags] [file]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("decode", &params)
		},
		Run: func(args []string) error {
			path, err := singleArg(args)
			if err != nil {
				return err
			}
			cfg, logger, err := params.load(stdio, "decode")
			if err != nil {
				return err
			}
			format, err := celldoc.ParseFormat(params.Format)
			if err != nil {
				return err
			}
			encoding, err := params.Encoding()
			if err != nil {
				return err
			}
			data, err := cli.ReadInput(stdio.In, path, encoding)
			if err != nil {
				return err
			}

			root, err := selectRoot(data, cfg.DecodeLimits(), params.Root)
			if err != nil {
				return err
			}
			document, err := celldoc.FromCell(root)
			if err != nil {
				return err
			}
			logger.Debug("decoded container", "cells", len(document.Cells), "format", string(format))
			return document.Encode(stdio.Out, format)
		},
		Examples: []cli.Example{
			{
				Description: "Decode a container to JSON",
				Command:     "boc decode wallet.boc",
			},
			{
				Description: "Decode the second root as YAML",
				Command:     "boc decode --root 1 -f yaml multi.boc",
			},
		},
	}
}

// selectRoot decodes data and returns root number index.
func selectRoot(data []byte, limits boc.Limits, index int) (*boc.Cell, error) {
	roots, err := boc.DeserializeWithLimits(data, limits)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(roots) {
		return nil, fmt.Errorf("root %d out of range: container has %d roots", index, len(roots))
	}
	return roots[index], nil
}
