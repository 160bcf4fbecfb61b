// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/boc/cmd/boc/cli"
	"github.com/bureau-foundation/boc/lib/boc"
)

type reencodeParams struct {
	commonParams
	cli.BinaryInput
	serializeParams
	Root int `json:"root" flag:"root" desc:"index of the root to keep"`
}

func reencodeCommand(stdio cli.IO) *cli.Command {
	var params reencodeParams

	return &cli.Command{
		Name:    "reencode",
		Summary: "Decode a container and serialize it again",
		Description: `Decode a container and write the graph under one of its roots as a new
single-root container with the generic magic, minimal field widths
and the selected options.

Legacy containers are converted to the generic format this way.`,
		Usage: "boc reencode [flags] [file]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("reencode", &params)
		},
		Run: func(args []string) error {
			path, err := singleArg(args)
			if err != nil {
				return err
			}
			cfg, logger, err := params.load(stdio, "reencode")
			if err != nil {
				return err
			}
			encoding, err := params.Encoding()
			if err != nil {
				return err
			}
			output, err := cli.ParseEncoding(params.Output)
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
			reencoded, err := boc.SerializeWithOptions(root, params.options(cfg))
			if err != nil {
				return err
			}
			logger.Debug("re-encoded container", "input_bytes", len(data), "output_bytes", len(reencoded))
			return cli.WriteOutput(stdio.Out, reencoded, output)
		},
		Examples: []cli.Example{
			{
				Description: "Strip the index and checksum from a container",
				Command:     "boc reencode --no-index --no-crc in.boc > out.boc",
			},
		},
	}
}
