// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/boc/cmd/boc/cli"
	"github.com/bureau-foundation/boc/lib/boc"
	"github.com/bureau-foundation/boc/lib/celldoc"
	"github.com/bureau-foundation/boc/lib/config"
)

// serializeParams override the configured container options.
type serializeParams struct {
	Output  string `json:"output"   flag:"output,o" desc:"output encoding: raw, hex or base64" default:"raw"`
	NoIndex bool   `json:"no_index" flag:"no-index" desc:"omit the cell index table"`
	NoCRC   bool   `json:"no_crc"   flag:"no-crc"   desc:"omit the CRC-32C trailer"`
	Dedup   bool   `json:"dedup"    flag:"dedup"    desc:"merge structurally equal cells"`
}

func (p *serializeParams) options(cfg *config.Config) boc.SerializeOptions {
	options := cfg.SerializeOptions()
	if p.NoIndex {
		options.Index = false
	}
	if p.NoCRC {
		options.CRC32C = false
	}
	if p.Dedup {
		options.DedupContent = true
	}
	return options
}

type encodeParams struct {
	commonParams
	serializeParams
	Format string `json:"format" flag:"format,f" desc:"document format: json, yaml or cbor (default: from the file extension, else json)"`
}

func encodeCommand(stdio cli.IO) *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Build a container from a cell document",
		Description: `Read a cell document (as printed by "boc decode") and serialize the
graph it describes into a container.

JSON documents may contain comments and trailing commas. Container
options default to the configuration and can be overridden per run.`,
		Usage: "boc encode [flags] [file]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("encode", &params)
		},
		Run: func(args []string) error {
			path, err := singleArg(args)
			if err != nil {
				return err
			}
			cfg, logger, err := params.load(stdio, "encode")
			if err != nil {
				return err
			}
			format, err := documentFormat(params.Format, path)
			if err != nil {
				return err
			}
			output, err := cli.ParseEncoding(params.Output)
			if err != nil {
				return err
			}
			input, err := cli.ReadInput(stdio.In, path, cli.Raw)
			if err != nil {
				return err
			}

			document, err := celldoc.Parse(input, format)
			if err != nil {
				return err
			}
			root, err := document.Build()
			if err != nil {
				return err
			}
			options := params.options(cfg)
			data, err := boc.SerializeWithOptions(root, options)
			if err != nil {
				return err
			}
			logger.Debug("encoded container",
				"cells", len(document.Cells),
				"bytes", len(data),
				"index", options.Index,
				"crc32c", options.CRC32C,
			)
			return cli.WriteOutput(stdio.Out, data, output)
		},
		Examples: []cli.Example{
			{
				Description: "Round-trip a container through an editable document",
				Command:     "boc decode wallet.boc > wallet.json && boc encode wallet.json > wallet.boc",
			},
			{
				Description: "Encode a YAML document to hex without an index",
				Command:     "boc encode --no-index -o hex cells.yaml",
			},
		},
	}
}

// documentFormat returns the explicit format, else the one implied by
// the file extension, else JSON.
func documentFormat(explicit, path string) (celldoc.Format, error) {
	if explicit != "" {
		return celldoc.ParseFormat(explicit)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return celldoc.YAML, nil
	case ".cbor":
		return celldoc.CBOR, nil
	default:
		return celldoc.JSON, nil
	}
}
