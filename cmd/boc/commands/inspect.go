// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/boc/cmd/boc/cli"
	"github.com/bureau-foundation/boc/lib/boc"
)

type inspectParams struct {
	commonParams
	cli.BinaryInput
	cli.JSONOutput
}

type inspectResult struct {
	Magic         string        `json:"magic"`
	Format        string        `json:"format"`
	HasIndex      bool          `json:"has_index"`
	HasCRC32C     bool          `json:"has_crc32c"`
	HasCacheBits  bool          `json:"has_cache_bits"`
	SizeBytes     int           `json:"size_bytes"`
	OffsetBytes   int           `json:"offset_bytes"`
	CellCount     int           `json:"cell_count"`
	AbsentCount   int           `json:"absent_count"`
	TotalCellSize int           `json:"total_cell_size"`
	Roots         []inspectRoot `json:"roots"`
}

type inspectRoot struct {
	Cell   int      `json:"cell"`
	Digest boc.Hash `json:"digest"`
	Bits   int      `json:"bits"`
	Refs   int      `json:"refs"`
}

func inspectCommand(stdio cli.IO) *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Show the header and roots of a container",
		Description: `Parse a serialized container and print its header fields and, for
each root, the root's structural digest.

The container is read from the file argument, or stdin when it is
omitted or "-". A CRC-32C trailer, when present, is verified before
anything else is read.`,
		Usage: "boc inspect [flags] [file]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("inspect", &params)
		},
		Run: func(args []string) error {
			path, err := singleArg(args)
			if err != nil {
				return err
			}
			cfg, logger, err := params.load(stdio, "inspect")
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

			result, err := inspect(data, cfg.DecodeLimits())
			if err != nil {
				return err
			}
			logger.Debug("inspected container", "cells", result.CellCount, "roots", len(result.Roots))

			if done, err := params.EmitJSON(stdio.Out, result); done {
				return err
			}

			tw := tabwriter.NewWriter(stdio.Out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "format:\t%s (%s)\n", result.Format, result.Magic)
			fmt.Fprintf(tw, "index:\t%t\n", result.HasIndex)
			fmt.Fprintf(tw, "crc32c:\t%t\n", result.HasCRC32C)
			fmt.Fprintf(tw, "cache bits:\t%t\n", result.HasCacheBits)
			fmt.Fprintf(tw, "size bytes:\t%d\n", result.SizeBytes)
			fmt.Fprintf(tw, "offset bytes:\t%d\n", result.OffsetBytes)
			fmt.Fprintf(tw, "cells:\t%d\n", result.CellCount)
			fmt.Fprintf(tw, "absent:\t%d\n", result.AbsentCount)
			fmt.Fprintf(tw, "cell data:\t%d bytes\n", result.TotalCellSize)
			for i, root := range result.Roots {
				fmt.Fprintf(tw, "root %d:\tcell %d, %d bits, %d refs, %s\n", i, root.Cell, root.Bits, root.Refs, root.Digest)
			}
			return tw.Flush()
		},
		Examples: []cli.Example{
			{
				Description: "Inspect a container file",
				Command:     "boc inspect wallet.boc",
			},
			{
				Description: "Inspect hex from stdin as JSON",
				Command:     "echo b5ee9c72... | boc inspect --hex --json",
			},
		},
	}
}

func inspect(data []byte, limits boc.Limits) (*inspectResult, error) {
	header, err := boc.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	roots, err := boc.DeserializeWithLimits(data, limits)
	if err != nil {
		return nil, err
	}

	result := &inspectResult{
		Magic:         fmt.Sprintf("%08x", header.Magic),
		Format:        formatName(header.Magic),
		HasIndex:      header.HasIndex,
		HasCRC32C:     header.HasCRC32C,
		HasCacheBits:  header.HasCacheBits,
		SizeBytes:     header.SizeBytes,
		OffsetBytes:   header.OffsetBytes,
		CellCount:     header.CellCount,
		AbsentCount:   header.AbsentCount,
		TotalCellSize: header.TotalCellSize,
		Roots:         make([]inspectRoot, len(roots)),
	}
	for i, root := range roots {
		digest, err := boc.Digest(root)
		if err != nil {
			return nil, err
		}
		result.Roots[i] = inspectRoot{
			Cell:   header.Roots[i],
			Digest: digest,
			Bits:   root.Bits().Len(),
			Refs:   root.RefCount(),
		}
	}
	return result, nil
}

func formatName(magic uint32) string {
	switch magic {
	case boc.MagicGeneric:
		return "generic"
	case boc.MagicIndexed:
		return "legacy indexed"
	case boc.MagicIndexedCRC32C:
		return "legacy indexed with crc32c"
	default:
		return "unknown"
	}
}
