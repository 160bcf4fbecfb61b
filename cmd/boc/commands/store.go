// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/boc/cmd/boc/cli"
	"github.com/bureau-foundation/boc/lib/bocstore"
	"github.com/bureau-foundation/boc/lib/config"
)

func storeCommand(stdio cli.IO) *cli.Command {
	return &cli.Command{
		Name:    "store",
		Summary: "Keep cell graphs in a content-addressed store",
		Description: `Manage the local container store.

Graphs are addressed by the structural digest of their root, so the
same content is stored once however it was laid out. Each graph can be
named by its full digest or by its short reference (boc-<12 hex>).

The store directory, blob compression and cache size come from the
store section of the configuration.`,
		Subcommands: []*cli.Command{
			storePutCommand(stdio),
			storeGetCommand(stdio),
			storeStatCommand(stdio),
		},
	}
}

func openStore(cfg *config.Config, logger *slog.Logger) (*bocstore.Store, error) {
	store, err := bocstore.Open(cfg.Store.Root, bocstore.Options{
		Compression: cfg.Store.Compression,
		CacheSize:   cfg.Store.CacheSize,
		Limits:      cfg.DecodeLimits(),
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", cfg.Store.Root, err)
	}
	return store, nil
}

type storePutParams struct {
	commonParams
	cli.BinaryInput
	cli.JSONOutput
}

func storePutCommand(stdio cli.IO) *cli.Command {
	var params storePutParams

	return &cli.Command{
		Name:    "put",
		Summary: "Store every root of a container",
		Usage:   "boc store put [flags] [file]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("store put", &params)
		},
		Run: func(args []string) error {
			path, err := singleArg(args)
			if err != nil {
				return err
			}
			cfg, logger, err := params.load(stdio, "store/put")
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
			store, err := openStore(cfg, logger)
			if err != nil {
				return err
			}

			records, err := store.Import(data)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(stdio.Out, records); done {
				return err
			}
			for _, record := range records {
				fmt.Fprintf(stdio.Out, "%s %s\n", record.Ref, record.Hash)
			}
			return nil
		},
		Examples: []cli.Example{
			{
				Description: "Store a container file",
				Command:     "boc store put wallet.boc",
			},
		},
	}
}

type storeGetParams struct {
	commonParams
	Output string `json:"output" flag:"output,o" desc:"output encoding: raw, hex or base64" default:"raw"`
}

func storeGetCommand(stdio cli.IO) *cli.Command {
	var params storeGetParams

	return &cli.Command{
		Name:    "get",
		Summary: "Write a stored graph as a container",
		Description: `Write the canonical container of a stored graph: one root, content
deduplicated cells, no index table and a CRC-32C trailer.`,
		Usage: "boc store get [flags] <ref>",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("store get", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one reference, got %d", len(args))
			}
			cfg, logger, err := params.load(stdio, "store/get")
			if err != nil {
				return err
			}
			output, err := cli.ParseEncoding(params.Output)
			if err != nil {
				return err
			}
			store, err := openStore(cfg, logger)
			if err != nil {
				return err
			}

			hash, err := store.Resolve(args[0])
			if err != nil {
				return err
			}
			data, err := store.Get(hash)
			if err != nil {
				return err
			}
			return cli.WriteOutput(stdio.Out, data, output)
		},
	}
}

type storeStatParams struct {
	commonParams
	cli.JSONOutput
}

func storeStatCommand(stdio cli.IO) *cli.Command {
	var params storeStatParams

	return &cli.Command{
		Name:    "stat",
		Summary: "Show the record of a stored graph",
		Description: `Print the metadata recorded when a graph was stored. Exits with
status 1 without an error message when the reference is not in the
store.`,
		Usage: "boc store stat [flags] <ref>",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("store stat", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one reference, got %d", len(args))
			}
			cfg, logger, err := params.load(stdio, "store/stat")
			if err != nil {
				return err
			}
			store, err := openStore(cfg, logger)
			if err != nil {
				return err
			}

			hash, err := store.Resolve(args[0])
			if errors.Is(err, bocstore.ErrNotFound) {
				fmt.Fprintf(stdio.Err, "%s: not found\n", args[0])
				return &cli.ExitError{Code: 1}
			}
			if err != nil {
				return err
			}
			record, err := store.Stat(hash)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(stdio.Out, record); done {
				return err
			}
			tw := tabwriter.NewWriter(stdio.Out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "ref:\t%s\n", record.Ref)
			fmt.Fprintf(tw, "hash:\t%s\n", record.Hash)
			fmt.Fprintf(tw, "cells:\t%d\n", record.Cells)
			fmt.Fprintf(tw, "size:\t%d bytes\n", record.Size)
			fmt.Fprintf(tw, "stored:\t%d bytes (%s)\n", record.StoredSize, record.Compression)
			fmt.Fprintf(tw, "created:\t%s\n", record.CreatedAt.Format(time.RFC3339))
			return tw.Flush()
		},
	}
}
