// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger writing to w. When w is
// a terminal, uses slog.TextHandler for human-readable output; when it
// is piped or redirected, uses slog.JSONHandler. verbose lowers the
// level from info to debug.
//
// Callers scope the logger with command-specific context via With():
//
//	logger := cli.NewCommandLogger(stdio.Err, params.Verbose).With(
//	    "command", "store/put",
//	)
func NewCommandLogger(w io.Writer, verbose bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		options.Level = slog.LevelDebug
	}
	var handler slog.Handler
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}
