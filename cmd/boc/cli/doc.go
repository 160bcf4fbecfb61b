// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the boc binary: a tree of
// [Command] values dispatched by name, flags bound from tagged param
// structs, typo suggestions for unknown commands and flags, JSON
// output, and reading container bytes from a file or stdin in raw,
// hex or base64 form.
//
// Commands write through an [IO] rather than the process streams so
// the whole tree can be exercised in tests with in-memory buffers.
package cli
