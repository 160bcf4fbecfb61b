// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the boc
// command.
//
// Configuration is loaded from a single file named by either the
// BOC_CONFIG environment variable (via [Load]) or a --config flag (via
// [LoadFile]). There is no ~/.config discovery and no automatic file
// search. [Resolve] applies that precedence and returns [Default] when
// neither is given.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded.
// No other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Store, Serialize, Limits
//   - [Default] -- returns a Config with built-in defaults
//   - [Load], [LoadFile] and [Resolve] -- the entry points for loading
package config
