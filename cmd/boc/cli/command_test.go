// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "boc",
		Subcommands: []*Command{
			{
				Name: "store",
				Subcommands: []*Command{
					{
						Name: "put",
						Run: func(args []string) error {
							called = "store put"
							receivedArgs = args
							return nil
						},
					},
				},
			},
			{
				Name: "version",
				Run: func(args []string) error {
					called = "version"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"store", "put", "a.boc"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "store put" {
		t.Errorf("dispatched to %q, want %q", called, "store put")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "a.boc" {
		t.Errorf("args = %v, want [a.boc]", receivedArgs)
	}
}

func TestCommand_Execute_UnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name: "boc",
		Subcommands: []*Command{
			{Name: "decode", Run: func([]string) error { return nil }},
			{Name: "inspect", Run: func([]string) error { return nil }},
		},
	}

	err := root.Execute([]string{"decdoe"})
	if err == nil {
		t.Fatal("Execute() should fail for an unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "decode"`) {
		t.Errorf("error = %q, want a suggestion for decode", err)
	}

	err = root.Execute([]string{"zzzzzzzzzz"})
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %v, want no suggestion", err)
	}
}

func TestCommand_Execute_ParsesFlags(t *testing.T) {
	var params struct {
		Format string `flag:"format,f" desc:"output format" default:"json"`
		Root   int    `flag:"root" desc:"root index"`
	}
	var receivedArgs []string

	command := &Command{
		Name: "decode",
		Flags: func() *pflag.FlagSet {
			return FlagsFromParams("decode", &params)
		},
		Run: func(args []string) error {
			receivedArgs = args
			return nil
		},
	}

	if err := command.Execute([]string{"-f", "yaml", "--root=2", "input.boc"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if params.Format != "yaml" || params.Root != 2 {
		t.Errorf("params = %+v, want format yaml root 2", params)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "input.boc" {
		t.Errorf("args = %v, want [input.boc]", receivedArgs)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	var params struct {
		Format string `flag:"format" desc:"output format"`
	}
	command := &Command{
		Name: "decode",
		Flags: func() *pflag.FlagSet {
			return FlagsFromParams("decode", &params)
		},
		Run: func([]string) error { return nil },
	}

	err := command.Execute([]string{"--fromat", "yaml"})
	if err == nil {
		t.Fatal("Execute() should fail for an unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --format?") {
		t.Errorf("error = %q, want a suggestion for --format", err)
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:        "boc",
		Description: "Bag of Cells tools.",
		Help:        &help,
		Subcommands: []*Command{
			{Name: "inspect", Summary: "Show a container header", Run: func([]string) error { return nil }},
		},
		Examples: []Example{{Description: "Inspect a file", Command: "boc inspect a.boc"}},
	}

	if err := root.Execute([]string{"--help"}); err != nil {
		t.Fatalf("Execute(--help) error: %v", err)
	}
	output := help.String()
	for _, want := range []string{
		"Bag of Cells tools.",
		"Usage:\n  boc <command> [flags]",
		"inspect",
		"Show a container header",
		"# Inspect a file",
		"Run 'boc <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name: "store",
		Help: &help,
		Subcommands: []*Command{
			{Name: "put", Run: func([]string) error { return nil }},
		},
	}
	if err := root.Execute(nil); err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("Execute() error = %v, want subcommand required", err)
	}
	if help.Len() == 0 {
		t.Error("help should be printed when a subcommand is missing")
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"abc", "", 3},
		{"decode", "decode", 0},
		{"decdoe", "decode", 2},
		{"stor", "store", 1},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
