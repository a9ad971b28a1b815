// Copyright (C) 2024 nsfisis. All Rights Reserved.

// Program reparojson validates JSON from a file or stdin, repairs comma
// placement, and writes the result to stdout.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nsfisis/reparojson"
	"github.com/spf13/cobra"
)

// Exit codes reported by the tool.
const (
	exitValid    = 0 // input was valid, or repaired with --quiet
	exitRepaired = 1 // input was repaired
	exitSyntax   = 2 // input was not repairable JSON
	exitIO       = 3 // a read or write failed
)

func main() {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "reparojson [FILE]",
		Short: "Validate JSON and repair comma placement",
		Long: `Validate the JSON read from FILE (default: stdin) and write it to stdout.

Valid input is echoed byte-for-byte. A missing comma between two array
elements or object members is inserted, and a trailing comma before a
closing bracket is dropped; everything else, including whitespace, is
preserved exactly. Any other defect is reported as an error.

Exit status is 0 for valid input, 1 if the input was repaired (0 with
--quiet), 2 for a syntax error, and 3 for an I/O error.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			os.Exit(run(path, quiet))
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false,
		"successfully exit if the input JSON is repaired")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitIO)
	}
}

func run(path string, quiet bool) int {
	in, err := openInput(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIO
	}
	defer in.Close()

	out := bufio.NewWriter(os.Stdout)
	res, rerr := reparojson.Repair(in, out)
	if err := out.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIO
	}

	if rerr != nil {
		fmt.Fprintln(os.Stderr, rerr)
		var serr *reparojson.SyntaxError
		if errors.As(rerr, &serr) {
			return exitSyntax
		}
		return exitIO
	}
	if res == reparojson.Repaired && !quiet {
		return exitRepaired
	}
	return exitValid
}

// openInput opens path for reading. An empty path or "-" means stdin.
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
