// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/petar-djukic/go-covlay/pkg/covlay"
)

// newDiffCmd creates the "diff" command.
func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old-coverage> <new-coverage> <path>...",
		Short: "Show lines whose coverage changed between two runs",
		Long:  "Diff renders the files under both coverage files without colour and prints a line diff of the two renderings.",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromViper()
			if err != nil {
				return err
			}
			cfg.Enabled = true
			cfg.Color = false

			before, err := renderWith(cfg, args[0], args[2:])
			if err != nil {
				return err
			}
			after, err := renderWith(cfg, args[1], args[2:])
			if err != nil {
				return err
			}

			fmt.Print(lineDiff(before, after))
			return nil
		},
	}
}

// renderWith renders paths using coverage read from coveragePath.
func renderWith(cfg covlay.Config, coveragePath string, paths []string) (string, error) {
	cfg.CoveragePath = coveragePath
	ov, err := covlay.New(cfg)
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", coveragePath, err)
	}
	defer ov.Close()

	if err := ov.Open(paths...); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := ov.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// lineDiff returns the lines that differ between a and b, prefixed with
// "-" for a and "+" for b. Identical inputs produce "".
func lineDiff(a, b string) string {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix + line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteString("\n")
			}
		}
	}
	return out.String()
}
