// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newShowCmd creates the "show" command.
func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <path>...",
		Short: "Print files with coverage markings",
		Long:  "Show prints each file, or each source file under a directory, with a gutter glyph per line: + covered, ~ partially covered, - uncovered.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hide, _ := cmd.Flags().GetBool("hide")

			ov, err := newOverlay(!hide, false, args)
			if err != nil {
				return err
			}
			defer ov.Close()

			return ov.Render(os.Stdout)
		},
	}

	cmd.Flags().Bool("hide", false, "Print without coverage markings")

	return cmd
}

// newSummaryCmd creates the "summary" command.
func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <path>...",
		Short: "Print per-file coverage counts as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ov, err := newOverlay(false, false, args)
			if err != nil {
				return err
			}
			defer ov.Close()

			sums, err := ov.Summaries()
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(sums, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling summary: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
