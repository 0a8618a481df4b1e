// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/go-covlay/pkg/covlay"
)

// newWatchCmd creates the "watch" command.
func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <path>...",
		Short: "Re-print files whenever the coverage file changes",
		Long: `Watch prints the files, then prints them again each time the coverage
file is rewritten. Commands read from stdin: toggle, enable, disable, quit.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ov, err := newOverlay(true, true, args)
			if err != nil {
				return err
			}
			defer ov.Close()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			return runWatch(ctx, ov, os.Stdin, os.Stdout)
		},
	}
}

// runWatch drives ov from coverage changes and stdin commands. Events are
// handled one at a time on the calling goroutine.
func runWatch(ctx context.Context, ov covlay.Overlay, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	changed := make(chan struct{}, 1)
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- ov.Watch(ctx, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	commands := make(chan string)
	go func() {
		defer close(commands)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case commands <- strings.TrimSpace(sc.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := ov.Render(out); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-watchErr:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case <-changed:
			if err := ov.Refresh(); err != nil {
				fmt.Fprintf(out, "refresh: %v\n", err)
			}
		case c, ok := <-commands:
			if !ok {
				return nil
			}
			quit, err := applyCommand(ov, c)
			if quit {
				return nil
			}
			if err != nil {
				fmt.Fprintf(out, "%v\n", err)
				continue
			}
		}
		if err := ov.Render(out); err != nil {
			return err
		}
	}
}

// applyCommand runs one stdin command against ov and reports whether the
// loop should stop.
func applyCommand(ov covlay.Overlay, c string) (bool, error) {
	switch c {
	case "quit", "q", "exit":
		return true, nil
	case "toggle", "t":
		return false, ov.Toggle()
	case "enable", "show":
		return false, ov.SetEnabled(true)
	case "disable", "hide":
		return false, ov.SetEnabled(false)
	case "", "refresh", "r":
		return false, ov.Refresh()
	default:
		return false, fmt.Errorf("unknown command %q (toggle, enable, disable, refresh, quit)", c)
	}
}
