// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package covlay defines the public interface for go-covlay, which overlays
// line and branch coverage onto source files shown in a terminal.
package covlay

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/petar-djukic/go-covlay/internal/formatter"
	"github.com/petar-djukic/go-covlay/pkg/types"
)

// Error types for the covlay API.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrCoverageLoad  = errors.New("failed to load coverage")
	ErrNotWatching   = errors.New("overlay was not created with Watch")
)

// Formatter variants accepted by Config.Formatter.
const (
	FormatterDefault = string(formatter.VariantDefault)
	FormatterGutter  = string(formatter.VariantGutter)
)

// Settings configures colours and gutter icons per formatter.
type Settings = formatter.Settings

// Config configures an Overlay.
type Config struct {
	CoveragePath string       // Istanbul JSON or Go cover profile (required)
	Root         string       // Base for relative coverage paths (default: git root, else the coverage file's directory)
	Formatter    string       // FormatterDefault or FormatterGutter; anything else means default
	Settings     Settings     // Colours and icons; empty fields take defaults
	InstallRoot  string       // Base for "./" icon paths (default: the executable's directory)
	Enabled      bool         // Initial overlay state (default false)
	Color        bool         // Emit ANSI backgrounds when rendering
	Watch        bool         // Reload coverage when the file changes
	Logger       *slog.Logger // Optional; defaults to slog.Default()
}

// Overlay shows coverage for a set of open files.
type Overlay interface {
	// Enabled reports whether coverage is currently shown.
	Enabled() bool
	// SetEnabled changes the state and re-renders every open file.
	SetEnabled(enabled bool) error
	// Toggle flips the state and re-renders every open file.
	Toggle() error
	// Open adds files, or source files under directories, and renders them.
	Open(paths ...string) error
	// Refresh re-renders every open file.
	Refresh() error
	// Render writes every open file with its current markings.
	Render(w io.Writer) error
	// Summaries returns per-file line counts for open files with coverage.
	Summaries() ([]types.Summary, error)
	// Watch reloads coverage on change until ctx is done, calling onChange
	// from the watcher goroutine after each reload. Requires Config.Watch.
	// Every Overlay method is safe to call from onChange while other
	// goroutines render.
	Watch(ctx context.Context, onChange func()) error
	// Close releases rendering resources.
	Close() error
}
