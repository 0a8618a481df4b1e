// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package covlay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/petar-djukic/go-covlay/internal/classify"
	"github.com/petar-djukic/go-covlay/internal/coverage"
	"github.com/petar-djukic/go-covlay/internal/formatter"
	"github.com/petar-djukic/go-covlay/internal/host"
	"github.com/petar-djukic/go-covlay/internal/overlay"
	"github.com/petar-djukic/go-covlay/pkg/types"
)

// New validates the config, loads coverage and returns an Overlay with no
// files open.
func New(cfg Config) (Overlay, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	applyDefaults(&cfg)

	a := &overlayAdapter{
		workspace: host.NewWorkspace(),
		terminal:  host.NewTerminal(cfg.Color),
	}

	if cfg.Watch {
		w, err := coverage.NewWatcher(cfg.CoveragePath, cfg.Root, cfg.Logger)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCoverageLoad, err)
		}
		a.provider, a.watcher = w, w
	} else {
		m, err := coverage.Load(cfg.CoveragePath, cfg.Root)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCoverageLoad, err)
		}
		a.provider = m
	}

	ctrl, err := overlay.New(overlay.Config{
		Enabled:     cfg.Enabled,
		Formatter:   formatter.Variant(cfg.Formatter),
		Settings:    cfg.Settings,
		InstallRoot: cfg.InstallRoot,
	}, overlay.Deps{
		Provider: a.provider,
		Registry: a.workspace,
		Surface:  a.terminal,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	a.ctrl = ctrl

	cfg.Logger.Debug("overlay ready", "coverage", cfg.CoveragePath, "root", cfg.Root, "formatter", cfg.Formatter)
	return a, nil
}

// overlayAdapter adapts internal/overlay.Controller and the terminal host
// to the public Overlay interface.
type overlayAdapter struct {
	ctrl      *overlay.Controller
	provider  coverage.Provider
	watcher   *coverage.Watcher
	workspace *host.Workspace
	terminal  *host.Terminal
}

func (a *overlayAdapter) Enabled() bool                 { return a.ctrl.Enabled() }
func (a *overlayAdapter) SetEnabled(enabled bool) error { return a.ctrl.SetEnabled(enabled) }
func (a *overlayAdapter) Toggle() error                 { return a.ctrl.Toggle() }
func (a *overlayAdapter) Refresh() error                { return a.ctrl.UpdateVisibleEditors() }
func (a *overlayAdapter) Close() error                  { return a.ctrl.Close() }

func (a *overlayAdapter) Open(paths ...string) error {
	if err := a.workspace.Open(paths...); err != nil {
		return err
	}
	return a.ctrl.UpdateVisibleEditors()
}

func (a *overlayAdapter) Render(w io.Writer) error {
	for _, doc := range a.workspace.VisibleDocuments() {
		fd, ok := doc.(*host.FileDocument)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "==> %s <==\n", fd.FilePath()); err != nil {
			return err
		}
		if err := a.terminal.Render(w, fd); err != nil {
			return err
		}
	}
	return nil
}

func (a *overlayAdapter) Summaries() ([]types.Summary, error) {
	out := make([]types.Summary, 0)
	for _, doc := range a.workspace.VisibleDocuments() {
		if !doc.IsRealFile() {
			continue
		}
		cov, ok := a.provider.FileCoverage(doc.FilePath())
		if !ok {
			continue
		}
		ranges, err := classify.Classify(doc.LineCount(), cov)
		if err != nil {
			return out, fmt.Errorf("classifying %s: %w", doc.FilePath(), err)
		}
		out = append(out, classify.Summarize(doc.FilePath(), ranges))
	}
	return out, nil
}

func (a *overlayAdapter) Watch(ctx context.Context, onChange func()) error {
	if a.watcher == nil {
		return ErrNotWatching
	}
	return a.watcher.Run(ctx, onChange)
}

// validateConfig checks that required fields are present.
func validateConfig(cfg Config) error {
	if cfg.CoveragePath == "" {
		return fmt.Errorf("CoveragePath is required")
	}
	if info, err := os.Stat(cfg.CoveragePath); err != nil || info.IsDir() {
		return fmt.Errorf("CoveragePath %q does not exist or is a directory", cfg.CoveragePath)
	}
	if cfg.Root != "" {
		if info, err := os.Stat(cfg.Root); err != nil || !info.IsDir() {
			return fmt.Errorf("Root %q does not exist or is not a directory", cfg.Root)
		}
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Root == "" {
		dir := filepath.Dir(cfg.CoveragePath)
		if root, err := coverage.RepoRoot(dir); err == nil {
			cfg.Root = root
		} else if abs, err := filepath.Abs(dir); err == nil {
			cfg.Root = abs
		} else {
			cfg.Root = dir
		}
	}
	if cfg.InstallRoot == "" {
		if exe, err := os.Executable(); err == nil {
			cfg.InstallRoot = filepath.Dir(exe)
		}
	}
}
