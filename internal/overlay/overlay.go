// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package overlay holds the coverage overlay's enabled state and keeps every
// visible document's markings consistent with it.
package overlay

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/petar-djukic/go-covlay/internal/classify"
	"github.com/petar-djukic/go-covlay/internal/coverage"
	"github.com/petar-djukic/go-covlay/internal/formatter"
	"github.com/petar-djukic/go-covlay/internal/host"
	"github.com/petar-djukic/go-covlay/pkg/types"
)

// DefaultEnabled is the overlay state when configuration says nothing.
const DefaultEnabled = false

// ErrMissingDependency is returned by New when a required collaborator is nil.
var ErrMissingDependency = errors.New("missing overlay dependency")

// Config selects the initial state and the formatter.
type Config struct {
	Enabled     bool              // Initial overlay state
	Formatter   formatter.Variant // Unknown values select the default formatter
	Settings    formatter.Settings
	InstallRoot string // Base for relative gutter icon paths
}

// Deps holds the controller's collaborators.
type Deps struct {
	Provider  coverage.Provider
	Registry  host.Registry
	Surface   formatter.Surface   // Where the configured formatter draws
	Formatter formatter.Formatter // Overrides Config.Formatter and Surface when set
	Logger    *slog.Logger        // Optional; defaults to slog.Default()
}

// Controller switches the overlay on and off and re-renders visible
// documents after every change. A pass runs to completion before the next
// one starts.
type Controller struct {
	mu        sync.Mutex
	enabled   bool
	formatter formatter.Formatter
	provider  coverage.Provider
	registry  host.Registry
	logger    *slog.Logger
	closed    bool
}

// New creates a controller and the formatter's decoration types. Nothing
// is rendered until the first update.
func New(cfg Config, deps Deps) (*Controller, error) {
	if deps.Provider == nil || deps.Registry == nil {
		return nil, fmt.Errorf("%w: provider and registry are required", ErrMissingDependency)
	}
	if deps.Surface == nil && deps.Formatter == nil {
		return nil, fmt.Errorf("%w: a surface or formatter is required", ErrMissingDependency)
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	f := deps.Formatter
	if f == nil {
		f = formatter.New(cfg.Formatter, deps.Surface, cfg.Settings.WithDefaults(), cfg.InstallRoot)
	}

	return &Controller{
		enabled:   cfg.Enabled,
		formatter: f,
		provider:  deps.Provider,
		registry:  deps.Registry,
		logger:    logger,
	}, nil
}

// Enabled reports whether coverage is currently shown.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// SetEnabled stores the state and immediately re-renders every visible
// document.
func (c *Controller) SetEnabled(enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
	c.logger.Debug("overlay state changed", "enabled", enabled)
	return c.updateVisibleLocked()
}

// Toggle flips the state and re-renders every visible document.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = !c.enabled
	c.logger.Debug("overlay toggled", "enabled", c.enabled)
	return c.updateVisibleLocked()
}

// UpdateVisibleEditors re-renders every visible document. A failing
// document does not stop the pass; all failures are returned joined.
func (c *Controller) UpdateVisibleEditors() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updateVisibleLocked()
}

// Update re-renders one document.
func (c *Controller) Update(doc types.Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updateLocked(doc)
}

// Close releases the formatter's decorations. Later calls are no-ops.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.formatter.Close()
}

func (c *Controller) updateVisibleLocked() error {
	var errs []error
	for _, doc := range c.registry.VisibleDocuments() {
		if err := c.updateLocked(doc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// updateLocked paints doc when enabled and coverage exists, and clears it
// when disabled. Missing coverage leaves earlier markings in place.
func (c *Controller) updateLocked(doc types.Document) error {
	if c.closed || !doc.IsRealFile() {
		return nil
	}

	if !c.enabled {
		c.formatter.Clear(doc)
		return nil
	}

	cov, ok := c.provider.FileCoverage(doc.FilePath())
	if !ok {
		c.logger.Debug("no coverage for document", "path", doc.FilePath())
		return nil
	}

	ranges, err := classify.Classify(doc.LineCount(), cov)
	if err != nil {
		return fmt.Errorf("classifying %s: %w", doc.FilePath(), err)
	}
	c.formatter.Format(doc, ranges)
	return nil
}
