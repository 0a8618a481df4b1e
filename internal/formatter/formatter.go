// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package formatter paints classified coverage ranges onto a document
// through persistent decoration types owned by a display surface.
package formatter

import (
	"github.com/petar-djukic/go-covlay/pkg/types"
)

// Variant names a formatter implementation in configuration.
type Variant string

const (
	VariantDefault Variant = "DefaultFormatter" // Whole-line background marking
	VariantGutter  Variant = "GutterFormatter"  // Gutter icons and ruler marks
)

// Formatter draws and clears coverage markings for one document at a time.
type Formatter interface {
	// Format replaces the document's markings with ranges.
	Format(doc types.Document, ranges types.ClassifiedRanges)
	// Clear removes every marking this formatter placed on the document.
	Clear(doc types.Document)
	// Close releases the decoration types. The formatter is unusable afterwards.
	Close() error
}

// DecorationOptions describes how one severity is drawn.
type DecorationOptions struct {
	Severity        types.Severity
	WholeLine       bool   // Stretch the style across the full line
	BackgroundColor string // CSS-style colour, empty for none
	GutterIconPath  string // Resolved icon path or URI, empty for none
	OverviewRuler   bool   // Mark the line in the overview ruler
}

// DecorationType is a persistent style handle created by a Surface.
type DecorationType interface {
	Options() DecorationOptions
	Dispose()
}

// Surface is the display host that owns decorations.
type Surface interface {
	CreateDecorationType(opts DecorationOptions) DecorationType
	// SetDecorations replaces every range drawn with dt on doc.
	SetDecorations(doc types.Document, dt DecorationType, ranges []types.Range)
}

// New builds the formatter named by variant. Unknown and empty variants
// fall back to the default formatter.
func New(variant Variant, surface Surface, settings Settings, installRoot string) Formatter {
	switch variant {
	case VariantGutter:
		return NewGutterFormatter(surface, settings.Gutter, installRoot)
	default:
		return NewDefaultFormatter(surface, settings.Default)
	}
}

// decorations holds one decoration type per severity. Both formatters
// share its paint/clear/dispose logic and differ only in options.
type decorations struct {
	surface Surface
	handles map[types.Severity]DecorationType
	closed  bool
}

func newDecorations(surface Surface, opts []DecorationOptions) *decorations {
	d := &decorations{surface: surface, handles: make(map[types.Severity]DecorationType, len(opts))}
	for _, o := range opts {
		d.handles[o.Severity] = surface.CreateDecorationType(o)
	}
	return d
}

func (d *decorations) paint(doc types.Document, ranges types.ClassifiedRanges) {
	if d.closed {
		return
	}
	for _, s := range types.Severities {
		d.surface.SetDecorations(doc, d.handles[s], ranges.Get(s))
	}
}

func (d *decorations) clear(doc types.Document) {
	if d.closed {
		return
	}
	for _, s := range types.Severities {
		d.surface.SetDecorations(doc, d.handles[s], []types.Range{})
	}
}

func (d *decorations) dispose() {
	if d.closed {
		return
	}
	d.closed = true
	for _, s := range types.Severities {
		d.handles[s].Dispose()
	}
}
