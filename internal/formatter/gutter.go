// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package formatter

import "github.com/petar-djukic/go-covlay/pkg/types"

// GutterFormatter marks each line with a gutter icon and an overview
// ruler mark, keeping backgrounds only where configured.
type GutterFormatter struct {
	decorations *decorations
}

// Verify interface compliance at compile time.
var _ Formatter = (*GutterFormatter)(nil)

// NewGutterFormatter creates the formatter's decoration types on surface.
// Icon paths are resolved against installRoot once, at construction.
func NewGutterFormatter(surface Surface, styles SeverityStyles, installRoot string) *GutterFormatter {
	opts := make([]DecorationOptions, 0, len(types.Severities))
	for _, s := range types.Severities {
		style := styles.Style(s)
		opts = append(opts, DecorationOptions{
			Severity:        s,
			WholeLine:       s != types.SeverityPartiallyCovered,
			BackgroundColor: style.BackgroundColor,
			GutterIconPath:  ResolveIconPath(installRoot, style.GutterIconPath),
			OverviewRuler:   true,
		})
	}
	return &GutterFormatter{decorations: newDecorations(surface, opts)}
}

func (f *GutterFormatter) Format(doc types.Document, ranges types.ClassifiedRanges) {
	f.decorations.paint(doc, ranges)
}

func (f *GutterFormatter) Clear(doc types.Document) {
	f.decorations.clear(doc)
}

func (f *GutterFormatter) Close() error {
	f.decorations.dispose()
	return nil
}
