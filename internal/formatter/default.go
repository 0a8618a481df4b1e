// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package formatter

import "github.com/petar-djukic/go-covlay/pkg/types"

// DefaultFormatter tints covered and uncovered lines across their full
// width and highlights the exact span of each untaken branch outcome.
type DefaultFormatter struct {
	decorations *decorations
}

// Verify interface compliance at compile time.
var _ Formatter = (*DefaultFormatter)(nil)

// NewDefaultFormatter creates the formatter's decoration types on surface.
func NewDefaultFormatter(surface Surface, styles SeverityStyles) *DefaultFormatter {
	return &DefaultFormatter{decorations: newDecorations(surface, []DecorationOptions{
		{
			Severity:        types.SeverityCovered,
			WholeLine:       true,
			BackgroundColor: styles.CoveredLine.BackgroundColor,
		},
		{
			Severity:        types.SeverityPartiallyCovered,
			BackgroundColor: styles.PartiallyCoveredLine.BackgroundColor,
		},
		{
			Severity:        types.SeverityUncovered,
			WholeLine:       true,
			BackgroundColor: styles.UncoveredLine.BackgroundColor,
		},
	})}
}

func (f *DefaultFormatter) Format(doc types.Document, ranges types.ClassifiedRanges) {
	f.decorations.paint(doc, ranges)
}

func (f *DefaultFormatter) Clear(doc types.Document) {
	f.decorations.clear(doc)
}

func (f *DefaultFormatter) Close() error {
	f.decorations.dispose()
	return nil
}
