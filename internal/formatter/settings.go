// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package formatter

import (
	"path/filepath"
	"strings"

	"github.com/petar-djukic/go-covlay/pkg/types"
)

// LineStyle configures one severity.
type LineStyle struct {
	BackgroundColor string `mapstructure:"backgroundColor" json:"backgroundColor"`
	GutterIconPath  string `mapstructure:"gutterIconPath" json:"gutterIconPath"`
}

// SeverityStyles configures all three severities of one formatter.
type SeverityStyles struct {
	CoveredLine          LineStyle `mapstructure:"coveredLine" json:"coveredLine"`
	PartiallyCoveredLine LineStyle `mapstructure:"partiallyCoveredLine" json:"partiallyCoveredLine"`
	UncoveredLine        LineStyle `mapstructure:"uncoveredLine" json:"uncoveredLine"`
}

// Style returns the style for s.
func (ss SeverityStyles) Style(s types.Severity) LineStyle {
	switch s {
	case types.SeverityPartiallyCovered:
		return ss.PartiallyCoveredLine
	case types.SeverityUncovered:
		return ss.UncoveredLine
	default:
		return ss.CoveredLine
	}
}

// Settings configures every formatter variant.
type Settings struct {
	Default SeverityStyles `mapstructure:"defaultFormatter" json:"defaultFormatter"`
	Gutter  SeverityStyles `mapstructure:"gutterFormatter" json:"gutterFormatter"`
}

// DefaultSettings returns the built-in colours and icons.
func DefaultSettings() Settings {
	return Settings{
		Default: SeverityStyles{
			CoveredLine:          LineStyle{BackgroundColor: "#2f5a34"},
			PartiallyCoveredLine: LineStyle{BackgroundColor: "#6b5a1f"},
			UncoveredLine:        LineStyle{BackgroundColor: "#6e2a2a"},
		},
		Gutter: SeverityStyles{
			CoveredLine:          LineStyle{GutterIconPath: "./img/covered.svg"},
			PartiallyCoveredLine: LineStyle{BackgroundColor: "#6b5a1f", GutterIconPath: "./img/partially-covered.svg"},
			UncoveredLine:        LineStyle{GutterIconPath: "./img/uncovered.svg"},
		},
	}
}

// WithDefaults fills empty fields from DefaultSettings.
func (s Settings) WithDefaults() Settings {
	d := DefaultSettings()
	s.Default = s.Default.withDefaults(d.Default)
	s.Gutter = s.Gutter.withDefaults(d.Gutter)
	return s
}

func (ss SeverityStyles) withDefaults(d SeverityStyles) SeverityStyles {
	ss.CoveredLine = ss.CoveredLine.withDefaults(d.CoveredLine)
	ss.PartiallyCoveredLine = ss.PartiallyCoveredLine.withDefaults(d.PartiallyCoveredLine)
	ss.UncoveredLine = ss.UncoveredLine.withDefaults(d.UncoveredLine)
	return ss
}

func (ls LineStyle) withDefaults(d LineStyle) LineStyle {
	if ls.BackgroundColor == "" {
		ls.BackgroundColor = d.BackgroundColor
	}
	if ls.GutterIconPath == "" {
		ls.GutterIconPath = d.GutterIconPath
	}
	return ls
}

// ResolveIconPath resolves a configured icon path. Paths starting with "."
// are relative to the installation root; absolute paths and URIs are
// returned unchanged.
func ResolveIconPath(installRoot, p string) string {
	if !strings.HasPrefix(p, ".") {
		return p
	}
	return filepath.Join(installRoot, p)
}
