// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "fmt"

// ColumnUnit says what a column number counts.
type ColumnUnit int

const (
	ColumnBytes ColumnUnit = iota // UTF-8 bytes, as Go positions count
	ColumnUTF16                   // UTF-16 code units, as JavaScript positions count
)

// Range is a span in a document. Lines and columns are 0-based.
type Range struct {
	StartLine   int        `json:"startLine"`
	StartColumn int        `json:"startColumn"`
	EndLine     int        `json:"endLine"`
	EndColumn   int        `json:"endColumn"`
	Unit        ColumnUnit `json:"unit,omitempty"`
}

// LineMarker returns the whole-line marker for a 0-based line: a point at
// column 0 that decorations with whole-line styling stretch across the line.
func LineMarker(line int) Range {
	return Range{StartLine: line, EndLine: line}
}

// IsLineMarker reports whether r is a whole-line marker.
func (r Range) IsLineMarker() bool {
	return r.StartLine == r.EndLine && r.StartColumn == 0 && r.EndColumn == 0
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", r.StartLine, r.StartColumn, r.EndLine, r.EndColumn)
}

// ClassifiedRanges holds the three disjoint marking sets for a document.
type ClassifiedRanges struct {
	Covered          []Range `json:"covered"`
	PartiallyCovered []Range `json:"partiallyCovered"`
	Uncovered        []Range `json:"uncovered"`
}

// Severity identifies which of the three marking sets a range belongs to.
type Severity int

const (
	SeverityCovered          Severity = iota // Line executed, all branches taken
	SeverityPartiallyCovered                 // At least one branch outcome never taken
	SeverityUncovered                        // Line never executed
)

// String returns the settings key for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityCovered:
		return "coveredLine"
	case SeverityPartiallyCovered:
		return "partiallyCoveredLine"
	case SeverityUncovered:
		return "uncoveredLine"
	default:
		return "unknown"
	}
}

// Severities lists every severity in rendering order.
var Severities = []Severity{SeverityCovered, SeverityPartiallyCovered, SeverityUncovered}

// Get returns the ranges for one severity.
func (c ClassifiedRanges) Get(s Severity) []Range {
	switch s {
	case SeverityCovered:
		return c.Covered
	case SeverityPartiallyCovered:
		return c.PartiallyCovered
	case SeverityUncovered:
		return c.Uncovered
	default:
		return nil
	}
}
