// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package classify turns a file's coverage record into the covered,
// partially covered and uncovered ranges a formatter paints.
package classify

import (
	"errors"
	"fmt"

	"github.com/petar-djukic/go-covlay/pkg/types"
)

// ErrNegativeLineCount is returned when the document reports fewer than zero lines.
var ErrNegativeLineCount = errors.New("negative line count")

// ErrNilCoverage is returned when Classify is called without a record.
// Callers must skip documents that have no coverage instead.
var ErrNilCoverage = errors.New("nil coverage record")

// Classify marks every line 1..lineCount as covered or uncovered, then moves
// each line that starts an untaken branch outcome into the partially
// covered set, recording the outcome's exact span.
//
// The result is deterministic: lines in ascending order, then branch groups
// by ascending index and outcomes in recorded order. cov is not modified.
func Classify(lineCount int, cov *types.FileCoverage) (types.ClassifiedRanges, error) {
	if lineCount < 0 {
		return types.ClassifiedRanges{}, fmt.Errorf("%w: %d", ErrNegativeLineCount, lineCount)
	}
	if cov == nil {
		return types.ClassifiedRanges{}, ErrNilCoverage
	}
	if err := cov.Validate(); err != nil {
		return types.ClassifiedRanges{}, err
	}

	result := types.ClassifiedRanges{
		Covered:          []types.Range{},
		PartiallyCovered: []types.Range{},
		Uncovered:        []types.Range{},
	}

	uncovered := cov.Lines.UncoveredLines()
	for line := 1; line <= lineCount; line++ {
		marker := types.LineMarker(line - 1)
		if uncovered[line] {
			result.Uncovered = append(result.Uncovered, marker)
		} else {
			result.Covered = append(result.Covered, marker)
		}
	}

	for _, idx := range cov.BranchIndexes() {
		for _, outcome := range cov.Branches[idx].Outcomes {
			if outcome.Hits > 0 {
				continue
			}
			l := outcome.Location
			if !IsValidLocation(l) {
				continue
			}

			marker := types.LineMarker(l.Start.Line - 1)
			result.Covered = without(result.Covered, marker)
			result.Uncovered = without(result.Uncovered, marker)

			result.PartiallyCovered = append(result.PartiallyCovered, types.Range{
				StartLine:   l.Start.Line - 1,
				StartColumn: l.Start.Column,
				EndLine:     l.End.Line - 1,
				EndColumn:   l.End.Column,
				Unit:        cov.Columns,
			})
		}
	}

	return result, nil
}

// IsValidLocation reports whether a branch location can be painted. Both
// ends must be reported (1-based line, non-negative column) and the end
// must not precede the start.
func IsValidLocation(l types.Location) bool {
	if !isValidPosition(l.Start) || !isValidPosition(l.End) {
		return false
	}
	if l.End.Line < l.Start.Line {
		return false
	}
	return l.End.Line > l.Start.Line || l.End.Column >= l.Start.Column
}

func isValidPosition(p types.Position) bool {
	return p.Line >= 1 && p.Column >= 0
}

// without filters r out of ranges in place. Removing an absent range is a no-op.
func without(ranges []types.Range, r types.Range) []types.Range {
	kept := ranges[:0]
	for _, existing := range ranges {
		if existing != r {
			kept = append(kept, existing)
		}
	}
	return kept
}
