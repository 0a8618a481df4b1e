// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package classify

import "github.com/petar-djukic/go-covlay/pkg/types"

// Summarize counts the lines in each set. A line holding several untaken
// branch outcomes counts once as partial; UntakenBranches counts every outcome.
func Summarize(path string, ranges types.ClassifiedRanges) types.Summary {
	partialLines := make(map[int]bool, len(ranges.PartiallyCovered))
	for _, r := range ranges.PartiallyCovered {
		partialLines[r.StartLine] = true
	}

	s := types.Summary{
		Path:            path,
		CoveredLines:    len(ranges.Covered),
		PartialLines:    len(partialLines),
		UncoveredLines:  len(ranges.Uncovered),
		UntakenBranches: len(ranges.PartiallyCovered),
	}
	s.TotalLines = s.CoveredLines + s.PartialLines + s.UncoveredLines
	if s.TotalLines == 0 {
		s.CoveredRatio = 1
	} else {
		s.CoveredRatio = float64(s.CoveredLines) / float64(s.TotalLines)
	}
	return s
}
