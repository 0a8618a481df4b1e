// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// Summary counts a document's lines per marking.
type Summary struct {
	Path            string  `json:"path"`
	TotalLines      int     `json:"total_lines"`
	CoveredLines    int     `json:"covered_lines"`
	PartialLines    int     `json:"partial_lines"`
	UncoveredLines  int     `json:"uncovered_lines"`
	UntakenBranches int     `json:"untaken_branches"`
	CoveredRatio    float64 `json:"covered_ratio"`
}
