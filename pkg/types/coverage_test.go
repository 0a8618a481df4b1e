// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loc(startLine, startCol, endLine, endCol int) Location {
	return Location{
		Start: Position{Line: startLine, Column: startCol},
		End:   Position{Line: endLine, Column: endCol},
	}
}

func TestNewBranchRecord_PairsByPosition(t *testing.T) {
	br, err := NewBranchRecord(4, []Location{loc(1, 0, 1, 5), loc(2, 2, 2, 9)}, []int{0, 7})
	require.NoError(t, err)

	assert.Equal(t, 4, br.Index)
	require.Len(t, br.Outcomes, 2)
	assert.Equal(t, BranchOutcome{Location: loc(1, 0, 1, 5), Hits: 0}, br.Outcomes[0])
	assert.Equal(t, BranchOutcome{Location: loc(2, 2, 2, 9), Hits: 7}, br.Outcomes[1])
}

func TestNewBranchRecord_MismatchedLengths(t *testing.T) {
	_, err := NewBranchRecord(0, []Location{loc(1, 0, 1, 5)}, []int{0, 1})
	assert.ErrorIs(t, err, ErrMismatchedBranch)
	assert.Contains(t, err.Error(), "1 locations and 2 hit counts")
}

func TestLineCoverage_UncoveredLines(t *testing.T) {
	lc := LineCoverage{1: 3, 2: 0, 5: 0, 6: 1}
	assert.Equal(t, map[int]bool{2: true, 5: true}, lc.UncoveredLines())
	assert.Empty(t, LineCoverage(nil).UncoveredLines())
}

func TestFileCoverage_BranchIndexesSorted(t *testing.T) {
	fc := &FileCoverage{Branches: map[int]BranchRecord{
		7: {Index: 7},
		0: {Index: 0},
		3: {Index: 3},
	}}
	assert.Equal(t, []int{0, 3, 7}, fc.BranchIndexes())
}

func TestFileCoverage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		fc      FileCoverage
		wantErr bool
	}{
		{
			name: "well formed",
			fc: FileCoverage{
				Lines:    LineCoverage{1: 0, 2: 4},
				Branches: map[int]BranchRecord{0: {Index: 0, Outcomes: []BranchOutcome{{Hits: 1}}}},
			},
		},
		{
			name:    "negative line hits",
			fc:      FileCoverage{Lines: LineCoverage{1: -1}},
			wantErr: true,
		},
		{
			name:    "branch keyed under another index",
			fc:      FileCoverage{Branches: map[int]BranchRecord{1: {Index: 2}}},
			wantErr: true,
		},
		{
			name: "negative branch hits",
			fc: FileCoverage{Branches: map[int]BranchRecord{
				0: {Index: 0, Outcomes: []BranchOutcome{{Hits: -3}}},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fc.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCoverage)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRange_LineMarker(t *testing.T) {
	m := LineMarker(3)
	assert.True(t, m.IsLineMarker())
	assert.Equal(t, "3:0-3:0", m.String())
	assert.False(t, Range{StartLine: 3, StartColumn: 2, EndLine: 3, EndColumn: 6}.IsLineMarker())
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "coveredLine", SeverityCovered.String())
	assert.Equal(t, "partiallyCoveredLine", SeverityPartiallyCovered.String())
	assert.Equal(t, "uncoveredLine", SeverityUncovered.String())
	assert.Equal(t, "unknown", Severity(42).String())
}
