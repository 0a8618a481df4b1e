// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package coverage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-covlay/pkg/types"
)

const istanbulFixture = `{
  "src/math.js": {
    "path": "src/math.js",
    "statementMap": {
      "0": {"start": {"line": 1, "column": 0}, "end": {"line": 1, "column": 20}},
      "1": {"start": {"line": 2, "column": 2}, "end": {"line": 2, "column": 30}},
      "2": {"start": {"line": 2, "column": 31}, "end": {"line": 2, "column": 40}},
      "3": {"start": {"line": 4, "column": 2}, "end": {"line": 4, "column": 12}}
    },
    "s": {"0": 1, "1": 0, "2": 3, "3": 0},
    "branchMap": {
      "0": {
        "type": "if",
        "line": 2,
        "locations": [
          {"start": {"line": 2, "column": 2}, "end": {"line": 3, "column": 3}},
          {"start": {"line": 2, "column": 2}, "end": {"line": null, "column": null}}
        ]
      }
    },
    "b": {"0": [0, 4]}
  },
  "/abs/wrapped.js": {
    "data": {
      "path": "/abs/wrapped.js",
      "statementMap": {"0": {"start": {"line": 1, "column": 0}, "end": {"line": 1, "column": 5}}},
      "s": {"0": 2},
      "branchMap": {},
      "b": {}
    }
  }
}`

func TestLoadIstanbul(t *testing.T) {
	m, err := LoadIstanbul(strings.NewReader(istanbulFixture), "/work")
	require.NoError(t, err)
	assert.Equal(t, []string{"/abs/wrapped.js", "/work/src/math.js"}, m.Files())

	fc, ok := m.FileCoverage("/work/src/math.js")
	require.True(t, ok)

	// Line 2 takes the highest statement count starting on it.
	assert.Equal(t, types.LineCoverage{1: 1, 2: 3, 4: 0}, fc.Lines)
	assert.Equal(t, types.ColumnUTF16, fc.Columns)

	require.Contains(t, fc.Branches, 0)
	outcomes := fc.Branches[0].Outcomes
	require.Len(t, outcomes, 2)
	assert.Equal(t, 0, outcomes[0].Hits)
	assert.Equal(t, types.Position{Line: 3, Column: 3}, outcomes[0].Location.End)
	assert.Equal(t, 4, outcomes[1].Hits)
	assert.Equal(t, types.Position{Line: -1, Column: -1}, outcomes[1].Location.End)

	wrapped, ok := m.FileCoverage("/abs/wrapped.js")
	require.True(t, ok)
	assert.Equal(t, types.LineCoverage{1: 2}, wrapped.Lines)
}

func TestLoadIstanbul_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "mode: set"},
		{
			name:  "mismatched branch counts",
			input: `{"a.js": {"branchMap": {"0": {"locations": [{}, {}]}}, "b": {"0": [1]}}}`,
		},
		{
			name:  "non numeric branch id",
			input: `{"a.js": {"branchMap": {"x": {"locations": []}}, "b": {"x": []}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadIstanbul(strings.NewReader(tt.input), "")
			assert.Error(t, err)
		})
	}
}

func TestLoadIstanbul_MismatchWrapsSentinel(t *testing.T) {
	_, err := LoadIstanbul(strings.NewReader(`{"a.js": {"branchMap": {"0": {"locations": [{}]}}, "b": {"0": []}}}`), "")
	assert.ErrorIs(t, err, types.ErrMismatchedBranch)
}
