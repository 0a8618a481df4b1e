// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package coverage

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/petar-djukic/go-covlay/pkg/types"
)

// istanbulPosition allows null or missing fields, which Istanbul emits for
// implicit else branches.
type istanbulPosition struct {
	Line   *int `json:"line"`
	Column *int `json:"column"`
}

type istanbulLocation struct {
	Start istanbulPosition `json:"start"`
	End   istanbulPosition `json:"end"`
}

type istanbulBranch struct {
	Type      string             `json:"type"`
	Line      int                `json:"line"`
	Locations []istanbulLocation `json:"locations"`
}

type istanbulFile struct {
	Path         string                      `json:"path"`
	StatementMap map[string]istanbulLocation `json:"statementMap"`
	S            map[string]int              `json:"s"`
	BranchMap    map[string]istanbulBranch   `json:"branchMap"`
	B            map[string][]int            `json:"b"`
	Data         *istanbulFile               `json:"data"`
}

// LoadIstanbul parses an Istanbul coverage-final.json document. Relative
// file paths are resolved against root.
func LoadIstanbul(r io.Reader, root string) (*Map, error) {
	var raw map[string]istanbulFile
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding istanbul json: %w", err)
	}

	m := NewMap()
	for key, f := range raw {
		if f.Data != nil {
			f = *f.Data
		}
		path := f.Path
		if path == "" {
			path = key
		}
		fc, err := convertIstanbul(resolvePath(root, path), f)
		if err != nil {
			return nil, err
		}
		m.Add(fc)
	}
	return m, nil
}

func convertIstanbul(path string, f istanbulFile) (*types.FileCoverage, error) {
	fc := &types.FileCoverage{
		Path:     path,
		Lines:    types.LineCoverage{},
		Branches: make(map[int]types.BranchRecord, len(f.BranchMap)),
		Columns:  types.ColumnUTF16,
	}

	// A line's hit count is the highest count of any statement starting on it.
	for id, loc := range f.StatementMap {
		if loc.Start.Line == nil {
			continue
		}
		line := *loc.Start.Line
		count := f.S[id]
		if prev, ok := fc.Lines[line]; !ok || prev < count {
			fc.Lines[line] = count
		}
	}

	for _, id := range sortedKeys(f.BranchMap) {
		idx, err := strconv.Atoi(id)
		if err != nil {
			return nil, fmt.Errorf("%s: branch id %q is not numeric: %w", path, id, err)
		}
		bm := f.BranchMap[id]
		locations := make([]types.Location, len(bm.Locations))
		for i, l := range bm.Locations {
			locations[i] = types.Location{Start: position(l.Start), End: position(l.End)}
		}
		br, err := types.NewBranchRecord(idx, locations, f.B[id])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		fc.Branches[idx] = br
	}

	return fc, nil
}

// position maps missing fields to -1 so location validation rejects them.
func position(p istanbulPosition) types.Position {
	pos := types.Position{Line: -1, Column: -1}
	if p.Line != nil {
		pos.Line = *p.Line
	}
	if p.Column != nil {
		pos.Column = *p.Column
	}
	return pos
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
