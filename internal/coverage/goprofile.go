// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package coverage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/cover"

	"github.com/petar-djukic/go-covlay/pkg/types"
)

// LoadGoProfile parses `go test -coverprofile` output. When root holds a
// go.mod, import-path file names under its module are mapped into root;
// other names are kept and matched by path suffix.
//
// Go profiles carry no branch table. A block with zero count that starts on
// a line some other block executed is recorded as a one-outcome branch
// group, so an `if` whose body never ran shows as partially covered.
func LoadGoProfile(r io.Reader, root string) (*Map, error) {
	profiles, err := cover.ParseProfilesFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing go cover profile: %w", err)
	}

	modulePath := readModulePath(root)
	m := NewMap()
	for _, p := range profiles {
		m.Add(convertProfile(goProfilePath(root, modulePath, p.FileName), p))
	}
	return m, nil
}

func convertProfile(path string, p *cover.Profile) *types.FileCoverage {
	fc := &types.FileCoverage{
		Path:     path,
		Lines:    types.LineCoverage{},
		Branches: map[int]types.BranchRecord{},
		Columns:  types.ColumnBytes,
	}

	for _, b := range p.Blocks {
		for line := b.StartLine; line <= b.EndLine; line++ {
			if prev, ok := fc.Lines[line]; !ok || prev < b.Count {
				fc.Lines[line] = b.Count
			}
		}
	}

	for _, b := range p.Blocks {
		if b.Count > 0 || fc.Lines[b.StartLine] == 0 {
			continue
		}
		idx := len(fc.Branches)
		fc.Branches[idx] = types.BranchRecord{
			Index: idx,
			Outcomes: []types.BranchOutcome{{
				Location: types.Location{
					Start: types.Position{Line: b.StartLine, Column: b.StartCol - 1},
					End:   types.Position{Line: b.EndLine, Column: b.EndCol - 1},
				},
			}},
		}
	}

	return fc
}

func goProfilePath(root, modulePath, name string) string {
	if modulePath != "" && strings.HasPrefix(name, modulePath+"/") {
		return filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(name, modulePath+"/")))
	}
	return resolvePath(root, name)
}

// readModulePath returns the module path declared in root/go.mod, or "".
func readModulePath(root string) string {
	if root == "" {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}
