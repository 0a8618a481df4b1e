// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package coverage loads per-file coverage records from Istanbul JSON and Go
// cover profiles and serves them to the overlay by file path.
package coverage

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"github.com/petar-djukic/go-covlay/pkg/types"
)

// ErrUnknownFormat is returned when a coverage file is neither a Go profile
// nor Istanbul JSON.
var ErrUnknownFormat = errors.New("unrecognized coverage format")

// minSuffixComponents is how many trailing path elements a fallback match
// must share with the requested path.
const minSuffixComponents = 2

// Provider answers "what is the coverage for this file right now".
type Provider interface {
	FileCoverage(path string) (*types.FileCoverage, bool)
}

// Map is an in-memory Provider.
type Map struct {
	files map[string]*types.FileCoverage
}

// Verify interface compliance at compile time.
var _ Provider = (*Map)(nil)

// NewMap returns an empty coverage map.
func NewMap() *Map {
	return &Map{files: make(map[string]*types.FileCoverage)}
}

// Add stores fc under its cleaned path, replacing any earlier record.
func (m *Map) Add(fc *types.FileCoverage) {
	m.files[filepath.Clean(fc.Path)] = fc
}

// Len returns the number of files in the map.
func (m *Map) Len() int {
	return len(m.files)
}

// Files returns the stored paths in sorted order.
func (m *Map) Files() []string {
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// FileCoverage looks up path exactly first. Failing that, it picks the
// record sharing the longest trailing run of path elements with path, so a
// profile keyed by import path still matches the file on disk. Ambiguous
// or too-short matches report absence.
func (m *Map) FileCoverage(path string) (*types.FileCoverage, bool) {
	clean := filepath.Clean(path)
	if fc, ok := m.files[clean]; ok {
		return fc, true
	}

	want := splitPath(clean)
	var best *types.FileCoverage
	bestShared, ties := 0, 0
	for key, fc := range m.files {
		shared := sharedSuffix(want, splitPath(key))
		switch {
		case shared > bestShared:
			best, bestShared, ties = fc, shared, 1
		case shared == bestShared:
			ties++
		}
	}
	if bestShared < minSuffixComponents || ties != 1 {
		return nil, false
	}
	return best, true
}

func splitPath(p string) []string {
	return strings.FieldsFunc(filepath.ToSlash(p), func(r rune) bool { return r == '/' })
}

func sharedSuffix(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return n
}

// resolvePath makes a coverage path absolute against root when it is relative.
func resolvePath(root, p string) string {
	if root == "" || filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
