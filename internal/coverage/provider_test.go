// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petar-djukic/go-covlay/pkg/types"
)

func TestMap_FileCoverage(t *testing.T) {
	m := NewMap()
	m.Add(&types.FileCoverage{Path: "/repo/pkg/a/util.go"})
	m.Add(&types.FileCoverage{Path: "/repo/pkg/b/util.go"})
	m.Add(&types.FileCoverage{Path: "example.com/mod/internal/server/handler.go"})

	tests := []struct {
		name     string
		path     string
		wantPath string
		wantOK   bool
	}{
		{name: "exact", path: "/repo/pkg/a/util.go", wantPath: "/repo/pkg/a/util.go", wantOK: true},
		{name: "unclean exact", path: "/repo/pkg/./a/util.go", wantPath: "/repo/pkg/a/util.go", wantOK: true},
		{name: "import path suffix", path: "/home/dev/mod/internal/server/handler.go", wantPath: "example.com/mod/internal/server/handler.go", wantOK: true},
		{name: "suffix distinguishes siblings", path: "/elsewhere/b/util.go", wantPath: "/repo/pkg/b/util.go", wantOK: true},
		{name: "file name alone is ambiguous", path: "/elsewhere/util.go", wantOK: false},
		{name: "unknown file", path: "/repo/pkg/c/other.go", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc, ok := m.FileCoverage(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantPath, fc.Path)
			}
		})
	}
}

func TestMap_Files(t *testing.T) {
	m := NewMap()
	m.Add(&types.FileCoverage{Path: "/b.go"})
	m.Add(&types.FileCoverage{Path: "/a.go"})
	m.Add(&types.FileCoverage{Path: "/a.go"})

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"/a.go", "/b.go"}, m.Files())
}
