// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package host is a terminal stand-in for an editor: it owns open
// documents, reports which are visible, and draws decorations as ANSI text.
package host

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/petar-djukic/go-covlay/pkg/types"
)

// FileDocument is a file loaded from disk.
type FileDocument struct {
	path  string
	lines []string
}

// Verify interface compliance at compile time.
var _ types.Document = (*FileDocument)(nil)

// OpenFile reads path into a document keyed by its absolute path.
func OpenFile(path string) (*FileDocument, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return NewFileDocument(abs, string(data)), nil
}

// NewFileDocument wraps in-memory content as if it were read from path.
// A trailing newline starts a final empty line, as editors count it.
func NewFileDocument(path, content string) *FileDocument {
	return &FileDocument{path: path, lines: strings.Split(content, "\n")}
}

func (d *FileDocument) FilePath() string { return d.path }
func (d *FileDocument) LineCount() int   { return len(d.lines) }
func (d *FileDocument) IsRealFile() bool { return true }

// Line returns the text of a 0-based line.
func (d *FileDocument) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// Untitled is a scratch buffer with no file behind it. Coverage never
// applies to it.
type Untitled struct {
	Name  string
	Lines int
}

// Verify interface compliance at compile time.
var _ types.Document = Untitled{}

func (u Untitled) FilePath() string { return "untitled:" + u.Name }
func (u Untitled) LineCount() int   { return u.Lines }
func (u Untitled) IsRealFile() bool { return false }
