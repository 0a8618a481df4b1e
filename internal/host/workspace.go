// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package host

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/petar-djukic/go-covlay/pkg/types"
)

// sourceExts are the file types directory expansion opens.
var sourceExts = map[string]bool{
	".go":  true,
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
	".ts":  true,
	".tsx": true,
}

var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// Registry lists the documents currently visible to the user.
type Registry interface {
	VisibleDocuments() []types.Document
}

// Workspace is a Registry holding documents in the order they were opened.
// It is safe for concurrent use.
type Workspace struct {
	mu   sync.RWMutex
	docs []types.Document
	open map[string]bool
}

// Verify interface compliance at compile time.
var _ Registry = (*Workspace)(nil)

// NewWorkspace returns an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{open: make(map[string]bool)}
}

// Add makes doc visible. Adding a path twice keeps the first document.
func (w *Workspace) Add(doc types.Document) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.open[doc.FilePath()] {
		return
	}
	w.open[doc.FilePath()] = true
	w.docs = append(w.docs, doc)
}

// Open loads each path. Directories are walked for source files, skipping
// anything matched by a .gitignore in the directory or any directory below it.
func (w *Workspace) Open(paths ...string) error {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("opening %s: %w", p, err)
		}
		if !info.IsDir() {
			doc, err := OpenFile(p)
			if err != nil {
				return err
			}
			w.Add(doc)
			continue
		}
		if err := w.openDir(p); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workspace) openDir(dir string) error {
	dir = filepath.Clean(dir)
	// Each directory's .gitignore applies to paths below it.
	ignores := make(map[string]*ignore.GitIgnore)
	load := func(d string) {
		// Without a readable .gitignore nothing is ignored.
		if gi, err := ignore.CompileIgnoreFile(filepath.Join(d, ".gitignore")); err == nil {
			ignores[d] = gi
		}
	}
	ignored := func(path string, isDir bool) bool {
		for d := filepath.Dir(path); ; d = filepath.Dir(d) {
			if gi, ok := ignores[d]; ok {
				rel, err := filepath.Rel(d, path)
				if err == nil {
					rel = filepath.ToSlash(rel)
					if isDir {
						rel += "/"
					}
					if gi.MatchesPath(rel) {
						return true
					}
				}
			}
			if d == dir || d == filepath.Dir(d) {
				return false
			}
		}
	}
	load(dir)

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] || ignored(path, true) {
				return filepath.SkipDir
			}
			load(path)
			return nil
		}
		if !sourceExts[filepath.Ext(path)] || ignored(path, false) {
			return nil
		}
		doc, err := OpenFile(path)
		if err != nil {
			return err
		}
		w.Add(doc)
		return nil
	})
}

// VisibleDocuments returns the open documents in opening order.
func (w *Workspace) VisibleDocuments() []types.Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]types.Document, len(w.docs))
	copy(out, w.docs)
	return out
}
