// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package coverage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/petar-djukic/go-covlay/pkg/types"
)

// Watcher is a Provider that reloads its coverage file whenever the file is
// rewritten. Readers always see a complete snapshot.
type Watcher struct {
	path   string
	root   string
	logger *slog.Logger

	mu      sync.RWMutex
	current *Map
}

// Verify interface compliance at compile time.
var _ Provider = (*Watcher)(nil)

// NewWatcher loads path once and returns a Watcher serving it.
func NewWatcher(path, root string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m, err := Load(path, root)
	if err != nil {
		return nil, err
	}
	return &Watcher{path: filepath.Clean(path), root: root, logger: logger, current: m}, nil
}

// FileCoverage serves from the latest successfully loaded snapshot.
func (w *Watcher) FileCoverage(path string) (*types.FileCoverage, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current.FileCoverage(path)
}

// Run watches the coverage file's directory until ctx is done. After each
// successful reload it calls onChange. A reload that fails to parse keeps
// the previous snapshot; coverage tools often write the file in pieces.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fsw.Close()

	// Watch the directory: tools often replace the file rather than write it.
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if err := w.reload(); err != nil {
				w.logger.Warn("coverage reload failed", "path", w.path, "error", err)
				continue
			}
			w.logger.Debug("coverage reloaded", "path", w.path)
			if onChange != nil {
				onChange()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() error {
	m, err := Load(w.path, w.root)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.current = m
	w.mu.Unlock()
	return nil
}
