// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package coverage

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoRoot_FromSubdirectory(t *testing.T) {
	root := t.TempDir()
	_, err := gogit.PlainInit(root, false)
	require.NoError(t, err)

	sub := filepath.Join(root, "pkg", "calc")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	got, err := RepoRoot(sub)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestRepoRoot_NotARepo(t *testing.T) {
	_, err := RepoRoot(t.TempDir())
	assert.ErrorIs(t, err, ErrNoRepo)
}
