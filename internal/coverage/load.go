// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package coverage

import (
	"bytes"
	"fmt"
	"os"
)

// Load reads a coverage file and picks the parser from its content: a
// leading "mode:" line means a Go profile, a JSON object means Istanbul.
func Load(path, root string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(trimmed, []byte("mode:")):
		return LoadGoProfile(bytes.NewReader(data), root)
	case bytes.HasPrefix(trimmed, []byte("{")):
		return LoadIstanbul(bytes.NewReader(data), root)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}
