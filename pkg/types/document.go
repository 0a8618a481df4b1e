// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// Document is an open buffer owned by the display host.
type Document interface {
	// FilePath is the path coverage is looked up by.
	FilePath() string
	// LineCount is the number of lines currently in the buffer.
	LineCount() int
	// IsRealFile is false for untitled, output and other virtual buffers.
	IsRealFile() bool
}
