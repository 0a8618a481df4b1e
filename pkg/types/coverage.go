// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across go-covlay packages.
package types

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMismatchedBranch is returned when a branch's locations and hit counts
// do not pair up one to one.
var ErrMismatchedBranch = errors.New("branch locations and hit counts differ in length")

// ErrInvalidCoverage is returned when a coverage record violates its own
// invariants (negative hit counts, inconsistent branch indexes).
var ErrInvalidCoverage = errors.New("invalid coverage record")

// Position is a point in a source file. Line is 1-based, Column is 0-based.
// A negative field marks a position the coverage tool did not report.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location is the span of one branch outcome.
type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// BranchOutcome pairs one outcome location with the number of times it ran.
type BranchOutcome struct {
	Location Location `json:"location"`
	Hits     int      `json:"hits"`
}

// BranchRecord is one decision point (an if, a switch, a ternary) and the
// outcomes it can take, in instrumentation order.
type BranchRecord struct {
	Index    int             `json:"index"`
	Outcomes []BranchOutcome `json:"outcomes"`
}

// NewBranchRecord builds a BranchRecord from the parallel sequences coverage
// tools emit. The sequences must have the same length.
func NewBranchRecord(index int, locations []Location, hits []int) (BranchRecord, error) {
	if len(locations) != len(hits) {
		return BranchRecord{}, fmt.Errorf("%w: branch %d has %d locations and %d hit counts",
			ErrMismatchedBranch, index, len(locations), len(hits))
	}
	outcomes := make([]BranchOutcome, len(locations))
	for i := range locations {
		outcomes[i] = BranchOutcome{Location: locations[i], Hits: hits[i]}
	}
	return BranchRecord{Index: index, Outcomes: outcomes}, nil
}

// LineCoverage maps a 1-based line number to its hit count. Lines missing
// from the map carry no statements and are never reported as uncovered.
type LineCoverage map[int]int

// UncoveredLines returns the set of lines whose hit count is zero.
func (lc LineCoverage) UncoveredLines() map[int]bool {
	uncovered := make(map[int]bool)
	for line, hits := range lc {
		if hits == 0 {
			uncovered[line] = true
		}
	}
	return uncovered
}

// FileCoverage is a read-only snapshot of one file's coverage.
type FileCoverage struct {
	Path     string               `json:"path"`
	Lines    LineCoverage         `json:"lines"`
	Branches map[int]BranchRecord `json:"branches"`
	Columns  ColumnUnit           `json:"columns,omitempty"` // Unit of every Position.Column
}

// BranchIndexes returns the branch group indexes in ascending order.
func (fc *FileCoverage) BranchIndexes() []int {
	indexes := make([]int, 0, len(fc.Branches))
	for idx := range fc.Branches {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	return indexes
}

// Validate checks the record's internal consistency.
func (fc *FileCoverage) Validate() error {
	for line, hits := range fc.Lines {
		if hits < 0 {
			return fmt.Errorf("%w: %s line %d has negative hit count %d", ErrInvalidCoverage, fc.Path, line, hits)
		}
	}
	for idx, br := range fc.Branches {
		if br.Index != idx {
			return fmt.Errorf("%w: %s branch keyed %d carries index %d", ErrInvalidCoverage, fc.Path, idx, br.Index)
		}
		for i, o := range br.Outcomes {
			if o.Hits < 0 {
				return fmt.Errorf("%w: %s branch %d outcome %d has negative hit count %d",
					ErrInvalidCoverage, fc.Path, idx, i, o.Hits)
			}
		}
	}
	return nil
}
