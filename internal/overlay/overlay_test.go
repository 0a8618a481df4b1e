// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-covlay/internal/coverage"
	"github.com/petar-djukic/go-covlay/internal/formatter"
	"github.com/petar-djukic/go-covlay/internal/host"
	"github.com/petar-djukic/go-covlay/pkg/types"
)

// countingProvider wraps a coverage map and counts lookups.
type countingProvider struct {
	m       *coverage.Map
	lookups int
}

func (p *countingProvider) FileCoverage(path string) (*types.FileCoverage, bool) {
	p.lookups++
	return p.m.FileCoverage(path)
}

type call struct {
	op     string
	path   string
	ranges types.ClassifiedRanges
}

// recordingFormatter implements formatter.Formatter for testing.
type recordingFormatter struct {
	calls  []call
	closed int
}

func (f *recordingFormatter) Format(doc types.Document, ranges types.ClassifiedRanges) {
	f.calls = append(f.calls, call{op: "format", path: doc.FilePath(), ranges: ranges})
}

func (f *recordingFormatter) Clear(doc types.Document) {
	f.calls = append(f.calls, call{op: "clear", path: doc.FilePath()})
}

func (f *recordingFormatter) Close() error {
	f.closed++
	return nil
}

func (f *recordingFormatter) ops() []string {
	out := []string{}
	for _, c := range f.calls {
		out = append(out, c.op+" "+c.path)
	}
	return out
}

type fixture struct {
	provider  *countingProvider
	workspace *host.Workspace
	formatter *recordingFormatter
	ctrl      *Controller
}

// newFixture opens /src/a.go (3 lines, line 2 uncovered) and /src/b.go
// (no coverage) and an untitled buffer.
func newFixture(t *testing.T, enabled bool) *fixture {
	t.Helper()

	m := coverage.NewMap()
	m.Add(&types.FileCoverage{Path: "/src/a.go", Lines: types.LineCoverage{1: 1, 2: 0, 3: 1}})

	ws := host.NewWorkspace()
	ws.Add(host.NewFileDocument("/src/a.go", "one\ntwo\nthree"))
	ws.Add(host.NewFileDocument("/src/b.go", "package b"))
	ws.Add(host.Untitled{Name: "scratch", Lines: 10})

	f := &fixture{
		provider:  &countingProvider{m: m},
		workspace: ws,
		formatter: &recordingFormatter{},
	}
	ctrl, err := New(Config{Enabled: enabled}, Deps{
		Provider:  f.provider,
		Registry:  ws,
		Formatter: f.formatter,
	})
	require.NoError(t, err)
	f.ctrl = ctrl
	return f
}

func TestNew_RequiresDependencies(t *testing.T) {
	ws := host.NewWorkspace()
	m := coverage.NewMap()

	_, err := New(Config{}, Deps{Registry: ws, Surface: host.NewTerminal(false)})
	assert.ErrorIs(t, err, ErrMissingDependency)

	_, err = New(Config{}, Deps{Provider: m, Surface: host.NewTerminal(false)})
	assert.ErrorIs(t, err, ErrMissingDependency)

	_, err = New(Config{}, Deps{Provider: m, Registry: ws})
	assert.ErrorIs(t, err, ErrMissingDependency)
}

func TestNew_DefaultsToDisabled(t *testing.T) {
	ctrl, err := New(Config{}, Deps{
		Provider: coverage.NewMap(),
		Registry: host.NewWorkspace(),
		Surface:  host.NewTerminal(false),
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultEnabled, ctrl.Enabled())
}

func TestUpdate_VirtualDocumentSkipped(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		f := newFixture(t, enabled)

		require.NoError(t, f.ctrl.Update(host.Untitled{Name: "scratch"}))
		assert.Zero(t, f.provider.lookups)
		assert.Empty(t, f.formatter.calls)
	}
}

func TestUpdate_DisabledOnlyClears(t *testing.T) {
	f := newFixture(t, false)
	doc := host.NewFileDocument("/src/a.go", "one\ntwo\nthree")

	require.NoError(t, f.ctrl.Update(doc))

	assert.Equal(t, []string{"clear /src/a.go"}, f.formatter.ops())
	assert.Zero(t, f.provider.lookups)
}

func TestUpdate_EnabledFormatsClassifiedRanges(t *testing.T) {
	f := newFixture(t, true)
	doc := host.NewFileDocument("/src/a.go", "one\ntwo\nthree")

	require.NoError(t, f.ctrl.Update(doc))

	require.Len(t, f.formatter.calls, 1)
	c := f.formatter.calls[0]
	assert.Equal(t, "format", c.op)
	assert.Equal(t, []types.Range{types.LineMarker(0), types.LineMarker(2)}, c.ranges.Covered)
	assert.Equal(t, []types.Range{types.LineMarker(1)}, c.ranges.Uncovered)
	assert.Empty(t, c.ranges.PartiallyCovered)
}

func TestUpdate_EnabledWithoutCoverageDoesNothing(t *testing.T) {
	f := newFixture(t, true)

	require.NoError(t, f.ctrl.Update(host.NewFileDocument("/src/b.go", "package b")))

	assert.Equal(t, 1, f.provider.lookups)
	assert.Empty(t, f.formatter.calls, "missing coverage must not clear existing markings")
}

func TestSetEnabled_RerendersVisibleDocuments(t *testing.T) {
	f := newFixture(t, false)

	require.NoError(t, f.ctrl.SetEnabled(true))
	assert.True(t, f.ctrl.Enabled())
	assert.Equal(t, []string{"format /src/a.go"}, f.formatter.ops())

	require.NoError(t, f.ctrl.SetEnabled(false))
	assert.False(t, f.ctrl.Enabled())
	assert.Equal(t, []string{"format /src/a.go", "clear /src/a.go", "clear /src/b.go"}, f.formatter.ops())
}

func TestToggle_TwiceRestoresState(t *testing.T) {
	f := newFixture(t, false)

	require.NoError(t, f.ctrl.Toggle())
	assert.True(t, f.ctrl.Enabled())
	require.NoError(t, f.ctrl.Toggle())
	assert.False(t, f.ctrl.Enabled())

	assert.Equal(t, []string{"format /src/a.go", "clear /src/a.go", "clear /src/b.go"}, f.formatter.ops())
}

func TestToggle_TwiceLeavesSurfaceUnchanged(t *testing.T) {
	m := coverage.NewMap()
	m.Add(&types.FileCoverage{Path: "/src/a.go", Lines: types.LineCoverage{1: 1, 2: 0}})
	doc := host.NewFileDocument("/src/a.go", "one\ntwo")
	ws := host.NewWorkspace()
	ws.Add(doc)
	term := host.NewTerminal(false)

	ctrl, err := New(Config{Formatter: formatter.VariantGutter}, Deps{Provider: m, Registry: ws, Surface: term})
	require.NoError(t, err)

	require.NoError(t, ctrl.UpdateVisibleEditors())
	before := term.Decorations(doc)

	require.NoError(t, ctrl.Toggle())
	assert.NotEmpty(t, term.Decorations(doc))
	require.NoError(t, ctrl.Toggle())

	assert.Equal(t, before, term.Decorations(doc))
}

func TestUpdateVisibleEditors_ContinuesPastBadCoverage(t *testing.T) {
	m := coverage.NewMap()
	m.Add(&types.FileCoverage{Path: "/src/bad.go", Lines: types.LineCoverage{1: -4}})
	m.Add(&types.FileCoverage{Path: "/src/good.go", Lines: types.LineCoverage{1: 2}})
	ws := host.NewWorkspace()
	ws.Add(host.NewFileDocument("/src/bad.go", "x"))
	ws.Add(host.NewFileDocument("/src/good.go", "y"))
	rf := &recordingFormatter{}

	ctrl, err := New(Config{Enabled: true}, Deps{Provider: m, Registry: ws, Formatter: rf})
	require.NoError(t, err)

	err = ctrl.UpdateVisibleEditors()
	assert.ErrorIs(t, err, types.ErrInvalidCoverage)
	assert.Contains(t, err.Error(), "/src/bad.go")
	assert.Equal(t, []string{"format /src/good.go"}, rf.ops())
}

func TestClose_ReleasesOnce(t *testing.T) {
	f := newFixture(t, true)

	require.NoError(t, f.ctrl.Close())
	require.NoError(t, f.ctrl.Close())
	assert.Equal(t, 1, f.formatter.closed)

	require.NoError(t, f.ctrl.UpdateVisibleEditors())
	assert.Empty(t, f.formatter.calls)
}
