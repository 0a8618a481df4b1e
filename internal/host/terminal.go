// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package host

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/petar-djukic/go-covlay/internal/formatter"
	"github.com/petar-djukic/go-covlay/pkg/types"
)

const (
	ansiReset = "\x1b[0m"
	ansiBgFmt = "\x1b[48;2;%d;%d;%dm"
)

// gutterGlyphs stand in for gutter icons on a terminal.
var gutterGlyphs = map[types.Severity]string{
	types.SeverityCovered:          "+",
	types.SeverityPartiallyCovered: "~",
	types.SeverityUncovered:        "-",
}

// Terminal is a formatter.Surface that keeps decorations in memory and
// renders them as text. With Color set, backgrounds become 24-bit ANSI.
// It is safe for concurrent use.
type Terminal struct {
	Color bool

	mu    sync.RWMutex
	live  map[*termDecoration]bool
	drawn map[string]map[*termDecoration][]types.Range
}

// Verify interface compliance at compile time.
var _ formatter.Surface = (*Terminal)(nil)

// NewTerminal returns a surface with no decorations.
func NewTerminal(color bool) *Terminal {
	return &Terminal{
		Color: color,
		live:  make(map[*termDecoration]bool),
		drawn: make(map[string]map[*termDecoration][]types.Range),
	}
}

type termDecoration struct {
	term *Terminal
	opts formatter.DecorationOptions
}

func (d *termDecoration) Options() formatter.DecorationOptions { return d.opts }

// Dispose removes the decoration from every document.
func (d *termDecoration) Dispose() {
	d.term.mu.Lock()
	defer d.term.mu.Unlock()
	delete(d.term.live, d)
	for _, byDec := range d.term.drawn {
		delete(byDec, d)
	}
}

func (t *Terminal) CreateDecorationType(opts formatter.DecorationOptions) formatter.DecorationType {
	t.mu.Lock()
	defer t.mu.Unlock()
	d := &termDecoration{term: t, opts: opts}
	t.live[d] = true
	return d
}

// SetDecorations ignores decoration types this terminal did not create or
// has already disposed.
func (t *Terminal) SetDecorations(doc types.Document, dt formatter.DecorationType, ranges []types.Range) {
	t.mu.Lock()
	defer t.mu.Unlock()
	d, ok := dt.(*termDecoration)
	if !ok || !t.live[d] {
		return
	}
	byDec := t.drawn[doc.FilePath()]
	if len(ranges) == 0 {
		delete(byDec, d)
		return
	}
	if byDec == nil {
		byDec = make(map[*termDecoration][]types.Range)
		t.drawn[doc.FilePath()] = byDec
	}
	byDec[d] = append([]types.Range(nil), ranges...)
}

// Decorations returns what is drawn on doc, grouped by severity. Ranges
// from several decoration types of one severity are merged in line order.
func (t *Terminal) Decorations(doc types.Document) map[types.Severity][]types.Range {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[types.Severity][]types.Range)
	for d, ranges := range t.drawn[doc.FilePath()] {
		out[d.opts.Severity] = append(out[d.opts.Severity], ranges...)
	}
	for s := range out {
		rs := out[s]
		sort.SliceStable(rs, func(i, j int) bool {
			if rs[i].StartLine != rs[j].StartLine {
				return rs[i].StartLine < rs[j].StartLine
			}
			return rs[i].StartColumn < rs[j].StartColumn
		})
	}
	return out
}

// lineStyle is what applies to one rendered line.
type lineStyle struct {
	severity  types.Severity
	marked    bool
	wholeLine string
	spans     []lineSpan
}

type lineSpan struct {
	start, end int
	color      string
}

// Render writes doc one line per row: a gutter glyph, the line number and
// the text, with backgrounds when Color is set.
func (t *Terminal) Render(w io.Writer, doc *FileDocument) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	styles := t.lineStyles(doc)
	for i := 0; i < doc.LineCount(); i++ {
		text := doc.Line(i)
		glyph := " "
		if st, ok := styles[i]; ok {
			if st.marked {
				glyph = gutterGlyphs[st.severity]
			}
			if t.Color {
				text = paint(text, st)
			}
		}
		if _, err := fmt.Fprintf(w, "%s %4d │ %s\n", glyph, i+1, text); err != nil {
			return err
		}
	}
	return nil
}

// lineStyles requires t.mu held.
func (t *Terminal) lineStyles(doc *FileDocument) map[int]*lineStyle {
	styles := make(map[int]*lineStyle)
	get := func(line int) *lineStyle {
		st, ok := styles[line]
		if !ok {
			st = &lineStyle{}
			styles[line] = st
		}
		return st
	}

	for d, ranges := range t.drawn[doc.FilePath()] {
		for _, r := range ranges {
			if d.opts.WholeLine {
				st := get(r.StartLine)
				if !st.marked || st.severity != types.SeverityPartiallyCovered {
					st.severity, st.marked = d.opts.Severity, true
				}
				st.wholeLine = d.opts.BackgroundColor
				continue
			}
			for line := r.StartLine; line <= r.EndLine; line++ {
				st := get(line)
				if line == r.StartLine {
					st.severity, st.marked = d.opts.Severity, true
				}
				text := doc.Line(line)
				start, end := 0, len(text)
				if line == r.StartLine {
					start = byteOffset(text, r.StartColumn, r.Unit)
				}
				if line == r.EndLine {
					end = byteOffset(text, r.EndColumn, r.Unit)
				}
				st.spans = append(st.spans, lineSpan{start: start, end: end, color: d.opts.BackgroundColor})
			}
		}
	}
	return styles
}

func paint(text string, st *lineStyle) string {
	if len(st.spans) == 0 {
		return colorize(text, st.wholeLine)
	}

	sort.Slice(st.spans, func(i, j int) bool { return st.spans[i].start < st.spans[j].start })
	var b strings.Builder
	pos := 0
	for _, sp := range st.spans {
		start, end := clamp(sp.start, len(text)), clamp(sp.end, len(text))
		if start < pos {
			start = pos
		}
		if end <= start {
			continue
		}
		b.WriteString(text[pos:start])
		b.WriteString(colorize(text[start:end], sp.color))
		pos = end
	}
	b.WriteString(text[pos:])
	return b.String()
}

// byteOffset converts a column counted in unit to a byte offset into text.
// The result always falls on a rune boundary.
func byteOffset(text string, col int, unit types.ColumnUnit) int {
	if col <= 0 {
		return 0
	}
	if unit != types.ColumnUTF16 {
		if col >= len(text) {
			return len(text)
		}
		for col > 0 && !utf8.RuneStart(text[col]) {
			col--
		}
		return col
	}

	units := 0
	for i, r := range text {
		if units >= col {
			return i
		}
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		units += n
	}
	return len(text)
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n {
		return n
	}
	return v
}

func colorize(s, color string) string {
	r, g, b, ok := parseHexColor(color)
	if !ok || s == "" {
		return s
	}
	return fmt.Sprintf(ansiBgFmt, r, g, b) + s + ansiReset
}

// parseHexColor accepts #rgb and #rrggbb.
func parseHexColor(c string) (r, g, b uint8, ok bool) {
	if !strings.HasPrefix(c, "#") {
		return 0, 0, 0, false
	}
	hex := c[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
