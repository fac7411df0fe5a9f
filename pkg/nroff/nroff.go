// Package nroff implements the man-page side of the translation
// transformer: a line-level nroff parser that extracts translatable
// paragraphs, hands them to a catalog in a normalized surface form, and
// re-emits a faithful nroff document with the translations injected.
package nroff

import (
	"bufio"
	"fmt"
	"io"
)

// Ref locates a physical input line for diagnostics and catalog
// references.
type Ref struct {
	File string
	Line int
}

func (r Ref) String() string {
	return fmt.Sprintf("%s:%d", r.File, r.Line)
}

// Line is one physical input line (without its newline) plus the place
// it came from.
type Line struct {
	Text string
	Ref  Ref
}

// LineSource supplies physical lines to the parser. Shift returns the
// next line; Unshift pushes a line back so the next Shift returns it.
// Custom reading behavior is expressed by wrapping a LineSource, not by
// inheriting from the parser.
type LineSource interface {
	Shift() (Line, bool)
	Unshift(Line)
}

// bufferedSource reads lines from an io.Reader and keeps a push-back
// stack so the logical-line reader can look ahead.
type bufferedSource struct {
	sc     *bufio.Scanner
	file   string
	lineno int
	pushed []Line
	err    error
}

// NewSource returns a LineSource reading from r. name is used in source
// references and diagnostics.
func NewSource(r io.Reader, name string) LineSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &bufferedSource{sc: sc, file: name}
}

func (b *bufferedSource) Shift() (Line, bool) {
	if n := len(b.pushed); n > 0 {
		ln := b.pushed[n-1]
		b.pushed = b.pushed[:n-1]
		return ln, true
	}
	if !b.sc.Scan() {
		b.err = b.sc.Err()
		return Line{}, false
	}
	b.lineno++
	return Line{Text: b.sc.Text(), Ref: Ref{File: b.file, Line: b.lineno}}, true
}

func (b *bufferedSource) Unshift(ln Line) {
	b.pushed = append(b.pushed, ln)
}
