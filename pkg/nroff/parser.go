package nroff

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Parser transforms one nroff document. All state is per document;
// concurrent documents each get their own Parser.
type Parser struct {
	src  LineSource
	cat  Catalog
	out  *bufio.Writer
	opts Options
	log  *log.Logger

	sentinel    string
	fonts       *FontStack
	table       map[string]handler
	noWrapBegin map[string]bool
	noWrapEnd   map[string]bool

	wrap    wrapMode
	para    strings.Builder
	paraRef Ref

	attachedComments []string
	pendingComments  []string

	pendingFontPrefix string
	mdoc              bool
	bannerDone        bool
	werr              error
}

// NewParser builds a parser reading physical lines from src, resolving
// messages through cat and writing the reproduced document to out.
func NewParser(src LineSource, cat Catalog, out io.Writer, opts Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	p := &Parser{
		src:      src,
		cat:      cat,
		out:      bufio.NewWriter(out),
		opts:     opts,
		log:      logger,
		sentinel: nbspSentinel(opts.Charset),
		fonts:    NewFontStack(),
		wrap:     WrapYes,
	}
	p.buildTable()
	return p
}

// Run processes the document until EOF. The first fatal diagnostic
// aborts the document; partial output is not guaranteed to be valid.
func (p *Parser) Run() error {
	for {
		line, ref, ok, err := p.nextLogicalLine()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := p.processLine(line, ref); err != nil {
			return err
		}
	}
	if err := p.flushParagraph(); err != nil {
		return err
	}
	// Comments with nothing left to attach to still appear exactly
	// once.
	leftover := append(p.pendingComments, p.attachedComments...)
	p.pendingComments, p.attachedComments = nil, nil
	for _, c := range leftover {
		if err := p.pushOutput(`.\"` + c + "\n"); err != nil {
			return err
		}
	}
	if p.werr != nil {
		return p.werr
	}
	return p.out.Flush()
}

// processLine routes one logical line to the paragraph accumulator or
// the macro dispatcher.
func (p *Parser) processLine(line string, ref Ref) error {
	body := strings.TrimSuffix(line, "\n")

	if strings.TrimSpace(body) == "" {
		if err := p.flushParagraph(); err != nil {
			return err
		}
		return p.pushOutput(body + "\n")
	}

	if isControl(body) {
		return p.handleMacro(body, ref)
	}

	if (body[0] == ' ' || body[0] == '\t') && p.wrap == WrapYes {
		p.wrap = WrapNo
	}
	p.appendParagraph(line, ref)
	return nil
}

// splitMacroArgs tokenizes macro arguments with the document sentinel
// and feeds the splitargs debug stream.
func (p *Parser) splitMacroArgs(args string, ref Ref) ([]string, error) {
	fields, err := splitArgs(args, p.sentinel, ref)
	if err != nil {
		return nil, err
	}
	if p.opts.debugEnabled(DebugSplitArgs) {
		p.log.Debug("split macro arguments", "stream", DebugSplitArgs,
			"ref", ref.String(), "args", strings.Join(fields, "|"))
	}
	return fields, nil
}

func (p *Parser) pushOutput(s string) error {
	if p.werr != nil {
		return p.werr
	}
	if _, err := p.out.WriteString(s); err != nil {
		p.werr = err
		return err
	}
	return nil
}
