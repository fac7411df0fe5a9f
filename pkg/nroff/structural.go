package nroff

import (
	"strconv"
	"strings"
)

// banner is the comment block emitted once, immediately before the
// first .TH or .Dd.
const banner = `.\"*******************************************************************
.\"
.\" This file was generated with po4a. Translate the source file.
.\"
.\"*******************************************************************
`

func (p *Parser) emitBanner() error {
	if p.bannerDone {
		return nil
	}
	p.bannerDone = true
	return p.pushOutput(banner)
}

// handleTH emits the banner and the title line. Title, date, source and
// manual are translated; the section number is preserved.
func handleTH(p *Parser, inv invocation) error {
	if err := p.emitBanner(); err != nil {
		return err
	}
	p.mdoc = false

	fields, err := p.splitMacroArgs(inv.args, inv.ref)
	if err != nil {
		return err
	}
	out := "." + inv.name
	for i, f := range fields {
		if i == 1 {
			out += " " + quoteArg(f, p.sentinel)
			continue
		}
		t, err := p.translateString(f, inv.ref, "", false)
		if err != nil {
			return err
		}
		out += " " + quoteArg(t, p.sentinel)
	}
	return p.pushOutput(out + "\n")
}

// handleSection translates .SH/.SS headings. The regular font is B
// inside a heading. A heading whose argument sits on the next line is
// consumed from there, unless that line opens a macro.
func handleSection(p *Parser, inv invocation) error {
	if inv.args == "" {
		line, ref, ok, err := p.nextLogicalLine()
		if err != nil {
			return err
		}
		if !ok {
			return p.pushOutput(inv.body + "\n")
		}
		body := strings.TrimSuffix(line, "\n")
		if isControl(body) {
			p.src.Unshift(Line{Text: body, Ref: ref})
			return p.pushOutput(inv.body + "\n")
		}
		p.fonts.SetRegular("B")
		t, err := p.translateString(body, ref, "", false)
		p.fonts.SetRegular("R")
		if err != nil {
			return err
		}
		return p.pushOutput("." + inv.name + "\n" + t + "\n")
	}

	fields, err := p.splitMacroArgs(inv.args, inv.ref)
	if err != nil {
		return err
	}
	p.fonts.SetRegular("B")
	t, err := p.translateString(strings.Join(fields, " "), inv.ref, "", false)
	p.fonts.SetRegular("R")
	if err != nil {
		return err
	}
	return p.pushOutput("." + inv.name + " " + quoteArg(t, p.sentinel) + "\n")
}

// handleTP emits the macro verbatim and translates the tag line that
// follows it without wrapping. Interleaved .PD lines pass through.
func handleTP(p *Parser, inv invocation) error {
	if err := p.pushOutput(inv.body + "\n"); err != nil {
		return err
	}
	for {
		line, ref, ok, err := p.nextLogicalLine()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		body := strings.TrimSuffix(line, "\n")
		if isControl(body) {
			name, args := macroName(body)
			if name == "PD" {
				if err := p.pushOutput(body + "\n"); err != nil {
					return err
				}
				continue
			}
			if fontMacroNames[name] {
				text, err := p.expandFontMacro(name, args, ref)
				if err != nil {
					return err
				}
				t, err := p.translateString(text, ref, "", false)
				if err != nil {
					return err
				}
				if err := p.pushOutput(t + "\n"); err != nil {
					return err
				}
				break
			}
			if h, ok := p.table[name]; ok && h.kind == kindInline {
				fields, err := p.splitMacroArgs(args, ref)
				if err != nil {
					return err
				}
				t, err := p.translateString(strings.Join(fields, " "), ref, "", false)
				if err != nil {
					return err
				}
				if err := p.pushOutput("." + name + " " + quoteArg(t, p.sentinel) + "\n"); err != nil {
					return err
				}
				break
			}
			p.src.Unshift(Line{Text: body, Ref: ref})
			break
		}
		t, err := p.translateString(body, ref, "", false)
		if err != nil {
			return err
		}
		if err := p.pushOutput(t + "\n"); err != nil {
			return err
		}
		break
	}
	p.fonts.SetRegular(p.fonts.Regular())
	return nil
}

// handleIP translates the tag argument and keeps the indent value.
func handleIP(p *Parser, inv invocation) error {
	fields, err := p.splitMacroArgs(inv.args, inv.ref)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return p.pushOutput(inv.body + "\n")
	}
	t, err := p.translateString(fields[0], inv.ref, "", false)
	if err != nil {
		return err
	}
	out := "." + inv.name + " " + quoteArg(t, p.sentinel)
	for _, f := range fields[1:] {
		out += " " + quoteArg(f, p.sentinel)
	}
	return p.pushOutput(out + "\n")
}

// handleURL covers .UR and .MT. A lone ":" argument means "no
// hyperlink support", kept verbatim.
func handleURL(p *Parser, inv invocation) error {
	if strings.TrimSpace(inv.args) == ":" {
		return p.pushOutput(inv.body + "\n")
	}
	return p.translateJoined(inv)
}

// handleGroffCode implements the .de/.ie/.if policy. Blocks are
// accumulated from raw physical lines: until the closing ".." for a
// definition, until \{ and \} balance for a conditional, and an .ie
// block swallows its .el counterpart.
func handleGroffCode(p *Parser, inv invocation) error {
	if p.opts.GroffCode == GroffCodeFail || p.opts.GroffCode == "" {
		return parseErrorf(inv.ref,
			"groff request .%s is not handled, set the groff_code option to verbatim or translate", inv.name)
	}

	block, err := p.collectGroffBlock(inv)
	if err != nil {
		return err
	}

	if p.opts.GroffCode == GroffCodeVerbatim {
		for _, l := range block {
			if err := p.pushOutput(l + "\n"); err != nil {
				return err
			}
		}
		return nil
	}

	joined := strings.Join(block, "\n")
	t := p.cat.Translate(joined, inv.ref, "groff code", TranslateOptions{Wrap: false})
	return p.pushOutput(strings.TrimRight(t, "\n") + "\n")
}

func (p *Parser) collectGroffBlock(inv invocation) ([]string, error) {
	block := []string{inv.body}
	switch inv.name {
	case "de":
		for {
			ln, ok := p.src.Shift()
			if !ok {
				return nil, parseErrorf(inv.ref, "end of file inside a macro definition")
			}
			block = append(block, ln.Text)
			if strings.TrimRight(ln.Text, " \t") == ".." {
				return block, nil
			}
		}
	case "if", "ie", "el":
		depth := braceDepth(inv.body)
		for depth > 0 {
			ln, ok := p.src.Shift()
			if !ok {
				return nil, parseErrorf(inv.ref, "end of file inside a conditional block")
			}
			block = append(block, ln.Text)
			depth += braceDepth(ln.Text)
		}
		if inv.name == "ie" {
			ln, ok := p.src.Shift()
			if !ok || !strings.HasPrefix(ln.Text, ".el") {
				return nil, parseErrorf(inv.ref, ".ie without a matching .el")
			}
			rest, err := p.collectGroffBlock(invocation{name: "el", body: ln.Text, ref: ln.Ref})
			if err != nil {
				return nil, err
			}
			block = append(block, rest...)
		}
		return block, nil
	}
	return block, nil
}

func braceDepth(line string) int {
	return strings.Count(line, `\{`) - strings.Count(line, `\}`)
}

// handleDS translates a string definition; the catalog type carries the
// string name so cross-references remain findable.
func handleDS(p *Parser, inv invocation) error {
	name, value := "", ""
	if i := strings.IndexAny(inv.args, " \t"); i >= 0 {
		name, value = inv.args[:i], strings.TrimLeft(inv.args[i:], " \t")
	} else {
		name = inv.args
	}
	if value == "" {
		return p.pushOutput(inv.body + "\n")
	}
	pre, err := p.preTrans(value, inv.ref)
	if err != nil {
		return err
	}
	msgstr := p.cat.Translate(strings.TrimRight(pre, "\n"), inv.ref, "ds "+name, TranslateOptions{Wrap: false})
	t, err := p.postTrans(msgstr, inv.ref)
	if err != nil {
		return err
	}
	return p.pushOutput(".ds " + name + " " + strings.TrimRight(t, "\n") + "\n")
}

// handleIG passes an ignored block through verbatim, up to its
// terminator.
func handleIG(p *Parser, inv invocation) error {
	if err := p.pushOutput(inv.body + "\n"); err != nil {
		return err
	}
	term := ".."
	if f := strings.Fields(inv.args); len(f) > 0 {
		term = "." + f[0]
	}
	for {
		ln, ok := p.src.Shift()
		if !ok {
			return parseErrorf(inv.ref, "end of file inside an ignored block (.ig)")
		}
		if err := p.pushOutput(ln.Text + "\n"); err != nil {
			return err
		}
		if strings.TrimRight(ln.Text, " \t") == term {
			return nil
		}
	}
}

// handleTA translates tab stop definitions; they may carry visible
// text.
func handleTA(p *Parser, inv invocation) error {
	if strings.TrimSpace(inv.args) == "" {
		return p.pushOutput(inv.body + "\n")
	}
	t, err := p.translateString(inv.args, inv.ref, "", false)
	if err != nil {
		return err
	}
	return p.pushOutput("." + inv.name + " " + t + "\n")
}

// handleTS copies the tbl header verbatim up to the format terminator,
// then translates each data cell.
func handleTS(p *Parser, inv invocation) error {
	if err := p.pushOutput(inv.body + "\n"); err != nil {
		return err
	}
	for {
		ln, ok := p.src.Shift()
		if !ok {
			return parseErrorf(inv.ref, "end of file inside a table (.TS)")
		}
		if err := p.pushOutput(ln.Text + "\n"); err != nil {
			return err
		}
		if strings.HasSuffix(strings.TrimRight(ln.Text, " \t"), ".") {
			break
		}
	}
	for {
		ln, ok := p.src.Shift()
		if !ok {
			return parseErrorf(inv.ref, "end of file inside a table (.TS)")
		}
		if strings.TrimRight(ln.Text, " \t") == ".TE" {
			return p.pushOutput(ln.Text + "\n")
		}
		cells := strings.Split(ln.Text, "\t")
		for i, c := range cells {
			pre, err := p.preTrans(c, ln.Ref)
			if err != nil {
				return err
			}
			msgstr := p.cat.Translate(strings.TrimRight(pre, "\n"), ln.Ref, "tbl table", TranslateOptions{Wrap: false})
			t, err := p.postTrans(msgstr, ln.Ref)
			if err != nil {
				return err
			}
			cells[i] = strings.TrimRight(t, "\n")
		}
		if err := p.pushOutput(strings.Join(cells, "\t") + "\n"); err != nil {
			return err
		}
	}
}

// handleSO rejects file inclusion.
func handleSO(p *Parser, inv invocation) error {
	return parseErrorf(inv.ref, "including other files is not supported (.%s %s)", inv.name, inv.args)
}

// handleFT updates the font stack; without an argument the request
// switches back to the previous font.
func handleFT(p *Parser, inv invocation) error {
	arg := strings.TrimSpace(inv.args)
	if arg == "" {
		p.fonts.Apply("P")
	} else {
		p.fonts.Apply(arg)
	}
	return p.pushOutput(inv.body + "\n")
}

// handleLineAttr rejects .ce/.ul/.cu with a positive count; a zero
// count only cancels a pending one and passes through.
func handleLineAttr(p *Parser, inv invocation) error {
	n := 1
	if f := strings.Fields(inv.args); len(f) > 0 {
		if v, err := strconv.Atoi(f[0]); err == nil {
			n = v
		}
	}
	if n > 0 {
		return parseErrorf(inv.ref, "request .%s with a positive count is not supported", inv.name)
	}
	return p.pushOutput(inv.body + "\n")
}

// handleEC rejects changing the escape character.
func handleEC(p *Parser, inv invocation) error {
	if strings.TrimSpace(inv.args) != "" {
		return parseErrorf(inv.ref, "changing the escape character (.ec) is not supported")
	}
	return p.pushOutput(inv.body + "\n")
}

// handleDd switches the document into mdoc mode, installs the mdoc
// macro table and translates the date.
func handleDd(p *Parser, inv invocation) error {
	if err := p.emitBanner(); err != nil {
		return err
	}
	p.mdoc = true
	p.installMdocTable()

	fields, err := p.splitMacroArgs(inv.args, inv.ref)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return p.pushOutput(inv.body + "\n")
	}
	t, err := p.translateString(strings.Join(fields, " "), inv.ref, "", false)
	if err != nil {
		return err
	}
	return p.pushOutput(".Dd " + t + "\n")
}
