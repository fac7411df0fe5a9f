package nroff

import (
	"regexp"
	"strings"
)

// Fatal generator markers: documents produced by these tools must be
// translated at their source, so the document is rejected.
var fatalGenerators = []struct {
	marker string
	advice string
}{
	{"Pod::Man", "translate the POD source with the pod module instead of this generated page"},
	{"docbook-to-man", "translate the DocBook source instead of this generated page"},
	{"docbook2man", "translate the DocBook source instead of this generated page"},
	{"db2man.xsl", "translate the DocBook source instead of this generated page"},
}

// Soft generator markers only earn a warning; the page is usually still
// the preferred translation master.
var warnGenerators = []string{
	"help2man",
	"latex2man",
	"mtex2man",
	"DO NOT EDIT",
}

// fontMacroNames are the macros expanded into inline font escapes by
// the reader.
var fontMacroNames = map[string]bool{
	"B": true, "I": true,
	"BI": true, "BR": true, "IB": true, "IR": true, "RB": true, "RI": true,
}

// sectionBreakNames are the macros that terminate an orphan .B/.I
// instead of providing its argument.
var sectionBreakNames = map[string]bool{
	"SH": true, "TP": true, "P": true, "PP": true, "LP": true,
}

// leadingFontEscape matches one or more font escapes followed by
// whitespace at the start of a logical line.
var leadingFontEscape = regexp.MustCompile(`^((?:\\f(?:\(..|\[[^\]]*\]|.))+)([ \t]+)`)

// macroName extracts the macro name from a control line, without the
// leading dot, plus the argument string with leading blanks removed
// (trailing blanks are kept).
func macroName(line string) (string, string) {
	line = strings.TrimLeft(line[1:], " \t")
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i], strings.TrimLeft(line[i:], " \t")
	}
	return line, ""
}

func isControl(line string) bool {
	return len(line) > 0 && (line[0] == '.' || line[0] == '\'')
}

// normalizePhysical applies the per-line escape canonicalization and
// splits off a trailing comment. Macro lines lose one level of
// backslash doubling first (the request parser consumed one), then \\
// becomes \e everywhere so later font regexes are unambiguous, and \.
// becomes a plain dot.
func (p *Parser) normalizePhysical(text string, ref Ref) (code, comment string, hasComment bool, err error) {
	if isControl(text) {
		text = strings.ReplaceAll(text, `\\`, `\`)
	}
	text = strings.ReplaceAll(text, `\\`, `\e`)
	text = strings.ReplaceAll(text, `\.`, `.`)

	idx := strings.Index(text, `\"`)
	drop := false
	if j := strings.Index(text, `\#`); j >= 0 && (idx < 0 || j < idx) {
		idx = j
		drop = true
	}
	if idx < 0 {
		return text, "", false, nil
	}
	comment = text[idx+2:]
	if err := p.checkGenerator(comment, ref); err != nil {
		return "", "", false, err
	}
	if drop {
		// \# comments are dropped instead of being buffered.
		comment = ""
	}
	return text[:idx], comment, true, nil
}

func (p *Parser) checkGenerator(comment string, ref Ref) error {
	for _, g := range fatalGenerators {
		if strings.Contains(comment, g.marker) {
			return &GeneratedError{Ref: ref, Tool: g.marker, Advice: g.advice}
		}
	}
	for _, m := range warnGenerators {
		if strings.Contains(comment, m) {
			p.log.Warn("input looks like a generated page, check the real source",
				"marker", m, "ref", ref.String())
			break
		}
	}
	return nil
}

// shiftCode returns the next physical line that is not comment-only,
// normalized, routing comment-only lines to the pending buffer. Blank
// lines without a comment are returned with empty code.
func (p *Parser) shiftCode() (string, Ref, bool, error) {
	for {
		ln, ok := p.src.Shift()
		if !ok {
			return "", Ref{}, false, nil
		}
		code, comment, hasC, err := p.normalizePhysical(ln.Text, ln.Ref)
		if err != nil {
			return "", ln.Ref, false, err
		}
		if hasC {
			trimmed := strings.TrimRight(code, " \t")
			if trimmed == "" || trimmed == "." || trimmed == "'" {
				if strings.TrimSpace(comment) != "" {
					p.pendingComments = append(p.pendingComments, comment)
				}
				continue
			}
			if comment != "" {
				p.attachedComments = append(p.attachedComments, comment)
			}
		}
		return code, ln.Ref, true, nil
	}
}

// nextLogicalLine reassembles one logical line from physical lines:
// trailing-backslash continuations are merged, orphan .B/.I macros pick
// up their argument from the following line, comments are buffered, and
// the result always ends in exactly one newline. Conditionals and macro
// definitions are returned raw for their structural handlers.
func (p *Parser) nextLogicalLine() (string, Ref, bool, error) {
	for {
		ln, ok := p.src.Shift()
		if !ok {
			return "", Ref{}, false, nil
		}
		for _, raw := range []string{".if", ".ie", ".de"} {
			if strings.HasPrefix(ln.Text, raw) {
				return ln.Text + "\n", ln.Ref, true, nil
			}
		}
		p.src.Unshift(ln)

		line, ref, ok, err := p.shiftCode()
		if err != nil || !ok {
			return "", ref, ok, err
		}

		line, done, err := p.assemble(line, ref)
		if err != nil {
			return "", ref, false, err
		}
		if !done {
			// The orphan handling pushed rewritten lines back; start
			// over.
			continue
		}

		// A font escape directly followed by whitespace at the start of
		// a line would defeat paragraph-start detection; move the
		// whitespace in front of the escape.
		line = leadingFontEscape.ReplaceAllString(line, "$2$1")

		return line + "\n", ref, true, nil
	}
}

// assemble runs the continuation rules on one line. It returns
// done=false when the input was rewritten and pushed back for
// reprocessing.
func (p *Parser) assemble(line string, ref Ref) (string, bool, error) {
	prefix := ""
	for {
		if strings.HasSuffix(line, `\`) && !strings.HasSuffix(line, `\e`) {
			next, _, ok, err := p.shiftCode()
			if err != nil {
				return "", false, err
			}
			if !ok {
				return "", false, parseErrorf(ref, "escaped newline at end of file")
			}
			line = line[:len(line)-1] + next
			continue
		}

		trimmed := strings.TrimRight(line, " \t")
		if trimmed != ".B" && trimmed != ".I" {
			break
		}
		font := trimmed[1:]

		next, nref, ok, err := p.shiftCode()
		if err != nil {
			return "", false, err
		}
		if !ok {
			return "", false, parseErrorf(ref, "font macro %s without argument at end of file", trimmed)
		}

		if !isControl(next) {
			// Plain text: it becomes the single argument of the font
			// macro.
			quoted := strings.ReplaceAll(next, `"`, `\(dq`)
			line = trimmed + ` "` + quoted + `"`
			continue
		}

		name, args := macroName(next)
		switch {
		case fontMacroNames[name]:
			// Stack this font and let the next font macro take over.
			prefix += `\f` + font
			line = next
			continue
		case sectionBreakNames[name]:
			// The orphan font applies to whatever the section macro
			// introduces; reinject it as an inline escape.
			escape := prefix + `\f` + font
			if args != "" {
				p.src.Unshift(Line{Text: "." + name + " " + escape + args, Ref: nref})
			} else {
				p.src.Unshift(Line{Text: escape, Ref: nref})
				p.src.Unshift(Line{Text: next, Ref: nref})
			}
			return "", false, nil
		case name == "IP" && strings.HasPrefix(args, `"`):
			escape := prefix + `\f` + font
			rewritten := ".IP \"" + escape + strings.TrimPrefix(args, `"`)
			p.src.Unshift(Line{Text: rewritten, Ref: nref})
			return "", false, nil
		default:
			return "", false, parseErrorf(ref,
				"font macro %s followed by macro %q instead of an argument", trimmed, next)
		}
	}
	if prefix != "" {
		p.pendingFontPrefix = prefix
	}
	return line, true, nil
}
