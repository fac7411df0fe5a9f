package nroff

import (
	"regexp"
	"strings"
)

// inlineMarker is the parser-internal wrapping of inline macros inside
// a paragraph, folded into E<…> surface markup before translation.
var inlineMarker = regexp.MustCompile(`PO4A-INLINE:(.*?):PO4A-INLINE`)

// markerOpen matches the opening of a font surface marker.
var markerOpen = regexp.MustCompile(`(CW|B|I|R)<`)

// macroLineShield protects macro invocations emitted by the
// transformer itself from the first-column escape guard.
const macroLineShield = "\x01"

// trailingPunct are the mdoc punctuation tokens migrated outside E<…>
// so the translator still sees them.
var trailingPunct = ".,;:)]"

func splitTrailingPunct(s string) (string, string, bool) {
	if len(s) >= 2 && strings.ContainsRune(trailingPunct, rune(s[len(s)-1])) {
		head := strings.TrimRight(s[:len(s)-1], " ")
		if head != "" && len(head) < len(s)-1 {
			return head, s[len(s)-1:], true
		}
	}
	return s, "", false
}

// preTrans converts nroff text into the translator surface form: angle
// brackets become E<lt>/E<gt>, inline-macro markers fold into E<…>,
// font escapes become B<…>/I<…>/R<…>/CW<…>, and the glyph
// transliterations give the translator plain quotes and hyphens.
// Leading newlines are re-emitted directly so the catalog never sees a
// newline-only message.
func (p *Parser) preTrans(s string, ref Ref) (string, error) {
	if strings.Contains(s, `\c`) {
		return "", parseErrorf(ref, `escape \c is not handled, remove it from the source`)
	}

	s = strings.ReplaceAll(s, ">", "E<gt>")
	s = strings.ReplaceAll(s, "<", "E<lt>")
	s = strings.ReplaceAll(s, "EE<lt>gt>", "E<gt>")

	s = inlineMarker.ReplaceAllStringFunc(s, func(m string) string {
		content := m[len("PO4A-INLINE:") : len(m)-len(":PO4A-INLINE")]
		if p.mdoc {
			if head, punct, ok := splitTrailingPunct(content); ok {
				return "E<" + head + ">" + punct
			}
		}
		return "E<" + content + ">"
	})

	s, err := p.fonts.Rewrite(s, ref)
	if err != nil {
		return "", err
	}
	if p.opts.debugEnabled(DebugFonts) {
		p.log.Debug("font stack rewrite", "stream", DebugFonts,
			"ref", ref.String(), "regular", p.fonts.Regular(), "text", s)
	}

	for strings.HasPrefix(s, "\n") {
		p.pushOutput("\n")
		s = s[1:]
	}

	if !p.mdoc {
		s = strings.ReplaceAll(s, `\-`, "-")
		s = strings.ReplaceAll(s, `\*(lq`, "``")
		s = strings.ReplaceAll(s, `\*(rq`, "''")
		s = strings.ReplaceAll(s, `\(dq`, `"`)
	}
	s = strings.ReplaceAll(s, p.sentinel, `\ `)

	if p.opts.debugEnabled(DebugPreTrans) {
		p.log.Debug("pre-translation transform", "stream", DebugPreTrans, "ref", ref.String(), "text", s)
	}
	return s, nil
}

// postTrans is the inverse transform, applied to the translated string:
// surface markers expand back to font escapes, inline macros regain
// their own lines, hyphens become \- again, and lines that would start
// with a control character get a zero-width escape.
func (p *Parser) postTrans(s string, ref Ref) (string, error) {
	s = escapeHyphens(s)
	s = collapseInlineNewlines(s)

	var err error
	s, err = expandFontMarkers(s, ref, p.fonts.Regular())
	if err != nil {
		return "", err
	}
	s, err = p.expandInlineMacros(s, ref)
	if err != nil {
		return "", err
	}

	s = strings.ReplaceAll(s, "E<gt>", ">")
	s = strings.ReplaceAll(s, "E<lt>", "<")
	if !p.mdoc {
		s = strings.ReplaceAll(s, "``", `\*(lq`)
		s = strings.ReplaceAll(s, "''", `\*(rq`)
	}

	s = guardControlLines(s)

	s = strings.ReplaceAll(s, nbsp, `\ `)
	s = strings.ReplaceAll(s, `\ `+"\n", `\ `)

	if p.opts.debugEnabled(DebugPostTrans) {
		p.log.Debug("post-translation transform", "stream", DebugPostTrans, "ref", ref.String(), "text", s)
	}
	return s, nil
}

// escapeHyphens converts plain hyphens back to \- except where the
// hyphen is part of a font-size escape, a named glyph, or a horizontal
// motion, where the character is syntax rather than text.
func escapeHyphens(s string) string {
	s = strings.ReplaceAll(s, `\-`, "-")
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for i := 0; i < len(s); {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 's':
				b.WriteString(s[i : i+2])
				i += 2
				if i < len(s) && (s[i] == '+' || s[i] == '-') {
					b.WriteByte(s[i])
					i++
				}
			case '(':
				end := min(i+4, len(s))
				b.WriteString(s[i:end])
				i = end
			case 'h':
				if i+2 < len(s) && s[i+2] == '\'' {
					if close := strings.IndexByte(s[i+3:], '\''); close >= 0 {
						end := i + 3 + close + 1
						b.WriteString(s[i:end])
						i = end
						continue
					}
				}
				b.WriteString(s[i : i+2])
				i += 2
			default:
				b.WriteString(s[i : i+2])
				i += 2
			}
			continue
		}
		if c == '-' {
			b.WriteString(`\-`)
			i++
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

// matchAngle returns the index of the '>' matching the '<' at open,
// or -1.
func matchAngle(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// collapseInlineNewlines joins any newline that the catalog wrapped
// into the middle of an E<.…> inline macro.
func collapseInlineNewlines(s string) string {
	out := s
	from := 0
	for {
		idx := strings.Index(out[from:], "E<.")
		if idx < 0 {
			return out
		}
		idx += from
		close := matchAngle(out, idx+1)
		if close < 0 {
			return out
		}
		inner := strings.ReplaceAll(out[idx:close], "\n", " ")
		out = out[:idx] + inner + out[close:]
		from = idx + len(inner) + 1
	}
}

// expandFontMarkers rewrites every X<…> surface marker back to font
// escapes. A top-level marker closes by selecting the regular font; a
// nested marker closes with \fP so the enclosing font is restored.
// Unbalanced brackets are a fatal user error.
func expandFontMarkers(s string, ref Ref, regular string) (string, error) {
	return expandMarkers(s, ref, regular, true)
}

func expandMarkers(s string, ref Ref, regular string, top bool) (string, error) {
	var b strings.Builder
	i := 0
	for i < len(s) {
		loc := markerOpen.FindStringSubmatchIndex(s[i:])
		if loc == nil {
			b.WriteString(s[i:])
			break
		}
		start := i + loc[0]
		open := i + loc[1] - 1
		close := matchAngle(s, open)
		if close < 0 {
			return "", parseErrorf(ref, "unbalanced '<' and '>' in font modifier: %s", s)
		}
		font := s[i+loc[2] : i+loc[3]]
		if font == "CW" {
			font = "(CW"
		}
		inner, err := expandMarkers(s[open+1:close], ref, regular, false)
		if err != nil {
			return "", err
		}
		closeEsc := `\fP`
		if top {
			closeEsc = `\f` + escapeSelector(regular)
		}
		b.WriteString(s[i:start])
		b.WriteString(`\f` + font + inner + closeEsc)
		i = close + 1
	}
	return b.String(), nil
}

// expandInlineMacros gives every E<.macro …> inline its own output
// line, pulling surrounding whitespace onto the neighboring lines and,
// in mdoc mode, restoring the punctuation migrated by preTrans.
func (p *Parser) expandInlineMacros(s string, ref Ref) (string, error) {
	for {
		idx := strings.Index(s, "E<.")
		if idx < 0 {
			break
		}
		close := matchAngle(s, idx+1)
		if close < 0 {
			return "", parseErrorf(ref, "unbalanced '<' and '>' in inline macro: %s", s)
		}
		call := strings.ReplaceAll(s[idx+2:close], "\n", " ")

		before := strings.TrimRight(s[:idx], " \t")
		if before != "" && !strings.HasSuffix(before, "\n") {
			before += "\n"
		}
		after := s[close+1:]
		if p.mdoc && after != "" && strings.ContainsRune(trailingPunct, rune(after[0])) {
			call += " " + after[:1]
			after = after[1:]
		}
		after = strings.TrimLeft(after, " \t")
		after = strings.TrimPrefix(after, "\n")

		s = before + macroLineShield + call + "\n" + after
	}
	return s, nil
}

// guardControlLines prefixes \& to any line whose first character
// would otherwise be parsed as a request, skipping macro lines emitted
// by the transformer itself. A continuation line cannot take the
// zero-width escape, so its control character is disarmed with a
// leading space instead.
func guardControlLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, macroLineShield) {
			lines[i] = strings.TrimPrefix(l, macroLineShield)
			continue
		}
		if !startsWithControl(l) {
			continue
		}
		prev := ""
		if i > 0 {
			prev = lines[i-1]
		}
		if strings.HasSuffix(prev, `\`) && !strings.HasSuffix(prev, `\e`) {
			lines[i] = " " + l
		} else {
			lines[i] = `\&` + l
		}
	}
	return strings.Join(lines, "\n")
}

// startsWithControl reports whether a line opens with '.' or '\'',
// possibly behind leading font escapes.
func startsWithControl(l string) bool {
	for strings.HasPrefix(l, `\f`) {
		_, rest, err := splitSelector(l[2:], Ref{})
		if err != nil {
			return false
		}
		l = rest
	}
	return len(l) > 0 && (l[0] == '.' || l[0] == '\'')
}
