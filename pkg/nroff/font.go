package nroff

import (
	"strings"
)

// FontStack tracks the current, previous and regular font for one
// document. Inline \f escapes, .ft, the heading macros and the
// paragraph-reset macros all mutate it in place.
type FontStack struct {
	current  string
	previous string
	regular  string
}

// NewFontStack returns a stack with every slot set to the roman font.
func NewFontStack() *FontStack {
	return &FontStack{current: "R", previous: "R", regular: "R"}
}

// Regular returns the ambient font for the enclosing context.
func (f *FontStack) Regular() string { return f.regular }

// SetRegular changes the ambient font and switches to it. Section
// headings set B on entry and restore R on exit.
func (f *FontStack) SetRegular(font string) {
	f.regular = font
	f.set(font)
}

// Apply updates the stack for one font selector, using the escape
// naming rules: P and the empty bracket forms swap with the previous
// font, digits 1-4 map to the classical positions, two-letter names
// carry a leading parenthesis.
func (f *FontStack) Apply(selector string) {
	switch selector {
	case "P", "[]", "[P]":
		f.current, f.previous = f.previous, f.current
		return
	case "1":
		f.set("R")
		return
	case "2":
		f.set("I")
		return
	case "3":
		f.set("B")
		return
	case "4":
		f.set("(BI")
		return
	}
	if strings.HasPrefix(selector, "[") && strings.HasSuffix(selector, "]") {
		name := selector[1 : len(selector)-1]
		switch len(name) {
		case 1:
			f.set(name)
		case 2:
			f.set("(" + name)
		default:
			f.set(selector)
		}
		return
	}
	if len(selector) == 2 && !strings.HasPrefix(selector, "(") {
		f.set("(" + selector)
		return
	}
	f.set(selector)
}

func (f *FontStack) set(font string) {
	if font == f.current {
		return
	}
	f.previous = f.current
	f.current = font
}

// surfaceName maps an internal font name to its translator-visible
// marker, or "" for fonts that stay as raw escapes.
func surfaceName(font string) string {
	switch font {
	case "B", "I", "R":
		return font
	case "(CW":
		return "CW"
	}
	return ""
}

// escapeSelector re-emits an internal font name as the text that
// follows \f in nroff source.
func escapeSelector(font string) string {
	if len(font) > 2 && !strings.HasPrefix(font, "(") && !strings.HasPrefix(font, "[") {
		return "[" + font + "]"
	}
	return font
}

type fontEvent struct {
	font string
	text string
}

// Rewrite replaces the inline \f escapes of one paragraph with surface
// markup. Fonts with a marker form (B, I, R, CW) other than the regular
// font become X<text>; other fonts stay as raw escapes with the regular
// font restored afterwards. The carried-over stack state is preserved
// by prepending the previous and current selectors before splitting.
func (f *FontStack) Rewrite(s string, ref Ref) (string, error) {
	// Trailing newlines belong to the paragraph, not to the last font
	// run.
	trail := ""
	for strings.HasSuffix(s, "\n") {
		s = s[:len(s)-1]
		trail += "\n"
	}

	s = `\f` + escapeSelector(f.previous) + `\f` + escapeSelector(f.current) + s

	parts := strings.Split(s, `\f`)
	events := make([]fontEvent, 0, len(parts))
	for _, part := range parts[1:] {
		sel, text, err := splitSelector(part, ref)
		if err != nil {
			return "", err
		}
		f.Apply(sel)
		events = append(events, fontEvent{font: f.current, text: text})
	}

	// Collapse runs of the same font and elide empty fragments; a
	// selector with no text only matters for its effect on the stack,
	// which Apply already recorded.
	merged := events[:0]
	for _, ev := range events {
		if n := len(merged); n > 0 && merged[n-1].font == ev.font {
			merged[n-1].text += ev.text
			continue
		}
		if ev.text == "" {
			continue
		}
		merged = append(merged, ev)
	}

	var b strings.Builder
	rawOpen := false
	for _, ev := range merged {
		switch {
		case ev.font == f.regular:
			if rawOpen {
				b.WriteString(`\f` + escapeSelector(f.regular))
				rawOpen = false
			}
			b.WriteString(ev.text)
		case surfaceName(ev.font) != "":
			b.WriteString(surfaceName(ev.font) + "<" + ev.text + ">")
		default:
			b.WriteString(`\f` + escapeSelector(ev.font) + ev.text)
			rawOpen = true
		}
	}
	if rawOpen {
		b.WriteString(`\f` + escapeSelector(f.regular))
	}
	return b.String() + trail, nil
}

// splitSelector consumes the font selector at the start of a fragment
// produced by splitting on \f, returning the selector and the
// remaining text.
func splitSelector(part string, ref Ref) (string, string, error) {
	if part == "" {
		return "", "", parseErrorf(ref, "incomplete font escape at end of input")
	}
	switch part[0] {
	case '(':
		if len(part) < 3 {
			return "", "", parseErrorf(ref, "truncated two-letter font escape %q", `\f`+part)
		}
		return part[:3], part[3:], nil
	case '[':
		end := strings.IndexByte(part, ']')
		if end < 0 {
			return "", "", parseErrorf(ref, "unterminated bracketed font escape %q", `\f`+part)
		}
		return part[:end+1], part[end+1:], nil
	default:
		return part[:1], part[1:], nil
	}
}
