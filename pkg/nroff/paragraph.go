package nroff

import "strings"

// wrapMode says whether the catalog may reflow the current paragraph.
type wrapMode int

const (
	// WrapYes permits reflowing. The default.
	WrapYes wrapMode = iota

	// WrapNo suppresses reflowing for the current paragraph only; a
	// leading-whitespace line was seen.
	WrapNo

	// WrapMacroNo suppresses reflowing until a no-wrap-end macro.
	WrapMacroNo
)

// appendParagraph adds one line of text to the paragraph buffer. The
// first line fixes the paragraph's source reference.
func (p *Parser) appendParagraph(text string, ref Ref) {
	if p.para.Len() == 0 {
		p.paraRef = ref
	}
	p.para.WriteString(text)
}

// flushParagraph translates and emits the buffered paragraph, preceded
// by its comments, and demotes WrapNo back to WrapYes. Comments stay
// buffered until a paragraph exists for them to attach to.
func (p *Parser) flushParagraph() error {
	text := p.para.String()
	p.para.Reset()

	if text != "" {
		comments := append(p.pendingComments, p.attachedComments...)
		p.pendingComments, p.attachedComments = nil, nil
		for _, c := range comments {
			if err := p.pushOutput(`.\"` + c + "\n"); err != nil {
				return err
			}
		}
		out, err := p.translateParagraph(text, p.paraRef, p.wrap == WrapYes, strings.Join(comments, "\n"))
		if err != nil {
			return err
		}
		if err := p.pushOutput(out); err != nil {
			return err
		}
	}

	if p.wrap == WrapNo {
		p.wrap = WrapYes
	}
	return nil
}

// translateParagraph runs the full pre → catalog → post pipeline on one
// paragraph. The result ends with exactly one newline, or is empty when
// nothing translatable remains after the pre-transform.
func (p *Parser) translateParagraph(text string, ref Ref, wrap bool, comment string) (string, error) {
	pre, err := p.preTrans(text, ref)
	if err != nil {
		return "", err
	}
	msgid := strings.TrimRight(pre, "\n")
	if msgid == "" {
		return "", nil
	}
	msgstr := p.cat.Translate(msgid, ref, "", TranslateOptions{Wrap: wrap, Comment: comment})
	out, err := p.postTrans(msgstr, ref)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

// translateString translates a macro argument or tag line; no leading
// newlines, no trailing newline on the result.
func (p *Parser) translateString(s string, ref Ref, typ string, wrap bool) (string, error) {
	pre, err := p.preTrans(s, ref)
	if err != nil {
		return "", err
	}
	msgid := strings.TrimRight(pre, "\n")
	if msgid == "" {
		return "", nil
	}
	msgstr := p.cat.Translate(msgid, ref, typ, TranslateOptions{Wrap: wrap})
	out, err := p.postTrans(msgstr, ref)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
