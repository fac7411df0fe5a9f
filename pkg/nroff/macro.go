package nroff

import "strings"

// handlerKind classifies what the parser does with a macro invocation.
type handlerKind int

const (
	// kindUntranslated emits the invocation verbatim.
	kindUntranslated handlerKind = iota

	// kindNoArg emits verbatim and warns when arguments are present.
	kindNoArg

	// kindTranslateJoined translates the concatenated argument string
	// as one unit.
	kindTranslateJoined

	// kindTranslateEach translates every argument independently.
	kindTranslateEach

	// kindInline embeds the invocation in the surrounding paragraph
	// instead of breaking it.
	kindInline

	// kindStructural runs a custom handler.
	kindStructural
)

// invocation is one parsed macro call.
type invocation struct {
	name string
	args string
	body string
	ref  Ref
}

// handler is one entry of the macro dispatch table.
type handler struct {
	kind      handlerKind
	keepFirst bool // TranslateEach: the first argument is an untranslated tag
	fn        func(p *Parser, inv invocation) error
}

// handleMacro dispatches one control line. Inline and font macros keep
// the current paragraph open; everything else flushes it first.
func (p *Parser) handleMacro(body string, ref Ref) error {
	name, args := macroName(body)
	if name == "" {
		return p.pushOutput(body + "\n")
	}
	inv := invocation{name: name, args: args, body: body, ref: ref}

	if fontMacroNames[name] {
		text, err := p.expandFontMacro(name, args, ref)
		if err != nil {
			return err
		}
		p.appendParagraph(text+"\n", ref)
		return nil
	}

	if h, ok := p.table[name]; ok && h.kind == kindInline {
		content := "." + name
		if args != "" {
			content += " " + args
		}
		p.appendParagraph("PO4A-INLINE:"+content+":PO4A-INLINE\n", ref)
		return nil
	}

	if err := p.flushParagraph(); err != nil {
		return err
	}

	if p.noWrapBegin[name] {
		p.wrap = WrapMacroNo
		return p.pushOutput(body + "\n")
	}
	if p.noWrapEnd[name] {
		p.wrap = WrapYes
		return p.pushOutput(body + "\n")
	}

	h, ok := p.table[name]
	if !ok {
		if mdocNames[name] && !p.mdoc {
			return parseErrorf(ref, "unexpected mdoc macro .%s before any .Dd", name)
		}
		return parseErrorf(ref, "unknown macro %q, add it to one of the macro lists", body)
	}

	switch h.kind {
	case kindUntranslated:
		return p.pushOutput(body + "\n")
	case kindNoArg:
		if args != "" {
			p.log.Warn("macro takes no argument, passing through",
				"macro", "."+name, "ref", ref.String())
		}
		return p.pushOutput(body + "\n")
	case kindTranslateJoined:
		return p.translateJoined(inv)
	case kindTranslateEach:
		return p.translateEach(inv, h.keepFirst)
	case kindStructural:
		return h.fn(p, inv)
	default:
		return p.pushOutput(body + "\n")
	}
}

// translateJoined translates the whole argument string as one message
// and re-emits the macro.
func (p *Parser) translateJoined(inv invocation) error {
	fields, err := p.splitMacroArgs(inv.args, inv.ref)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return p.pushOutput("." + inv.name + "\n")
	}
	t, err := p.translateString(strings.Join(fields, " "), inv.ref, "", false)
	if err != nil {
		return err
	}
	return p.pushOutput("." + inv.name + " " + quoteArg(t, p.sentinel) + "\n")
}

// translateEach translates every argument as its own message.
func (p *Parser) translateEach(inv invocation, keepFirst bool) error {
	fields, err := p.splitMacroArgs(inv.args, inv.ref)
	if err != nil {
		return err
	}
	out := "." + inv.name
	for i, f := range fields {
		if i == 0 && keepFirst {
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

// expandFontMacro rewrites a font macro into inline font escapes: .B
// and .I wrap all arguments in one font, the two-letter macros
// alternate fonts between arguments without intervening space.
func (p *Parser) expandFontMacro(name, args string, ref Ref) (string, error) {
	fields, err := p.splitMacroArgs(args, ref)
	if err != nil {
		return "", err
	}
	prefix := p.pendingFontPrefix
	p.pendingFontPrefix = ""

	if name == "B" || name == "I" {
		if len(fields) == 0 {
			return "", parseErrorf(ref, "font macro .%s without argument", name)
		}
		return prefix + `\f` + name + strings.Join(fields, " ") + `\fR`, nil
	}

	odd, even := name[:1], name[1:]
	if len(fields) == 0 {
		return prefix + `\f` + even + `\fR`, nil
	}
	var b strings.Builder
	b.WriteString(prefix)
	for i, f := range fields {
		if i%2 == 0 {
			b.WriteString(`\f` + odd)
		} else {
			b.WriteString(`\f` + even)
		}
		b.WriteString(f)
	}
	b.WriteString(`\fR`)
	return b.String(), nil
}
