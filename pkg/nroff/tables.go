package nroff

// buildTable assembles the macro dispatch table for man(7) plus the
// groff requests the transformer understands, then layers the
// user-configured macro lists on top.
func (p *Parser) buildTable() {
	t := map[string]handler{}

	structural := func(name string, fn func(*Parser, invocation) error) {
		t[name] = handler{kind: kindStructural, fn: fn}
	}
	kinds := func(kind handlerKind, names ...string) {
		for _, n := range names {
			t[n] = handler{kind: kind}
		}
	}

	// man(7) structure.
	structural("TH", handleTH)
	structural("SH", handleSection)
	structural("SS", handleSection)
	structural("TP", handleTP)
	structural("IP", handleIP)
	structural("UR", handleURL)
	structural("MT", handleURL)
	kinds(kindUntranslated, "UE", "ME")
	kinds(kindTranslateJoined, "UN", "SM", "SB")
	kinds(kindNoArg, "LP", "P", "PP", "RE", "DT")
	kinds(kindUntranslated, "RS", "HP", "PD", "AT", "UC")

	// groff requests.
	structural("de", handleGroffCode)
	structural("if", handleGroffCode)
	structural("ie", handleGroffCode)
	structural("el", handleGroffCode)
	structural("ds", handleDS)
	structural("ig", handleIG)
	structural("ta", handleTA)
	structural("TS", handleTS)
	structural("so", handleSO)
	structural("mso", handleSO)
	structural("ft", handleFT)
	structural("ce", handleLineAttr)
	structural("ul", handleLineAttr)
	structural("cu", handleLineAttr)
	structural("ec", handleEC)
	kinds(kindUntranslated,
		"ad", "br", "hy", "in", "na", "ne", "nh", "ps", "sp", "ti", "vs", "TE")

	// mdoc entry point; the rest of the dialect is installed on first
	// use.
	structural("Dd", handleDd)

	p.table = t
	p.noWrapBegin = map[string]bool{"nf": true, "EX": true, "EQ": true}
	p.noWrapEnd = map[string]bool{"fi": true, "EE": true, "EN": true}

	p.applyOptionLists()
}

// applyOptionLists layers the configured macro lists over the built-in
// table.
func (p *Parser) applyOptionLists() {
	set := func(names []string, kind handlerKind) {
		for _, n := range names {
			if n == "" {
				continue
			}
			p.table[n] = handler{kind: kind}
		}
	}
	set(p.opts.Untranslated, kindUntranslated)
	set(p.opts.NoArg, kindNoArg)
	set(p.opts.TranslateJoined, kindTranslateJoined)
	set(p.opts.TranslateEach, kindTranslateEach)
	set(p.opts.Inline, kindInline)

	for _, pair := range p.opts.NoWrap {
		begin, end, ok := cutPair(pair)
		if !ok {
			continue
		}
		p.noWrapBegin[begin] = true
		p.noWrapEnd[end] = true
	}
}

func cutPair(pair string) (string, string, bool) {
	for i := 0; i < len(pair); i++ {
		if pair[i] == ':' {
			begin, end := pair[:i], pair[i+1:]
			return begin, end, begin != "" && end != ""
		}
	}
	return "", "", false
}
