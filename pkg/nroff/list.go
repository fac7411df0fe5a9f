package nroff

import "sort"

// MacroInfo describes one entry of the dispatch table for display.
type MacroInfo struct {
	Name string
	Kind string
}

func (k handlerKind) String() string {
	switch k {
	case kindUntranslated:
		return "untranslated"
	case kindNoArg:
		return "no-arg"
	case kindTranslateJoined:
		return "translate-joined"
	case kindTranslateEach:
		return "translate-each"
	case kindInline:
		return "inline"
	case kindStructural:
		return "structural"
	}
	return "unknown"
}

// MacroList returns the dispatch table that opts would produce, sorted
// by macro name. Mdoc entries are included when mdoc is true.
func MacroList(opts Options, mdoc bool) []MacroInfo {
	p := &Parser{opts: opts}
	p.buildTable()
	if mdoc {
		p.installMdocTable()
	}

	list := make([]MacroInfo, 0, len(p.table)+len(p.noWrapBegin)+len(p.noWrapEnd))
	for name, h := range p.table {
		list = append(list, MacroInfo{Name: name, Kind: h.kind.String()})
	}
	for name := range p.noWrapBegin {
		list = append(list, MacroInfo{Name: name, Kind: "no-wrap-begin"})
	}
	for name := range p.noWrapEnd {
		list = append(list, MacroInfo{Name: name, Kind: "no-wrap-end"})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
