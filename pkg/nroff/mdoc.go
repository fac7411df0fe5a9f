package nroff

// mdocInline are the mdoc domain macros embedded into the surrounding
// paragraph as E<…> markup, including the reference (%X) macros.
var mdocInline = []string{
	"Ad", "An", "Ao", "Ac", "Ar", "Bf", "Bo", "Bc", "Bx", "Cd", "Cm",
	"Dv", "Do", "Dc", "Dq", "Ef", "Em", "Er", "Ev", "Fa", "Fd", "Fl",
	"Fn", "Fo", "Fc", "Ft", "Fx", "Ic", "Li", "Lk", "Ms", "Mt", "Nm",
	"No", "Ns", "Op", "Oo", "Oc", "Ox", "Pa", "Pf", "Po", "Pc", "Pq",
	"Ql", "Qo", "Qc", "Qq", "Rv", "So", "Sc", "Sq", "St", "Sx", "Sy",
	"Ta", "Tn", "Ud", "Ux", "Va", "Vt", "Xo", "Xc", "Xr",
	"%A", "%B", "%C", "%D", "%I", "%J", "%N", "%O", "%P", "%R", "%T",
	"%U", "%V",
}

// mdocNames is consulted to produce a better diagnostic when an mdoc
// macro shows up before any .Dd.
var mdocNames = buildMdocNames()

func buildMdocNames() map[string]bool {
	m := map[string]bool{
		"Dt": true, "Os": true, "Sh": true, "Ss": true, "Pp": true,
		"D1": true, "Dl": true, "Bd": true, "Ed": true, "Bl": true,
		"El": true, "It": true, "Nd": true, "In": true, "Rs": true,
		"Re": true,
	}
	for _, n := range mdocInline {
		m[n] = true
	}
	return m
}

// installMdocTable switches the dispatch table to the mdoc(7) dialect.
// Called by the .Dd handler; the man(7) groff requests stay available.
func (p *Parser) installMdocTable() {
	kinds := func(kind handlerKind, names ...string) {
		for _, n := range names {
			p.table[n] = handler{kind: kind}
		}
	}

	kinds(kindTranslateJoined, "Sh", "Ss", "D1", "Dl", "It", "Nd", "In", "Dd")
	kinds(kindNoArg, "Pp", "Lp", "El", "Re")
	kinds(kindUntranslated, "Bl", "Dt", "Os", "Rs")
	kinds(kindInline, mdocInline...)

	p.noWrapBegin["Bd"] = true
	p.noWrapEnd["Ed"] = true
}
