package nroff

// TranslateOptions carries per-message options to the catalog.
type TranslateOptions struct {
	// Wrap permits the catalog to reflow the message when formatting
	// output.
	Wrap bool

	// Comment is extracted translator commentary attached to the
	// message, if any.
	Comment string
}

// Catalog is the translation side of the transformer. Translate returns
// the translation for msgid, or msgid itself when no translation is
// available. Implementations also record the message so that templates
// can be produced from a parse run.
type Catalog interface {
	Translate(msgid string, ref Ref, typ string, opts TranslateOptions) string
}
