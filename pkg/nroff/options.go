package nroff

import (
	"github.com/charmbracelet/log"
)

// GroffCodePolicy selects how .de, .ie and .if blocks are handled.
type GroffCodePolicy string

const (
	// GroffCodeFail aborts with a diagnostic on any groff code block.
	GroffCodeFail GroffCodePolicy = "fail"

	// GroffCodeVerbatim copies groff code blocks unchanged.
	GroffCodeVerbatim GroffCodePolicy = "verbatim"

	// GroffCodeTranslate hands each block to the catalog as one
	// unwrapped unit.
	GroffCodeTranslate GroffCodePolicy = "translate"
)

// Valid reports whether p is a known policy.
func (p GroffCodePolicy) Valid() bool {
	switch p {
	case GroffCodeFail, GroffCodeVerbatim, GroffCodeTranslate:
		return true
	}
	return false
}

// Debug stream names accepted by Options.Debug.
const (
	DebugSplitArgs = "splitargs"
	DebugPreTrans  = "pretrans"
	DebugPostTrans = "postrans"
	DebugFonts     = "fonts"
)

// Options configures a Parser. The zero value is usable: groff code
// fails, no extra macros are registered, logging goes to the
// charmbracelet/log default logger.
type Options struct {
	// GroffCode is the policy for .de/.ie/.if blocks. Empty means
	// GroffCodeFail.
	GroffCode GroffCodePolicy

	// Macro table amendments, each a list of macro names without the
	// leading dot.
	Untranslated    []string
	NoArg           []string
	TranslateJoined []string
	TranslateEach   []string
	Inline          []string

	// NoWrap lists additional "begin:end" no-wrap macro pairs. The
	// pairs are not matched against each other: any end macro closes
	// any begin macro.
	NoWrap []string

	// Charset names the input charset; it decides the in-flight
	// non-breaking-space sentinel. Empty means UTF-8.
	Charset string

	// Verbose increases diagnostic chatter.
	Verbose bool

	// Debug enables the named debug streams (splitargs, pretrans,
	// postrans, fonts).
	Debug []string

	// Logger receives warnings and debug output. Nil means the
	// package-level default of charmbracelet/log.
	Logger *log.Logger
}

func (o *Options) debugEnabled(stream string) bool {
	for _, s := range o.Debug {
		if s == stream {
			return true
		}
	}
	return false
}
