package nroff

import (
	"golang.org/x/text/encoding/ianaindex"
)

// nbsp is the non-breaking-space character carried through the pipeline.
const nbsp = "\u00a0"

// nbspFallback is used when the input charset cannot carry U+00A0. It
// must never appear in real man pages.
const nbspFallback = "PO4A-VERY-IMPROBABLE-STRING-USED-FOR-NON-BREAKING-SPACES"

// nbspSentinel picks the in-flight representation of escaped spaces for
// one document: the non-breaking-space character when the input charset
// can encode it, otherwise an improbable ASCII marker.
func nbspSentinel(charset string) string {
	if charset == "" {
		return nbsp
	}
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return nbspFallback
	}
	if _, err := enc.NewEncoder().String(nbsp); err != nil {
		return nbspFallback
	}
	return nbsp
}
