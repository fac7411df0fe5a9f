// Package catalog provides the translation catalogs consumed by the
// nroff parser: an extracting catalog that records every message for
// template generation, and a translating catalog backed by a PO file.
package catalog

import (
	"sort"
	"strings"

	"github.com/comradekingu/po4a/pkg/nroff"
	"github.com/comradekingu/po4a/pkg/po"
)

// Entry is one recorded message with the places it came from.
type Entry struct {
	ID      string
	Refs    []string
	Type    string
	Comment string
	NoWrap  bool
}

// Extractor records every message handed to it and translates nothing:
// Translate returns the msgid unchanged, so a parse run doubles as a
// faithful reproduction check.
type Extractor struct {
	entries []Entry
	index   map[string]int
}

// NewExtractor returns an empty extracting catalog.
func NewExtractor() *Extractor {
	return &Extractor{index: map[string]int{}}
}

// Translate implements nroff.Catalog.
func (e *Extractor) Translate(msgid string, ref nroff.Ref, typ string, opts nroff.TranslateOptions) string {
	key := typ + "\x00" + msgid
	if i, ok := e.index[key]; ok {
		e.entries[i].Refs = append(e.entries[i].Refs, ref.String())
		return msgid
	}
	e.index[key] = len(e.entries)
	e.entries = append(e.entries, Entry{
		ID:      msgid,
		Refs:    []string{ref.String()},
		Type:    typ,
		Comment: opts.Comment,
		NoWrap:  !opts.Wrap,
	})
	return msgid
}

// Entries returns the recorded messages in extraction order.
func (e *Extractor) Entries() []Entry {
	return e.entries
}

// Merge appends the entries of other, folding duplicates into existing
// entries.
func (e *Extractor) Merge(other *Extractor) {
	for _, ent := range other.entries {
		key := ent.Type + "\x00" + ent.ID
		if i, ok := e.index[key]; ok {
			e.entries[i].Refs = append(e.entries[i].Refs, ent.Refs...)
			continue
		}
		e.index[key] = len(e.entries)
		e.entries = append(e.entries, ent)
	}
}

// File converts the recorded messages into a PO template.
func (e *Extractor) File() *po.File {
	f := po.NewFile()
	for _, ent := range e.entries {
		f.Add(po.Message{
			ID:           ent.ID,
			Refs:         ent.Refs,
			ExtractedCmt: joinComment(ent.Type, ent.Comment),
			NoWrap:       ent.NoWrap,
		})
	}
	return f
}

func joinComment(typ, comment string) string {
	parts := make([]string, 0, 2)
	if typ != "" {
		parts = append(parts, "type: "+typ)
	}
	if comment != "" {
		parts = append(parts, comment)
	}
	return strings.Join(parts, "\n")
}

// Translator resolves messages against a parsed PO file, falling back
// to the msgid, and keeps per-run statistics.
type Translator struct {
	file *po.File

	Found   int
	Missing int
	missed  map[string]bool
}

// NewTranslator wraps a PO file as an nroff.Catalog.
func NewTranslator(f *po.File) *Translator {
	return &Translator{file: f, missed: map[string]bool{}}
}

// Translate implements nroff.Catalog.
func (t *Translator) Translate(msgid string, _ nroff.Ref, _ string, _ nroff.TranslateOptions) string {
	if msgstr, ok := t.file.Lookup(msgid); ok && msgstr != "" {
		t.Found++
		return msgstr
	}
	if !t.missed[msgid] {
		t.missed[msgid] = true
		t.Missing++
	}
	return msgid
}

// MissingIDs returns the untranslated msgids seen during the run,
// sorted.
func (t *Translator) MissingIDs() []string {
	ids := make([]string, 0, len(t.missed))
	for id := range t.missed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
