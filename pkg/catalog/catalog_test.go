package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comradekingu/po4a/pkg/nroff"
	"github.com/comradekingu/po4a/pkg/po"
)

func ref(line int) nroff.Ref {
	return nroff.Ref{File: "test.1", Line: line}
}

func TestExtractor_RecordsAndDeduplicates(t *testing.T) {
	e := NewExtractor()

	got := e.Translate("hello", ref(1), "", nroff.TranslateOptions{Wrap: true})
	assert.Equal(t, "hello", got, "extraction must not alter the text")

	e.Translate("hello", ref(9), "", nroff.TranslateOptions{Wrap: true})
	e.Translate("hello", ref(3), "ds R", nroff.TranslateOptions{Wrap: false})

	entries := e.Entries()
	require.Len(t, entries, 2, "same msgid with a different type is a distinct entry")
	assert.Equal(t, []string{"test.1:1", "test.1:9"}, entries[0].Refs)
	assert.False(t, entries[0].NoWrap)
	assert.True(t, entries[1].NoWrap)
}

func TestExtractor_Merge(t *testing.T) {
	a := NewExtractor()
	a.Translate("one", ref(1), "", nroff.TranslateOptions{})

	b := NewExtractor()
	b.Translate("one", ref(5), "", nroff.TranslateOptions{})
	b.Translate("two", ref(6), "", nroff.TranslateOptions{})

	a.Merge(b)
	entries := a.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"test.1:1", "test.1:5"}, entries[0].Refs)
	assert.Equal(t, "two", entries[1].ID)
}

func TestExtractor_File(t *testing.T) {
	e := NewExtractor()
	e.Translate("msg", ref(2), "tbl table", nroff.TranslateOptions{Comment: "a note"})

	f := e.File()
	require.Len(t, f.Messages, 1)
	assert.Equal(t, "type: tbl table\na note", f.Messages[0].ExtractedCmt)
	assert.Equal(t, []string{"test.1:2"}, f.Messages[0].Refs)
}

func TestTranslator_LookupAndFallback(t *testing.T) {
	f := po.NewFile()
	f.Add(po.Message{ID: "hello", Str: "bonjour"})
	f.Add(po.Message{ID: "empty", Str: ""})

	tr := NewTranslator(f)

	assert.Equal(t, "bonjour", tr.Translate("hello", ref(1), "", nroff.TranslateOptions{}))
	assert.Equal(t, "empty", tr.Translate("empty", ref(2), "", nroff.TranslateOptions{}),
		"an empty msgstr falls back to the msgid")
	assert.Equal(t, "missing", tr.Translate("missing", ref(3), "", nroff.TranslateOptions{}))
	tr.Translate("missing", ref(4), "", nroff.TranslateOptions{})

	assert.Equal(t, 1, tr.Found)
	assert.Equal(t, 2, tr.Missing)
	assert.Equal(t, []string{"empty", "missing"}, tr.MissingIDs())
}
