package nroff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kindOf(list []MacroInfo, name string) string {
	for _, m := range list {
		if m.Name == name {
			return m.Kind
		}
	}
	return ""
}

func TestMacroList_Builtins(t *testing.T) {
	list := MacroList(Options{}, false)
	require.NotEmpty(t, list)

	assert.Equal(t, "structural", kindOf(list, "TH"))
	assert.Equal(t, "structural", kindOf(list, "TP"))
	assert.Equal(t, "no-arg", kindOf(list, "PP"))
	assert.Equal(t, "untranslated", kindOf(list, "br"))
	assert.Equal(t, "no-wrap-begin", kindOf(list, "nf"))
	assert.Equal(t, "no-wrap-end", kindOf(list, "fi"))
	assert.Equal(t, "", kindOf(list, "Sh"), "mdoc macros are absent until .Dd")
}

func TestMacroList_Mdoc(t *testing.T) {
	list := MacroList(Options{}, true)
	assert.Equal(t, "translate-joined", kindOf(list, "Sh"))
	assert.Equal(t, "inline", kindOf(list, "Nm"))
	assert.Equal(t, "no-wrap-begin", kindOf(list, "Bd"))
}

func TestMacroList_OptionAmendments(t *testing.T) {
	list := MacroList(Options{
		Inline:       []string{"Vb"},
		Untranslated: []string{"XX"},
		NoWrap:       []string{"AB:CD", "broken"},
	}, false)

	assert.Equal(t, "inline", kindOf(list, "Vb"))
	assert.Equal(t, "untranslated", kindOf(list, "XX"))
	assert.Equal(t, "no-wrap-begin", kindOf(list, "AB"))
	assert.Equal(t, "no-wrap-end", kindOf(list, "CD"))
	assert.Equal(t, "", kindOf(list, "broken"))
}

func TestNoArgWarnsButPassesThrough(t *testing.T) {
	out, _, err := runDoc(t, ".PP unexpected\n", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, ".PP unexpected\n", out)
}

func TestTranslateEachOption(t *testing.T) {
	out, cat, err := runDoc(t, ".XX alpha beta\n",
		map[string]string{"alpha": "alef", "beta": "bet"},
		Options{TranslateEach: []string{"XX"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, cat.ids())
	assert.Equal(t, ".XX alef bet\n", out)
}
