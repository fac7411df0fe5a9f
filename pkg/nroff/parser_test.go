package nroff

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCatalog records every message and substitutes from repl, falling
// back to the msgid.
type testCatalog struct {
	repl map[string]string
	seen []testMsg
}

type testMsg struct {
	id   string
	typ  string
	wrap bool
}

func (c *testCatalog) Translate(msgid string, _ Ref, typ string, opts TranslateOptions) string {
	c.seen = append(c.seen, testMsg{id: msgid, typ: typ, wrap: opts.Wrap})
	if s, ok := c.repl[msgid]; ok {
		return s
	}
	return msgid
}

func (c *testCatalog) ids() []string {
	ids := make([]string, len(c.seen))
	for i, m := range c.seen {
		ids[i] = m.id
	}
	return ids
}

func runDoc(t *testing.T, input string, repl map[string]string, opts Options) (string, *testCatalog, error) {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	cat := &testCatalog{repl: repl}
	var buf bytes.Buffer
	p := NewParser(NewSource(strings.NewReader(input), "test.1"), cat, &buf, opts)
	err := p.Run()
	return buf.String(), cat, err
}

func TestParser_BoldMacro(t *testing.T) {
	out, cat, err := runDoc(t, ".B hello world\n",
		map[string]string{"B<hello world>": "B<bonjour monde>"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"B<hello world>"}, cat.ids())
	assert.Equal(t, "\\fBbonjour monde\\fR\n", out)
}

func TestParser_AlternatingFontMacro(t *testing.T) {
	out, cat, err := runDoc(t, ".BI foo bar baz\n", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"B<foo>I<bar>B<baz>"}, cat.ids())
	assert.Equal(t, "\\fBfoo\\fR\\fIbar\\fR\\fBbaz\\fR\n", out)
}

func TestParser_EmptyAlternatingFontMacro(t *testing.T) {
	_, cat, err := runDoc(t, ".BI\ntext\n", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"text"}, cat.ids())
}

func TestParser_TagParagraph(t *testing.T) {
	input := ".TP\n.B \\-f\nDescription text.\n"
	out, cat, err := runDoc(t, input, nil, Options{})
	require.NoError(t, err)

	require.Len(t, cat.seen, 2)
	assert.Equal(t, "B<-f>", cat.seen[0].id)
	assert.False(t, cat.seen[0].wrap)
	assert.Equal(t, "Description text.", cat.seen[1].id)
	assert.True(t, cat.seen[1].wrap)

	assert.Equal(t, ".TP\n\\fB\\-f\\fR\nDescription text.\n", out)
}

func TestParser_NoWrapBlock(t *testing.T) {
	input := "Before.\n.nf\n  raw line\n.fi\nAfter.\n"
	out, cat, err := runDoc(t, input, nil, Options{})
	require.NoError(t, err)

	assert.Equal(t, input, out)
	require.Len(t, cat.seen, 3)
	assert.True(t, cat.seen[0].wrap)
	assert.False(t, cat.seen[1].wrap, "inside .nf must not wrap")
	assert.True(t, cat.seen[2].wrap)
}

func TestParser_LeadingWhitespaceSuppressesWrap(t *testing.T) {
	input := "  indented line\n\nNormal line.\n"
	_, cat, err := runDoc(t, input, nil, Options{})
	require.NoError(t, err)

	require.Len(t, cat.seen, 2)
	assert.False(t, cat.seen[0].wrap)
	assert.True(t, cat.seen[1].wrap, "wrap mode must revert after the paragraph")
}

func TestParser_SoIsFatal(t *testing.T) {
	_, _, err := runDoc(t, ".so other.man\n", nil, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".so")
	assert.False(t, IsGenerated(err))
}

func TestParser_GeneratedPodMan(t *testing.T) {
	input := ".\\\" Automatically generated by Pod::Man 4.14\n.TH FOO 1\n"
	_, _, err := runDoc(t, input, nil, Options{})
	require.Error(t, err)
	assert.True(t, IsGenerated(err))
	assert.Contains(t, err.Error(), "Pod::Man")
}

func TestParser_GeneratedHelp2manWarnsOnly(t *testing.T) {
	input := ".\\\" DO NOT MODIFY THIS FILE! It was generated by help2man 1.48.\nText.\n"
	out, _, err := runDoc(t, input, nil, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "Text.\n")
}

func TestParser_THBannerAndTranslation(t *testing.T) {
	input := ".TH FOO 1 \"March 2024\" Project Manual\n"
	out, cat, err := runDoc(t, input,
		map[string]string{"March 2024": "Mars 2024"}, Options{})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(out, banner), "banner must precede .TH")
	assert.Equal(t, ".TH FOO 1 \"Mars 2024\" Project Manual\n",
		strings.TrimPrefix(out, banner))
	assert.Contains(t, cat.ids(), "FOO")
	assert.NotContains(t, cat.ids(), "1", "section number stays untranslated")
}

func TestParser_SectionHeading(t *testing.T) {
	out, cat, err := runDoc(t, ".SH NAME\n", map[string]string{"NAME": "NOM"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"NAME"}, cat.ids())
	assert.Equal(t, ".SH NOM\n", out)
}

func TestParser_SectionHeadingBoldIsRegular(t *testing.T) {
	_, cat, err := runDoc(t, ".SH \"\\fBNAME\\fR\"\n", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"NAME"}, cat.ids(),
		"bold is the regular font inside a heading and takes no marker")
}

func TestParser_HeadingArgumentOnNextLine(t *testing.T) {
	out, cat, err := runDoc(t, ".SH\nNAME\n", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"NAME"}, cat.ids())
	assert.Equal(t, ".SH\nNAME\n", out)
}

func TestParser_CommentAttachesToNextParagraph(t *testing.T) {
	input := ".\\\" about the greeting\nHello.\n"
	out, _, err := runDoc(t, input, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, ".\\\" about the greeting\nHello.\n", out)
}

func TestParser_CommentOnTextLine(t *testing.T) {
	input := "Hello.\\\" trailing note\n"
	out, cat, err := runDoc(t, input, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello."}, cat.ids())
	assert.Equal(t, ".\\\" trailing note\nHello.\n", out)
}

func TestParser_CommentSurvivesBlankLines(t *testing.T) {
	input := ".\\\" floating comment\n\nHello.\n"
	out, _, err := runDoc(t, input, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "floating comment"),
		"every comment appears exactly once")
	require.True(t, strings.HasSuffix(out, ".\\\" floating comment\nHello.\n"),
		"comment attaches to the paragraph it precedes")
}

func TestParser_UnknownMacro(t *testing.T) {
	_, _, err := runDoc(t, ".XYZZY arg\n", nil, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown macro")
}

func TestParser_UnknownMacroRegistered(t *testing.T) {
	out, _, err := runDoc(t, ".XYZZY arg\n", nil, Options{Untranslated: []string{"XYZZY"}})
	require.NoError(t, err)
	assert.Equal(t, ".XYZZY arg\n", out)
}

func TestParser_InlineOptionKeepsParagraph(t *testing.T) {
	input := "Run\n.Foo now\nto proceed.\n"
	out, cat, err := runDoc(t, input, nil, Options{Inline: []string{"Foo"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Run\nE<.Foo now>\nto proceed."}, cat.ids())
	assert.Equal(t, "Run\n.Foo now\nto proceed.\n", out)
}

func TestParser_GroffCodePolicies(t *testing.T) {
	input := ".de XX\n.br\n..\nText.\n"

	t.Run("fail", func(t *testing.T) {
		_, _, err := runDoc(t, input, nil, Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "groff")
	})

	t.Run("verbatim", func(t *testing.T) {
		out, cat, err := runDoc(t, input, nil, Options{GroffCode: GroffCodeVerbatim})
		require.NoError(t, err)
		assert.Equal(t, input, out)
		assert.Equal(t, []string{"Text."}, cat.ids())
	})

	t.Run("translate", func(t *testing.T) {
		out, cat, err := runDoc(t, input, nil, Options{GroffCode: GroffCodeTranslate})
		require.NoError(t, err)
		assert.Equal(t, input, out)
		require.Len(t, cat.seen, 2)
		assert.Equal(t, ".de XX\n.br\n..", cat.seen[0].id)
		assert.Equal(t, "groff code", cat.seen[0].typ)
		assert.False(t, cat.seen[0].wrap)
	})
}

func TestParser_ConditionalPair(t *testing.T) {
	input := ".ie n .sp\n.el .br\nText.\n"
	out, _, err := runDoc(t, input, nil, Options{GroffCode: GroffCodeVerbatim})
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestParser_IeWithoutEl(t *testing.T) {
	input := ".ie n .sp\nText.\n"
	_, _, err := runDoc(t, input, nil, Options{GroffCode: GroffCodeVerbatim})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".el")
}

func TestParser_StringDefinition(t *testing.T) {
	out, cat, err := runDoc(t, ".ds R Registered\n",
		map[string]string{"Registered": "Enregistr"}, Options{})
	require.NoError(t, err)
	require.Len(t, cat.seen, 1)
	assert.Equal(t, "ds R", cat.seen[0].typ)
	assert.Equal(t, ".ds R Enregistr\n", out)
}

func TestParser_IgnoredBlock(t *testing.T) {
	input := ".ig\nanything .goes here\n..\nText.\n"
	out, cat, err := runDoc(t, input, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, input, out)
	assert.Equal(t, []string{"Text."}, cat.ids())
}

func TestParser_Table(t *testing.T) {
	input := ".TS\ntab(;);\nl l.\nalpha\tbeta\n.TE\n"
	out, cat, err := runDoc(t, input,
		map[string]string{"alpha": "alef"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, ".TS\ntab(;);\nl l.\nalef\tbeta\n.TE\n", out)
	require.Len(t, cat.seen, 2)
	assert.Equal(t, "tbl table", cat.seen[0].typ)
}

func TestParser_IPTag(t *testing.T) {
	out, cat, err := runDoc(t, ".IP \"tag text\" 4\n",
		map[string]string{"tag text": "texte"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"tag text"}, cat.ids())
	assert.Equal(t, ".IP texte 4\n", out)
}

func TestParser_URHandling(t *testing.T) {
	out, _, err := runDoc(t, ".UR :\nlabel\n.UE\n", nil, Options{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, ".UR :\n"),
		"a lone colon URL stays untranslated")

	out, cat, err := runDoc(t, ".UR https://example.com\n", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com"}, cat.ids())
	assert.Equal(t, ".UR https://example.com\n", out)
}

func TestParser_CEWithCountFails(t *testing.T) {
	_, _, err := runDoc(t, ".ce 2\na\nb\n", nil, Options{})
	require.Error(t, err)

	out, _, err := runDoc(t, ".ce 0\n", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, ".ce 0\n", out)
}

func TestParser_ECWithArgumentFails(t *testing.T) {
	_, _, err := runDoc(t, ".ec @\n", nil, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".ec")
}

func TestParser_BackslashCIsFatal(t *testing.T) {
	_, _, err := runDoc(t, "join\\c\nnext\n", nil, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `\c`)
}

func TestParser_ContinuationLine(t *testing.T) {
	_, cat, err := runDoc(t, "foo \\\nbar\n", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"foo bar"}, cat.ids())
}

func TestParser_OrphanFontMacro(t *testing.T) {
	_, cat, err := runDoc(t, ".B\nhello\n", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"B<hello>"}, cat.ids())
}

func TestParser_OrphanFontBeforeSection(t *testing.T) {
	out, cat, err := runDoc(t, ".B\n.SH NAME\n", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"NAME"}, cat.ids())
	assert.Equal(t, ".SH NAME\n", out)
}

func TestParser_OrphanFontBeforeOtherMacroFails(t *testing.T) {
	_, _, err := runDoc(t, ".B\n.br\n", nil, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".B")
}

func TestParser_AngleBracketRoundTrip(t *testing.T) {
	out, cat, err := runDoc(t, "a < b > c\n", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a E<lt> b E<gt> c"}, cat.ids())
	assert.Equal(t, "a < b > c\n", out)
}

func TestParser_TranslationStartingWithDotIsGuarded(t *testing.T) {
	out, _, err := runDoc(t, "Hello.\n",
		map[string]string{"Hello.": ".hidden request"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "\\&.hidden request\n", out)
}

func TestParser_UnbalancedMarkerFails(t *testing.T) {
	_, _, err := runDoc(t, "Hello.\n",
		map[string]string{"Hello.": "B<broken"}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unbalanced")
}

func TestParser_QuoteTransliteration(t *testing.T) {
	out, cat, err := runDoc(t, "say \\*(lqhi\\*(rq now\n", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"say ``hi'' now"}, cat.ids())
	assert.Equal(t, "say \\*(lqhi\\*(rq now\n", out)
}

func TestParser_HyphenRoundTrip(t *testing.T) {
	out, cat, err := runDoc(t, "use \\-\\-flag\n", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"use --flag"}, cat.ids())
	assert.Equal(t, "use \\-\\-flag\n", out)
}

func TestParser_MdocDocument(t *testing.T) {
	input := ".Dd March 7, 2024\n.Sh NAME\nSee\n.Xr foo 1 .\nnow.\n"
	out, cat, err := runDoc(t, input, nil, Options{})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(out, banner), "banner precedes .Dd")
	rest := strings.TrimPrefix(out, banner)
	assert.Equal(t, ".Dd March 7, 2024\n.Sh NAME\nSee\n.Xr foo 1 .\nnow.\n", rest)

	assert.Contains(t, cat.ids(), "See\nE<.Xr foo 1>.\nnow.",
		"mdoc punctuation migrates outside the inline marker")
}

func TestParser_MdocMacroBeforeDdFails(t *testing.T) {
	_, _, err := runDoc(t, ".Sh NAME\n", nil, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".Dd")
}

func TestParser_BlankLinesPreserved(t *testing.T) {
	input := "One.\n\nTwo.\n"
	out, cat, err := runDoc(t, input, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, input, out)
	assert.Equal(t, []string{"One.", "Two."}, cat.ids())
}

func TestParser_FontRequest(t *testing.T) {
	input := ".ft CW\ncode text\n.ft\nplain\n"
	out, cat, err := runDoc(t, input, nil, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"CW<code text>", "plain"}, cat.ids())
	assert.Equal(t, ".ft CW\n\\f(CWcode text\\fR\n.ft\nplain\n", out)
}

func TestParser_ConstantWidthRoundTrip(t *testing.T) {
	out, cat, err := runDoc(t, "see \\f(CWcode\\fR here\n", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"see CW<code> here"}, cat.ids())
	assert.Equal(t, "see \\f(CWcode\\fR here\n", out)
}
