// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package html5

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/atom"
)

func TestTokenizeSimpleTag(t *testing.T) {
	toks, errs := Tokenize(`<p class="x">Hi</p>`, DataState, "")
	require.Empty(t, errs)

	want := []Token{
		{
			Type:     StartTagToken,
			DataAtom: atom.P,
			Data:     "p",
			Attr:     []Attribute{{Key: "class", Val: "x"}},
			Line:     1, Col: 1,
		},
		{Type: CharacterToken, Data: "Hi", Line: 1, Col: 14},
		{Type: EndTagToken, DataAtom: atom.P, Data: "p", Line: 1, Col: 16},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Errorf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeSelfClosingAndCase(t *testing.T) {
	toks, errs := Tokenize("<BR/><INPUT TYPE=text>", DataState, "")
	require.Empty(t, errs)
	require.Len(t, toks, 2)

	require.Equal(t, StartTagToken, toks[0].Type)
	require.Equal(t, atom.Br, toks[0].DataAtom)
	require.Equal(t, "br", toks[0].Data)
	require.True(t, toks[0].SelfClosing)

	require.Equal(t, atom.Input, toks[1].DataAtom)
	require.Equal(t, []Attribute{{Key: "type", Val: "text"}}, toks[1].Attr)
}

func TestTokenizeDuplicateAttribute(t *testing.T) {
	toks, errs := Tokenize(`<p id="a" id="b">`, DataState, "")
	require.Len(t, toks, 1)
	require.Equal(t, []Attribute{{Key: "id", Val: "a"}}, toks[0].Attr)
	require.Len(t, errs, 1)
	require.Equal(t, "duplicate-attribute", errs[0].Code)
}

func TestTokenizeDoctype(t *testing.T) {
	toks, _ := Tokenize(`<!DOCTYPE html PUBLIC "p" "s">`, DataState, "")
	require.Len(t, toks, 1)

	want := Token{
		Type:      DoctypeToken,
		Data:      "html",
		Public:    "p",
		System:    "s",
		HasPublic: true,
		HasSystem: true,
	}
	if diff := cmp.Diff(want, toks[0], cmpopts.IgnoreFields(Token{}, "Line", "Col")); diff != "" {
		t.Errorf("doctype token mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeEndTagWithAttributes(t *testing.T) {
	toks, errs := Tokenize("</p class=x>", DataState, "")
	require.Len(t, toks, 1)
	require.Equal(t, EndTagToken, toks[0].Type)
	require.Len(t, errs, 1)
	require.Equal(t, "end-tag-with-attributes", errs[0].Code)
}

// charData concatenates the character tokens of a stream.
func charData(toks []Token) string {
	var b strings.Builder
	for _, tok := range toks {
		if tok.Type == CharacterToken {
			b.WriteString(tok.Data)
		}
	}
	return b.String()
}

func TestCharacterReferencesInText(t *testing.T) {
	tests := []struct {
		in   string
		want string
		errs []string
	}{
		{in: "&amp;", want: "&", errs: []string{}},
		{in: "&AMP;", want: "&", errs: []string{}},
		{in: "&notin;", want: "∉", errs: []string{}},
		{in: "&amp", want: "&", errs: []string{"missing-semicolon-after-character-reference"}},
		{in: "&ampx", want: "&x", errs: []string{"missing-semicolon-after-character-reference"}},
		{in: "&not", want: "¬", errs: []string{"missing-semicolon-after-character-reference"}},
		{in: "&nosuch;", want: "&nosuch;", errs: []string{"unknown-named-character-reference"}},
		{in: "& x", want: "& x", errs: []string{}},
		{in: "&#65;&#x41;", want: "AA", errs: []string{}},
		{in: "&#65", want: "A", errs: []string{"missing-semicolon-after-character-reference"}},
		{in: "&#0;", want: "�", errs: []string{"null-character-reference"}},
		{in: "&#x80;", want: "€", errs: []string{"control-character-reference"}},
		{in: "&#xD800;", want: "�", errs: []string{"surrogate-character-reference"}},
		{in: "&#x110000;", want: "�", errs: []string{"character-reference-outside-unicode-range"}},
		{in: "&#;", want: "&#;", errs: []string{"absence-of-digits-in-numeric-character-reference"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			toks, errs := Tokenize(tt.in, DataState, "")
			require.Equal(t, tt.want, charData(toks))

			var codes []string = []string{}
			for _, e := range errs {
				codes = append(codes, e.Code)
			}
			require.Equal(t, tt.errs, codes)
		})
	}
}

func TestCharacterReferencesInAttributes(t *testing.T) {
	// The legacy no-semicolon match is suppressed in attribute values when
	// an alphanumeric or "=" follows, with no error.
	toks, errs := Tokenize(`<a href="?x&ampy">`, DataState, "")
	require.Empty(t, errs)
	require.Len(t, toks, 1)
	require.Equal(t, []Attribute{{Key: "href", Val: "?x&ampy"}}, toks[0].Attr)

	// With a semicolon the reference resolves normally.
	toks, errs = Tokenize(`<a href="?x&amp;y">`, DataState, "")
	require.Empty(t, errs)
	require.Equal(t, []Attribute{{Key: "href", Val: "?x&y"}}, toks[0].Attr)
}

func TestTokenizerRawText(t *testing.T) {
	z := NewTokenizer("w</script>x")
	z.SetState(ScriptDataState)
	z.SetLastStartTag("script")

	tok := z.Next()
	require.Equal(t, CharacterToken, tok.Type)
	require.Equal(t, "w", tok.Data)

	tok = z.Next()
	require.Equal(t, EndTagToken, tok.Type)
	require.Equal(t, atom.Script, tok.DataAtom)

	tok = z.Next()
	require.Equal(t, CharacterToken, tok.Type)
	require.Equal(t, "x", tok.Data)

	require.Equal(t, EOFToken, z.Next().Type)
	// Next keeps returning EOF.
	require.Equal(t, EOFToken, z.Next().Type)
}

func TestTokenizerScriptDataEscapes(t *testing.T) {
	// Inside <!-- -->, a nested <script> double-escapes: its </script> is
	// text, and only the one after --> ends the element.
	z := NewTokenizer("<!--<script>a</script>b--></script>x")
	z.SetState(ScriptDataState)
	z.SetLastStartTag("script")

	tok := z.Next()
	require.Equal(t, CharacterToken, tok.Type)
	require.Equal(t, "<!--<script>a</script>b-->", tok.Data)

	tok = z.Next()
	require.Equal(t, EndTagToken, tok.Type)
	require.Equal(t, atom.Script, tok.DataAtom)

	tok = z.Next()
	require.Equal(t, CharacterToken, tok.Type)
	require.Equal(t, "x", tok.Data)

	require.Empty(t, z.Errors())
}

func TestTokenizerScriptDataEscapedEndTag(t *testing.T) {
	// Without a nested <script>, the escape does not eat a real end tag.
	z := NewTokenizer("<!--a</script>b")
	z.SetState(ScriptDataState)
	z.SetLastStartTag("script")

	tok := z.Next()
	require.Equal(t, CharacterToken, tok.Type)
	require.Equal(t, "<!--a", tok.Data)

	tok = z.Next()
	require.Equal(t, EndTagToken, tok.Type)
	require.Equal(t, atom.Script, tok.DataAtom)

	tok = z.Next()
	require.Equal(t, CharacterToken, tok.Type)
	require.Equal(t, "b", tok.Data)
}

func TestTokenizerRawTextIgnoresOtherEndTags(t *testing.T) {
	z := NewTokenizer("a</div>b</style>")
	z.SetState(RAWTEXTState)
	z.SetLastStartTag("style")

	tok := z.Next()
	require.Equal(t, CharacterToken, tok.Type)
	require.Equal(t, "a</div>b", tok.Data)

	tok = z.Next()
	require.Equal(t, EndTagToken, tok.Type)
	require.Equal(t, "style", tok.Data)
}

func TestTokenizeComments(t *testing.T) {
	tests := []struct {
		in   string
		data string
		errs []string
	}{
		{in: "<!--x-->", data: "x", errs: []string{}},
		{in: "<!-->", data: "", errs: []string{"abrupt-closing-of-empty-comment"}},
		{in: "<!--x--!>", data: "x", errs: []string{"incorrectly-closed-comment"}},
		{in: "<?xml?>", data: "?xml?", errs: []string{"unexpected-question-mark-instead-of-tag-name"}},
		{in: "<!x>", data: "x", errs: []string{"incorrectly-opened-comment"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			toks, errs := Tokenize(tt.in, DataState, "")
			require.Len(t, toks, 1)
			require.Equal(t, CommentToken, toks[0].Type)
			require.Equal(t, tt.data, toks[0].Data)

			codes := []string{}
			for _, e := range errs {
				codes = append(codes, e.Code)
			}
			require.Equal(t, tt.errs, codes)
		})
	}
}

func TestTokenizePositionsAcrossLines(t *testing.T) {
	toks, _ := Tokenize("ab\n<p>\r\ncd", DataState, "")
	require.Len(t, toks, 3)

	// "ab\n" is one character run starting at the top of the input.
	require.Equal(t, "ab\n", toks[0].Data)
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 1, toks[0].Col)

	require.Equal(t, StartTagToken, toks[1].Type)
	require.Equal(t, 2, toks[1].Line)
	require.Equal(t, 1, toks[1].Col)

	// The \r\n collapses to one newline; "cd" is on line 3.
	require.Equal(t, "\ncd", toks[2].Data)
	require.Equal(t, 2, toks[2].Line)
	require.Equal(t, 4, toks[2].Col)
}
