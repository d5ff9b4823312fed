// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package html5

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestStrictAcceptsConformingDocument(t *testing.T) {
	dom, err := Parse("<!DOCTYPE html><html><head></head><body></body></html>", Options{Strict: true})
	require.NoError(t, err)
	require.Empty(t, dom.Errors)
}

func TestStrictReturnsFirstError(t *testing.T) {
	dom, err := Parse("<b>", Options{Strict: true})
	require.Error(t, err)
	require.Equal(t, "html5: strict parse: 1:1: missing-doctype", err.Error())
	require.Equal(t, ParseError{Code: "missing-doctype", Line: 1, Col: 1}, errors.Cause(err))
	// The tree built up to the abort point is still returned.
	require.NotNil(t, dom)
	require.Equal(t, DocumentNode, dom.Node(dom.Root).Type)
}

func TestDiscardErrors(t *testing.T) {
	quiet, err := Parse("<b>", Options{DiscardErrors: true})
	require.NoError(t, err)
	require.Empty(t, quiet.Errors)

	// Recovery is unchanged: the trees match.
	loud, err := Parse("<b>", Options{})
	require.NoError(t, err)
	require.NotEmpty(t, loud.Errors)
	require.Equal(t, Dump(loud), Dump(quiet))
}

func TestScriptingFlag(t *testing.T) {
	const text = "<!DOCTYPE html><body><noscript><p>x</noscript>"

	// With scripting enabled, <noscript> content is raw text.
	dom, err := Parse(text, Options{})
	require.NoError(t, err)
	require.Equal(t, removeIndent(`
		| <!DOCTYPE html>
		| <html>
		|   <head>
		|   <body>
		|     <noscript>
		|       "<p>x"
		`), Dump(dom))

	// With scripting disabled it is parsed as markup.
	dom, err = Parse(text, Options{DisableScripting: true})
	require.NoError(t, err)
	require.Equal(t, removeIndent(`
		| <!DOCTYPE html>
		| <html>
		|   <head>
		|   <body>
		|     <noscript>
		|       <p>
		|         "x"
		`), Dump(dom))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Parse("<!DOCTYPE html>", Options{Logger: logger})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "parse start")
	require.Contains(t, buf.String(), "parse done")

	buf.Reset()
	_, err = ParseFragment("x", FragmentContext{Tag: "div"}, Options{Logger: logger})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "parse fragment done")
}

func TestTokenizeFacade(t *testing.T) {
	toks, errs := Tokenize("a<b>c", DataState, "")
	require.Empty(t, errs)
	require.Len(t, toks, 3)
	require.Equal(t, CharacterToken, toks[0].Type)
	require.Equal(t, StartTagToken, toks[1].Type)
	require.Equal(t, CharacterToken, toks[2].Type)
	require.Equal(t, "c", toks[2].Data)
}

func TestTokenizeFacadeRawText(t *testing.T) {
	toks, errs := Tokenize("x=1<y;</script>done", ScriptDataState, "script")
	require.Empty(t, errs)
	require.Len(t, toks, 3)
	require.Equal(t, CharacterToken, toks[0].Type)
	require.Equal(t, "x=1<y;", toks[0].Data)
	require.Equal(t, EndTagToken, toks[1].Type)
	require.Equal(t, "script", toks[1].Data)
	require.Equal(t, "done", toks[2].Data)
}
