// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package html5

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/atom"
)

func TestCoalesceCharacters(t *testing.T) {
	in := []Token{
		{Type: CharacterToken, Data: "a", Line: 1, Col: 1},
		{Type: CharacterToken, Data: "b", Line: 1, Col: 2},
		{Type: StartTagToken, DataAtom: atom.P, Data: "p", Line: 1, Col: 3},
		{Type: CharacterToken, Data: "c", Line: 1, Col: 6},
		{Type: CharacterToken, Data: "d", Line: 1, Col: 7},
		{Type: CharacterToken, Data: "e", Line: 1, Col: 8},
	}
	want := []Token{
		{Type: CharacterToken, Data: "ab", Line: 1, Col: 1},
		{Type: StartTagToken, DataAtom: atom.P, Data: "p", Line: 1, Col: 3},
		{Type: CharacterToken, Data: "cde", Line: 1, Col: 6},
	}
	got := CoalesceCharacters(in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
	// The input slice is left alone.
	require.Equal(t, "a", in[0].Data)
}

func TestCoalesceCharactersEmpty(t *testing.T) {
	require.Empty(t, CoalesceCharacters(nil))
}

func TestTokenTypeString(t *testing.T) {
	require.Equal(t, "Character", CharacterToken.String())
	require.Equal(t, "StartTag", StartTagToken.String())
	require.Equal(t, "EndTag", EndTagToken.String())
	require.Equal(t, "Comment", CommentToken.String())
	require.Equal(t, "DOCTYPE", DoctypeToken.String())
	require.Equal(t, "EOF", EOFToken.String())
	require.Equal(t, "Invalid", TokenType(99).String())
}
