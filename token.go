// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package html5

import (
	"golang.org/x/net/html/atom"
)

// A TokenType is the type of a Token.
type TokenType uint8

const (
	// CharacterToken is a run of text. The tokenizer may emit one token per
	// code point or a coalesced run; consumers that care about run contents
	// use CoalesceCharacters.
	CharacterToken TokenType = iota
	// StartTagToken looks like <a>.
	StartTagToken
	// EndTagToken looks like </a>.
	EndTagToken
	// CommentToken looks like <!--x-->.
	CommentToken
	// DoctypeToken looks like <!DOCTYPE x>.
	DoctypeToken
	// EOFToken marks the end of the input. It is the final token of every
	// stream and carries no data.
	EOFToken
)

func (t TokenType) String() string {
	switch t {
	case CharacterToken:
		return "Character"
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case CommentToken:
		return "Comment"
	case DoctypeToken:
		return "DOCTYPE"
	case EOFToken:
		return "EOF"
	}
	return "Invalid"
}

// An Attribute is an attribute namespace-key-value triple. Namespace is
// non-empty only for attributes adjusted in foreign content ("xlink", "xml",
// "xmlns"); for ordinary HTML attributes it is empty.
type Attribute struct {
	Namespace, Key, Val string
}

// A Token consists of a TokenType and some Data (tag name for start and end
// tags, content for text, comments and doctypes). A tag Token may also
// contain a slice of Attributes. Data is unescaped for all Tokens (it looks
// like "a<b" rather than "a&lt;b").
type Token struct {
	Type TokenType
	// DataAtom is the atom for Data, or zero if Data is not a known tag name.
	DataAtom atom.Atom
	Data     string
	Attr     []Attribute
	// SelfClosing is set on start tags written as <br/>.
	SelfClosing bool

	// Doctype payload. A missing identifier and an empty one are distinct
	// states, hence the Has booleans.
	Public, System       string
	HasPublic, HasSystem bool
	ForceQuirks          bool

	// Line and Col locate the token's first code point in the original
	// text, 1-based.
	Line, Col int
}

// CoalesceCharacters merges every run of adjacent CharacterTokens in toks
// into a single token, keeping the position of the first. Other tokens pass
// through unchanged and runs never merge across them.
func CoalesceCharacters(toks []Token) []Token {
	out := toks[:0:0]
	for _, t := range toks {
		if t.Type == CharacterToken && len(out) > 0 && out[len(out)-1].Type == CharacterToken {
			out[len(out)-1].Data += t.Data
			continue
		}
		out = append(out, t)
	}
	return out
}
