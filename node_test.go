// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package html5

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/atom"
)

func TestArenaAllocAndGet(t *testing.T) {
	a := newArena()
	doc := a.alloc(Node{Type: DocumentNode})
	el := a.alloc(Node{Type: ElementNode, DataAtom: atom.Div, Data: "div"})

	require.Equal(t, NodeID(0), doc)
	require.Equal(t, NodeID(1), el)
	require.Equal(t, 2, a.Len())
	require.Equal(t, "div", a.Get(el).Data)
	require.Equal(t, nilNodeID, a.Get(el).Content)

	require.Panics(t, func() { a.Get(NodeID(2)) })
	require.Panics(t, func() { a.Get(nilNodeID) })
}

func TestArenaAppendAndDetach(t *testing.T) {
	a := newArena()
	doc := a.alloc(Node{Type: DocumentNode})
	el := a.alloc(Node{Type: ElementNode, Data: "p"})
	txt := a.alloc(Node{Type: TextNode, Data: "x"})

	a.AppendChild(doc, el)
	a.AppendChild(el, txt)
	require.Equal(t, []NodeID{el}, a.Get(doc).Children)
	require.Equal(t, doc, a.parent(el))
	require.Equal(t, el, a.parent(txt))

	// A node already in a child list cannot be appended again.
	require.Panics(t, func() { a.AppendChild(doc, txt) })

	a.detach(txt)
	require.Empty(t, a.Get(el).Children)
	require.Equal(t, nilNodeID, a.parent(txt))
	// The detached node stays allocated and addressable.
	require.Equal(t, "x", a.Get(txt).Data)
	// Detaching again is a no-op.
	a.detach(txt)

	// And it can move to a new parent.
	a.AppendChild(doc, txt)
	require.Equal(t, []NodeID{el, txt}, a.Get(doc).Children)
}

func TestArenaInsertBefore(t *testing.T) {
	a := newArena()
	doc := a.alloc(Node{Type: DocumentNode})
	x := a.alloc(Node{Type: ElementNode, Data: "x"})
	y := a.alloc(Node{Type: ElementNode, Data: "y"})
	z := a.alloc(Node{Type: ElementNode, Data: "z"})

	a.AppendChild(doc, x)
	a.InsertBefore(doc, y, x)
	require.Equal(t, []NodeID{y, x}, a.Get(doc).Children)

	// A nil reference appends.
	a.InsertBefore(doc, z, nilNodeID)
	require.Equal(t, []NodeID{y, x, z}, a.Get(doc).Children)

	require.Equal(t, y, a.prevSibling(x))
	require.Equal(t, nilNodeID, a.prevSibling(y))
	require.Equal(t, z, a.lastChild(doc))
}

func TestArenaReparentChildren(t *testing.T) {
	a := newArena()
	src := a.alloc(Node{Type: ElementNode, Data: "src"})
	dst := a.alloc(Node{Type: ElementNode, Data: "dst"})
	c1 := a.alloc(Node{Type: TextNode, Data: "1"})
	c2 := a.alloc(Node{Type: TextNode, Data: "2"})
	a.AppendChild(src, c1)
	a.AppendChild(src, c2)

	a.reparentChildren(dst, src)
	require.Empty(t, a.Get(src).Children)
	require.Equal(t, []NodeID{c1, c2}, a.Get(dst).Children)
	require.Equal(t, dst, a.parent(c1))
	require.Equal(t, dst, a.parent(c2))
}

func TestArenaClone(t *testing.T) {
	a := newArena()
	el := a.alloc(Node{
		Type:     ElementNode,
		DataAtom: atom.A,
		Data:     "a",
		Attr:     []Attribute{{Key: "href", Val: "#"}},
	})
	kid := a.alloc(Node{Type: TextNode, Data: "x"})
	a.AppendChild(el, kid)

	c := a.clone(el)
	require.NotEqual(t, el, c)
	n := a.Get(c)
	require.Equal(t, atom.A, n.DataAtom)
	require.Equal(t, []Attribute{{Key: "href", Val: "#"}}, n.Attr)
	require.Empty(t, n.Children)
	require.Equal(t, nilNodeID, a.parent(c))

	// The attribute slice is a copy, not shared storage.
	n.Attr[0].Val = "changed"
	require.Equal(t, "#", a.Get(el).Attr[0].Val)
}

func TestNodeStack(t *testing.T) {
	var s nodeStack
	require.Equal(t, nilNodeID, s.top())
	require.Equal(t, -1, s.index(NodeID(1)))

	s = append(s, 1, 2, 3)
	require.Equal(t, NodeID(3), s.top())
	require.Equal(t, 1, s.index(2))

	s.insert(1, 9)
	require.Equal(t, nodeStack{1, 9, 2, 3}, s)

	s.remove(9)
	require.Equal(t, nodeStack{1, 2, 3}, s)
	s.remove(9) // absent, no-op
	require.Equal(t, nodeStack{1, 2, 3}, s)

	require.Equal(t, NodeID(3), s.pop())
	require.Equal(t, nodeStack{1, 2}, s)
}
