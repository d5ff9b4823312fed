// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package html5

import (
	"golang.org/x/net/html/atom"
)

// A NodeType is the type of a Node.
type NodeType uint8

const (
	DocumentNode NodeType = iota
	FragmentNode
	ElementNode
	TemplateNode
	TextNode
	CommentNode
	DoctypeNode
)

// A QuirksMode is the rendering-compatibility mode a document was parsed
// under, recorded on the Document node.
type QuirksMode uint8

const (
	NoQuirks QuirksMode = iota
	LimitedQuirks
	Quirks
)

// A NodeID addresses a node in an Arena. IDs are issued in strictly
// increasing order and stay valid for the lifetime of the parse; the arena
// never frees or reuses them.
type NodeID int32

// nilNodeID is the absence of a node.
const nilNodeID NodeID = -1

// markerID is the scope marker pushed onto the list of active formatting
// elements. Section 13.2.4.3 says "The markers are inserted when entering
// applet, object, marquee, template, td, th, and caption elements, and are
// used to prevent formatting from 'leaking' into" them. It is a sentinel,
// not an arena entry.
const markerID NodeID = -2

// A Node is one entry in an Arena. Which fields are meaningful depends on
// Type. Nodes hold no parent reference; the tree shape is the Children lists
// alone, reached from the document (or fragment) root.
type Node struct {
	Type NodeType

	// DataAtom is the atom for Data, or zero if Data is not a known tag
	// name. Data is the tag name for elements and templates, the text for
	// text nodes and the comment text for comments.
	DataAtom atom.Atom
	Data     string

	// Namespace is "" for HTML elements, or "svg" or "math".
	Namespace string
	Attr      []Attribute

	// Children is the node's child list in source order.
	Children []NodeID

	// Content is the content container of a TemplateNode. Template children
	// parse into the content node, never into the template's own Children,
	// which stay empty. nilNodeID for every other node type.
	Content NodeID

	// Doctype payload (DoctypeNode only).
	Public, System       string
	HasPublic, HasSystem bool

	// Quirks is set on the DocumentNode once the doctype has been seen.
	Quirks QuirksMode
}

// An Arena is an append-only node store. NodeIDs index into it; allocation
// never moves or frees existing entries, so an ID observed anywhere during a
// parse dereferences to the same node for the whole parse.
//
// Moving a subtree (foster parenting, the adoption agency algorithm) is a
// children-list membership edit: the arena tracks each node's current parent
// internally so a move is a removal from one Children slice and an insertion
// into another, with no node identity change.
type Arena struct {
	nodes   []Node
	parents []NodeID
}

func newArena() *Arena {
	return &Arena{}
}

// alloc appends n and returns its ID. A zero Content is normalized to
// nilNodeID: node 0 is always the root, so no node's content can be 0.
func (a *Arena) alloc(n Node) NodeID {
	if n.Content == 0 {
		n.Content = nilNodeID
	}
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, n)
	a.parents = append(a.parents, nilNodeID)
	return id
}

// Len returns the number of allocated nodes.
func (a *Arena) Len() int { return len(a.nodes) }

// Get returns the node addressed by id. It panics on an ID the arena never
// issued: that is a defect in the caller, never a consequence of parser
// input.
func (a *Arena) Get(id NodeID) *Node {
	if id < 0 || int(id) >= len(a.nodes) {
		panic("html5: invalid NodeID")
	}
	return &a.nodes[id]
}

// parent returns the current parent of id, or nilNodeID if detached.
func (a *Arena) parent(id NodeID) NodeID {
	return a.parents[id]
}

// AppendChild appends child to parent's child list. It panics if child is
// already in a child list.
func (a *Arena) AppendChild(parent, child NodeID) {
	if a.parents[child] != nilNodeID {
		panic("html5: AppendChild called for an attached child Node")
	}
	p := a.Get(parent)
	p.Children = append(p.Children, child)
	a.parents[child] = parent
}

// InsertBefore inserts child into parent's child list immediately before
// ref. If ref is nilNodeID or not a child of parent, child is appended.
// It panics if child is already in a child list.
func (a *Arena) InsertBefore(parent, child, ref NodeID) {
	if a.parents[child] != nilNodeID {
		panic("html5: InsertBefore called for an attached child Node")
	}
	p := a.Get(parent)
	i := len(p.Children)
	if ref != nilNodeID {
		for j, c := range p.Children {
			if c == ref {
				i = j
				break
			}
		}
	}
	p.Children = append(p.Children, 0)
	copy(p.Children[i+1:], p.Children[i:])
	p.Children[i] = child
	a.parents[child] = parent
}

// detach removes id from its parent's child list, if any. The node itself
// stays allocated and addressable.
func (a *Arena) detach(id NodeID) {
	parent := a.parents[id]
	if parent == nilNodeID {
		return
	}
	p := a.Get(parent)
	for i, c := range p.Children {
		if c == id {
			copy(p.Children[i:], p.Children[i+1:])
			p.Children = p.Children[:len(p.Children)-1]
			break
		}
	}
	a.parents[id] = nilNodeID
}

// reparentChildren moves all of src's children to dst, preserving order.
func (a *Arena) reparentChildren(dst, src NodeID) {
	s := a.Get(src)
	children := s.Children
	s.Children = nil
	d := a.Get(dst)
	d.Children = append(d.Children, children...)
	for _, c := range children {
		a.parents[c] = dst
	}
}

// lastChild returns parent's last child, or nilNodeID.
func (a *Arena) lastChild(parent NodeID) NodeID {
	c := a.Get(parent).Children
	if len(c) == 0 {
		return nilNodeID
	}
	return c[len(c)-1]
}

// prevSibling returns the sibling immediately before id under its current
// parent, or nilNodeID.
func (a *Arena) prevSibling(id NodeID) NodeID {
	parent := a.parents[id]
	if parent == nilNodeID {
		return nilNodeID
	}
	children := a.Get(parent).Children
	for i, c := range children {
		if c == id {
			if i == 0 {
				return nilNodeID
			}
			return children[i-1]
		}
	}
	return nilNodeID
}

// clone returns a fresh node with the same type, name and attributes as id.
// The clone has no parent and no children.
func (a *Arena) clone(id NodeID) NodeID {
	n := a.Get(id)
	m := Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      make([]Attribute, len(n.Attr)),
		Content:   nilNodeID,
	}
	copy(m.Attr, n.Attr)
	return a.alloc(m)
}

// nodeStack is a stack of node IDs.
type nodeStack []NodeID

// pop pops the stack. It will panic if s is empty.
func (s *nodeStack) pop() NodeID {
	i := len(*s)
	n := (*s)[i-1]
	*s = (*s)[:i-1]
	return n
}

// top returns the most recently pushed node, or nilNodeID if s is empty.
func (s *nodeStack) top() NodeID {
	if i := len(*s); i > 0 {
		return (*s)[i-1]
	}
	return nilNodeID
}

// index returns the index of the top-most occurrence of n in the stack, or
// -1 if n is not present.
func (s *nodeStack) index(n NodeID) int {
	for i := len(*s) - 1; i >= 0; i-- {
		if (*s)[i] == n {
			return i
		}
	}
	return -1
}

// insert inserts a node at the given index.
func (s *nodeStack) insert(i int, n NodeID) {
	*s = append(*s, 0)
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = n
}

// remove removes a node from the stack. It is a no-op if n is not present.
func (s *nodeStack) remove(n NodeID) {
	i := s.index(n)
	if i == -1 {
		return
	}
	copy((*s)[i:], (*s)[i+1:])
	*s = (*s)[:len(*s)-1]
}

type insertionModeStack []insertionMode

func (s *insertionModeStack) pop() (im insertionMode) {
	i := len(*s)
	im = (*s)[i-1]
	*s = (*s)[:i-1]
	return im
}

func (s *insertionModeStack) top() insertionMode {
	if i := len(*s); i > 0 {
		return (*s)[i-1]
	}
	return nil
}
