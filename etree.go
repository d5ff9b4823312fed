// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package html5

import (
	"github.com/beevik/etree"
)

// ExportEtree converts the parsed tree into an etree document, for callers
// that want XML-style post-processing (path queries, re-serialization).
// Foreign elements and attributes keep their namespace as an element or
// attribute prefix. A template's content children are exported directly
// under the template element.
func (d *Dom) ExportEtree() *etree.Document {
	doc := etree.NewDocument()
	for _, c := range d.Node(d.Root).Children {
		exportEtreeNode(&doc.Element, d, c)
	}
	return doc
}

func exportEtreeNode(parent *etree.Element, d *Dom, id NodeID) {
	n := d.Node(id)
	switch n.Type {
	case TextNode:
		parent.CreateText(n.Data)
	case CommentNode:
		parent.CreateComment(n.Data)
	case DoctypeNode:
		parent.CreateDirective(doctypeDirective(n))
	case ElementNode, TemplateNode:
		tag := n.Data
		if n.Namespace != "" {
			tag = n.Namespace + ":" + tag
		}
		el := parent.CreateElement(tag)
		for _, at := range n.Attr {
			key := at.Key
			if at.Namespace != "" {
				key = at.Namespace + ":" + at.Key
			}
			el.CreateAttr(key, at.Val)
		}
		kids := n.Children
		if n.Type == TemplateNode {
			kids = nil
			if n.Content != nilNodeID {
				kids = d.Node(n.Content).Children
			}
		}
		for _, c := range kids {
			exportEtreeNode(el, d, c)
		}
	}
}

func doctypeDirective(n *Node) string {
	s := "DOCTYPE " + n.Data
	switch {
	case n.HasPublic:
		s += ` PUBLIC "` + n.Public + `"`
		if n.HasSystem {
			s += ` "` + n.System + `"`
		}
	case n.HasSystem:
		s += ` SYSTEM "` + n.System + `"`
	}
	return s
}
