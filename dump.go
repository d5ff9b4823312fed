// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package html5

import (
	"fmt"
	"sort"
	"strings"
)

// Dump renders the tree in the line-per-node form used by html5lib's tree
// construction tests: every line starts with "| " followed by two spaces per
// depth level. Elements print as <tag> (foreign elements as <svg tag> or
// <math tag>), attributes one per line sorted by name, text in double
// quotes, and a template's content under a "content" line. Dump reads the
// arena without modifying it; dumping twice gives identical output.
func Dump(d *Dom) string {
	var b strings.Builder
	for _, c := range d.Node(d.Root).Children {
		dumpNode(&b, d, c, 0)
	}
	return b.String()
}

func dumpIndent(b *strings.Builder, depth int) {
	b.WriteString("| ")
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func dumpNode(b *strings.Builder, d *Dom, id NodeID, depth int) {
	n := d.Node(id)
	dumpIndent(b, depth)
	switch n.Type {
	case TextNode:
		b.WriteString(`"` + n.Data + `"` + "\n")
	case CommentNode:
		b.WriteString("<!-- " + n.Data + " -->\n")
	case DoctypeNode:
		if n.HasPublic || n.HasSystem {
			fmt.Fprintf(b, "<!DOCTYPE %s %q %q>\n", n.Data, n.Public, n.System)
		} else if n.Data == "" {
			b.WriteString("<!DOCTYPE >\n")
		} else {
			fmt.Fprintf(b, "<!DOCTYPE %s>\n", n.Data)
		}
	case ElementNode, TemplateNode:
		if n.Namespace != "" {
			fmt.Fprintf(b, "<%s %s>\n", n.Namespace, n.Data)
		} else {
			fmt.Fprintf(b, "<%s>\n", n.Data)
		}
		dumpAttributes(b, n.Attr, depth+1)
		if n.Type == TemplateNode {
			dumpIndent(b, depth+1)
			b.WriteString("content\n")
			if n.Content != nilNodeID {
				for _, c := range d.Node(n.Content).Children {
					dumpNode(b, d, c, depth+2)
				}
			}
			return
		}
		for _, c := range n.Children {
			dumpNode(b, d, c, depth+1)
		}
	default:
		panic("html5: bad parser state: unexpected node type in dump")
	}
}

func dumpAttributes(b *strings.Builder, attrs []Attribute, depth int) {
	if len(attrs) == 0 {
		return
	}
	type displayAttr struct {
		name, val string
	}
	das := make([]displayAttr, 0, len(attrs))
	for _, at := range attrs {
		name := at.Key
		if at.Namespace != "" {
			name = at.Namespace + " " + at.Key
		}
		das = append(das, displayAttr{name, at.Val})
	}
	sort.Slice(das, func(i, j int) bool { return das[i].name < das[j].name })
	for _, da := range das {
		dumpIndent(b, depth)
		fmt.Fprintf(b, "%s=%q\n", da.name, da.val)
	}
}
