// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package html5

import (
	"strings"

	a "golang.org/x/net/html/atom"
)

// A parser implements the HTML5 tree construction algorithm:
// https://html.spec.whatwg.org/multipage/syntax.html#tree-construction
type parser struct {
	// tokenizer provides the tokens for the parser.
	tokenizer *Tokenizer
	// tok is the most recently read token.
	tok Token
	// Self-closing tags like <hr/> are treated as start tags, except that
	// hasSelfClosingToken is set while they are being processed.
	hasSelfClosingToken bool
	// arena stores every node of the parse; doc is the document root.
	arena *Arena
	doc   NodeID
	// The stack of open elements (section 13.2.4.2) and active formatting
	// elements (section 13.2.4.3). The afe stack may contain markerID
	// sentinels alongside real node IDs.
	oe, afe nodeStack
	// Element pointers (section 13.2.4.4).
	head, form NodeID
	// Other parsing state flags (section 13.2.4.5).
	scripting  bool
	framesetOK bool
	// im is the current insertion mode.
	im insertionMode
	// originalIM is the insertion mode to go back to after completing a text
	// or inTableText insertion mode.
	originalIM insertionMode
	// pendingTableText collects character data in the inTableText mode.
	pendingTableText []string
	// fosterParenting is whether new elements should be inserted according
	// to the foster parenting rules (section 13.2.6.1).
	fosterParenting bool
	// quirks is whether the parser is operating in "quirks mode."
	quirks bool
	// iframeSrcdoc is whether the parse is for an iframe srcdoc document,
	// which selects no-quirks when the doctype is absent.
	iframeSrcdoc bool
	// fragment is whether the parser is parsing an HTML fragment.
	fragment bool
	// context is the context element when parsing an HTML fragment
	// (section 13.4), allocated in the arena but outside the tree.
	context NodeID
	// templateStack is the stack of template insertion modes.
	templateStack insertionModeStack
	// stop is set by the strict-mode error hook to halt the token loop.
	stop bool
}

func (p *parser) get(id NodeID) *Node { return p.arena.Get(id) }

func (p *parser) top() NodeID {
	if n := p.oe.top(); n != nilNodeID {
		return n
	}
	return p.doc
}

// topAtom returns the tag atom of the current node, or zero when there is
// none or it is foreign.
func (p *parser) topAtom() a.Atom {
	t := p.top()
	n := p.get(t)
	if n.Namespace != "" {
		return 0
	}
	return n.DataAtom
}

// parseError records an advisory error at the current token's position.
func (p *parser) parseError(code string) {
	p.tokenizer.errAt(code, p.tok.Line, p.tok.Col)
}

// insertionTarget redirects insertions aimed at a template element into its
// content node; a template's own child list stays empty.
func (p *parser) insertionTarget(id NodeID) NodeID {
	if n := p.get(id); n.Type == TemplateNode {
		return n.Content
	}
	return id
}

// appendTo appends child under parent, honoring template content
// redirection.
func (p *parser) appendTo(parent, child NodeID) {
	p.arena.AppendChild(p.insertionTarget(parent), child)
}

// Stop tags for use in popUntil. These come from section 13.2.4.2.
var defaultScopeStopTags = map[string][]a.Atom{
	"":     {a.Applet, a.Caption, a.Html, a.Table, a.Td, a.Th, a.Marquee, a.Object, a.Template},
	"math": {a.AnnotationXml, a.Mi, a.Mn, a.Mo, a.Ms, a.Mtext},
	"svg":  {a.Desc, a.ForeignObject, a.Title},
}

type scope int

const (
	defaultScope scope = iota
	listItemScope
	buttonScope
	tableScope
	tableRowScope
	tableBodyScope
	selectScope
)

// popUntil pops the stack of open elements at the highest element whose tag
// is in matchTags, provided there is no higher element in the scope's stop
// tags (as defined in section 13.2.4.2). It returns whether or not there was
// such an element. If there was not, popUntil leaves the stack unchanged.
//
// For example, the set of stop tags for table scope is: "html", "table". If
// the stack was:
// ["html", "body", "font", "table", "b", "i", "u"]
// then popUntil(tableScope, "font") would return false, but
// popUntil(tableScope, "i") would return true and the stack would become:
// ["html", "body", "font", "table", "b"]
//
// If an element's tag is in both the stop tags and matchTags, then the stack
// will be popped and the function returns true (provided, of course, there
// was no higher element in the stack that was also in the stop tags).
func (p *parser) popUntil(s scope, matchTags ...a.Atom) bool {
	if i := p.indexOfElementInScope(s, matchTags...); i != -1 {
		p.oe = p.oe[:i]
		return true
	}
	return false
}

// indexOfElementInScope returns the index in p.oe of the highest element
// whose tag is in matchTags that is in scope. If no matching element is in
// scope, it returns -1.
func (p *parser) indexOfElementInScope(s scope, matchTags ...a.Atom) int {
	for i := len(p.oe) - 1; i >= 0; i-- {
		n := p.get(p.oe[i])
		tagAtom := n.DataAtom
		if n.Namespace == "" {
			for _, t := range matchTags {
				if t == tagAtom {
					return i
				}
			}
			switch s {
			case defaultScope:
				// No-op.
			case listItemScope:
				if tagAtom == a.Ol || tagAtom == a.Ul {
					return -1
				}
			case buttonScope:
				if tagAtom == a.Button {
					return -1
				}
			case tableScope:
				if tagAtom == a.Html || tagAtom == a.Table || tagAtom == a.Template {
					return -1
				}
			case selectScope:
				if tagAtom != a.Optgroup && tagAtom != a.Option {
					return -1
				}
			default:
				panic("html5: unreachable")
			}
		}
		switch s {
		case defaultScope, listItemScope, buttonScope:
			for _, t := range defaultScopeStopTags[n.Namespace] {
				if t == tagAtom {
					return -1
				}
			}
		}
	}
	return -1
}

// elementInScope is like popUntil, except that it doesn't modify the stack
// of open elements.
func (p *parser) elementInScope(s scope, matchTags ...a.Atom) bool {
	return p.indexOfElementInScope(s, matchTags...) != -1
}

// clearStackToContext pops elements off the stack of open elements until a
// scope-defined context element remains.
func (p *parser) clearStackToContext(s scope) {
	for i := len(p.oe) - 1; i >= 0; i-- {
		tagAtom := p.get(p.oe[i]).DataAtom
		switch s {
		case tableScope:
			if tagAtom == a.Html || tagAtom == a.Table || tagAtom == a.Template {
				p.oe = p.oe[:i+1]
				return
			}
		case tableRowScope:
			if tagAtom == a.Html || tagAtom == a.Tr || tagAtom == a.Template {
				p.oe = p.oe[:i+1]
				return
			}
		case tableBodyScope:
			if tagAtom == a.Html || tagAtom == a.Tbody || tagAtom == a.Tfoot || tagAtom == a.Thead || tagAtom == a.Template {
				p.oe = p.oe[:i+1]
				return
			}
		default:
			panic("html5: unreachable")
		}
	}
}

// parseGenericRawTextElement implements the generic raw text element parsing
// algorithm defined in 13.2.6.2: the element's content is tokenized as raw
// text until the matching end tag.
func (p *parser) parseGenericRawTextElement() {
	p.addElement()
	p.tokenizer.SetState(RAWTEXTState)
	p.originalIM = p.im
	p.im = textIM
}

// parseGenericRCDATAElement is like parseGenericRawTextElement but character
// references remain live in the content (title, textarea).
func (p *parser) parseGenericRCDATAElement() {
	p.addElement()
	p.tokenizer.SetState(RCDATAState)
	p.originalIM = p.im
	p.im = textIM
}

// generateImpliedEndTags pops nodes off the stack of open elements as long
// as the top node has a tag name of dd, dt, li, optgroup, option, p, rb, rp,
// rt or rtc. If exceptions are specified, nodes with that name will not be
// popped off.
func (p *parser) generateImpliedEndTags(exceptions ...string) {
	var i int
loop:
	for i = len(p.oe) - 1; i >= 0; i-- {
		n := p.get(p.oe[i])
		if n.Type != ElementNode {
			break
		}
		switch n.DataAtom {
		case a.Dd, a.Dt, a.Li, a.Optgroup, a.Option, a.P, a.Rb, a.Rp, a.Rt, a.Rtc:
			for _, except := range exceptions {
				if n.Data == except {
					break loop
				}
			}
			continue
		}
		break
	}

	p.oe = p.oe[:i+1]
}

// addChild adds a child node n to the top element, and pushes n onto the
// stack of open elements if it is an element node.
func (p *parser) addChild(n NodeID) {
	if p.shouldFosterParent() {
		p.fosterParent(n)
	} else {
		p.appendTo(p.top(), n)
	}

	switch p.get(n).Type {
	case ElementNode, TemplateNode:
		p.oe = append(p.oe, n)
	}
}

// shouldFosterParent returns whether the next node to be added should be
// foster parented.
func (p *parser) shouldFosterParent() bool {
	if p.fosterParenting {
		switch p.topAtom() {
		case a.Table, a.Tbody, a.Tfoot, a.Thead, a.Tr:
			return true
		}
	}
	return false
}

// fosterParent adds a child node according to the foster parenting rules.
// Section 13.2.6.1, "foster parenting".
func (p *parser) fosterParent(n NodeID) {
	table, template := nilNodeID, nilNodeID
	var i, j int
	for i = len(p.oe) - 1; i >= 0; i-- {
		if p.get(p.oe[i]).DataAtom == a.Table {
			table = p.oe[i]
			break
		}
	}
	for j = len(p.oe) - 1; j >= 0; j-- {
		if p.get(p.oe[j]).DataAtom == a.Template {
			template = p.oe[j]
			break
		}
	}

	if template != nilNodeID && (table == nilNodeID || j > i) {
		p.appendTo(template, n)
		return
	}

	parent := nilNodeID
	if table == nilNodeID {
		// The foster parent is the html element.
		parent = p.oe[0]
	} else {
		parent = p.arena.parent(table)
	}
	if parent == nilNodeID {
		parent = p.oe[i-1]
	}

	prev := nilNodeID
	if table != nilNodeID && p.arena.parent(table) == parent {
		prev = p.arena.prevSibling(table)
	} else {
		prev = p.arena.lastChild(parent)
	}
	if prev != nilNodeID && p.get(prev).Type == TextNode && p.get(n).Type == TextNode {
		p.get(prev).Data += p.get(n).Data
		return
	}

	p.arena.InsertBefore(parent, n, table)
}

// addText adds text to the preceding node if it is a text node, or else it
// creates a new text node.
func (p *parser) addText(text string) {
	if text == "" {
		return
	}

	if p.shouldFosterParent() {
		p.fosterParent(p.arena.alloc(Node{Type: TextNode, Data: text}))
		return
	}

	t := p.insertionTarget(p.top())
	if c := p.arena.lastChild(t); c != nilNodeID && p.get(c).Type == TextNode {
		p.get(c).Data += text
		return
	}
	p.arena.AppendChild(t, p.arena.alloc(Node{Type: TextNode, Data: text}))
}

// addElement adds a child element based on the current token.
func (p *parser) addElement() {
	n := Node{
		Type:     ElementNode,
		DataAtom: p.tok.DataAtom,
		Data:     p.tok.Data,
		Attr:     p.tok.Attr,
	}
	if p.tok.DataAtom == a.Template {
		n.Type = TemplateNode
	}
	id := p.arena.alloc(n)
	if p.get(id).Type == TemplateNode {
		content := p.arena.alloc(Node{Type: FragmentNode})
		p.get(id).Content = content
	}
	p.addChild(id)
}

// Section 13.2.4.3.
func (p *parser) addFormattingElement() {
	tagAtom, attr := p.tok.DataAtom, p.tok.Attr
	p.addElement()

	// Implement the Noah's Ark clause, but with three per family instead of
	// two.
	identicalElements := 0
findIdenticalElements:
	for i := len(p.afe) - 1; i >= 0; i-- {
		if p.afe[i] == markerID {
			break
		}
		n := p.get(p.afe[i])
		if n.Type != ElementNode {
			continue
		}
		if n.Namespace != "" {
			continue
		}
		if n.DataAtom != tagAtom {
			continue
		}
		if len(n.Attr) != len(attr) {
			continue
		}
	compareAttributes:
		for _, t0 := range n.Attr {
			for _, t1 := range attr {
				if t0.Key == t1.Key && t0.Namespace == t1.Namespace && t0.Val == t1.Val {
					// Found a match for this attribute, continue with the
					// next attribute.
					continue compareAttributes
				}
			}
			// If we get here, there is no attribute that matches t0.
			// Therefore the element is not identical to the new one.
			continue findIdenticalElements
		}

		identicalElements++
		if identicalElements >= 3 {
			p.afe.remove(p.afe[i])
		}
	}

	p.afe = append(p.afe, p.top())
}

// Section 13.2.4.3.
func (p *parser) clearActiveFormattingElements() {
	for {
		if n := p.afe.pop(); len(p.afe) == 0 || n == markerID {
			return
		}
	}
}

// Section 13.2.4.3.
func (p *parser) reconstructActiveFormattingElements() {
	n := p.afe.top()
	if n == nilNodeID {
		return
	}
	if n == markerID || p.oe.index(n) != -1 {
		return
	}
	i := len(p.afe) - 1
	for n != markerID && p.oe.index(n) == -1 {
		if i == 0 {
			i = -1
			break
		}
		i--
		n = p.afe[i]
	}
	for {
		i++
		clone := p.arena.clone(p.afe[i])
		p.addChild(clone)
		p.afe[i] = clone
		if i == len(p.afe)-1 {
			break
		}
	}
}

// Section 13.2.5.
func (p *parser) acknowledgeSelfClosingTag() {
	p.hasSelfClosingToken = false
}

// An insertion mode (section 13.2.4.1) is the state transition function from
// a particular state in the HTML5 parser's state machine. It updates the
// parser's fields depending on parser.tok (where EOFToken means EOF). It
// returns whether the token was consumed.
type insertionMode func(*parser) bool

// setOriginalIM sets the insertion mode to return to after completing a text
// or inTableText insertion mode. Section 13.2.4.1, "using the rules for".
func (p *parser) setOriginalIM() {
	if p.originalIM != nil {
		panic("html5: bad parser state: originalIM was set twice")
	}
	p.originalIM = p.im
}

// Section 13.2.4.1, "reset the insertion mode".
func (p *parser) resetInsertionMode() {
	for i := len(p.oe) - 1; i >= 0; i-- {
		n := p.get(p.oe[i])
		last := i == 0
		if last && p.context != nilNodeID {
			n = p.get(p.context)
		}

		switch n.DataAtom {
		case a.Select:
			if !last {
				for ancestor, first := p.oe[i], p.oe[0]; ancestor != first; {
					ancestor = p.oe[p.oe.index(ancestor)-1]
					switch p.get(ancestor).DataAtom {
					case a.Template:
						p.im = inSelectIM
						return
					case a.Table:
						p.im = inSelectInTableIM
						return
					}
				}
			}
			p.im = inSelectIM
		case a.Td, a.Th:
			if !last {
				p.im = inCellIM
			} else {
				continue
			}
		case a.Tr:
			p.im = inRowIM
		case a.Tbody, a.Thead, a.Tfoot:
			p.im = inTableBodyIM
		case a.Caption:
			p.im = inCaptionIM
		case a.Colgroup:
			p.im = inColumnGroupIM
		case a.Table:
			p.im = inTableIM
		case a.Template:
			// The insertion mode is the current template insertion mode.
			if im := p.templateStack.top(); im != nil {
				p.im = im
			} else {
				p.im = inBodyIM
			}
		case a.Head:
			if !last {
				p.im = inHeadIM
			} else {
				continue
			}
		case a.Body:
			p.im = inBodyIM
		case a.Frameset:
			p.im = inFramesetIM
		case a.Html:
			if p.head == nilNodeID {
				p.im = beforeHeadIM
			} else {
				p.im = afterHeadIM
			}
		default:
			if last {
				p.im = inBodyIM
				return
			}
			continue
		}
		return
	}
	p.im = inBodyIM
}

const whitespace = " \t\r\n\f"

// Section 13.2.6.4.1.
func initialIM(p *parser) bool {
	switch p.tok.Type {
	case CharacterToken:
		p.tok.Data = strings.TrimLeft(p.tok.Data, whitespace)
		if len(p.tok.Data) == 0 {
			// It was all whitespace, so ignore it.
			return true
		}
	case CommentToken:
		p.appendTo(p.doc, p.arena.alloc(Node{Type: CommentNode, Data: p.tok.Data}))
		return true
	case DoctypeToken:
		if !isConformingDoctype(&p.tok) {
			p.parseError("non-conforming-doctype")
		}
		n := Node{
			Type:      DoctypeNode,
			Data:      p.tok.Data,
			Public:    p.tok.Public,
			System:    p.tok.System,
			HasPublic: p.tok.HasPublic,
			HasSystem: p.tok.HasSystem,
		}
		p.appendTo(p.doc, p.arena.alloc(n))
		mode := doctypeQuirks(&p.tok)
		if p.iframeSrcdoc {
			mode = NoQuirks
		}
		p.get(p.doc).Quirks = mode
		p.quirks = mode == Quirks
		p.im = beforeHTMLIM
		return true
	}
	if !p.iframeSrcdoc {
		p.parseError("missing-doctype")
		p.get(p.doc).Quirks = Quirks
		p.quirks = true
	}
	p.im = beforeHTMLIM
	return false
}

// Section 13.2.6.4.2.
func beforeHTMLIM(p *parser) bool {
	switch p.tok.Type {
	case DoctypeToken:
		p.parseError("unexpected-doctype")
		return true
	case CharacterToken:
		p.tok.Data = strings.TrimLeft(p.tok.Data, whitespace)
		if len(p.tok.Data) == 0 {
			// It was all whitespace, so ignore it.
			return true
		}
	case StartTagToken:
		if p.tok.DataAtom == a.Html {
			p.addElement()
			p.im = beforeHeadIM
			return true
		}
	case EndTagToken:
		switch p.tok.DataAtom {
		case a.Head, a.Body, a.Html, a.Br:
			p.parseImpliedToken(StartTagToken, a.Html, a.Html.String())
			return false
		default:
			p.parseError("unexpected-end-tag")
			// Ignore the token.
			return true
		}
	case CommentToken:
		p.appendTo(p.doc, p.arena.alloc(Node{Type: CommentNode, Data: p.tok.Data}))
		return true
	}
	p.parseImpliedToken(StartTagToken, a.Html, a.Html.String())
	return false
}

// Section 13.2.6.4.3.
func beforeHeadIM(p *parser) bool {
	switch p.tok.Type {
	case CharacterToken:
		p.tok.Data = strings.TrimLeft(p.tok.Data, whitespace)
		if len(p.tok.Data) == 0 {
			// It was all whitespace, so ignore it.
			return true
		}
	case StartTagToken:
		switch p.tok.DataAtom {
		case a.Head:
			p.addElement()
			p.head = p.top()
			p.im = inHeadIM
			return true
		case a.Html:
			return inBodyIM(p)
		}
	case EndTagToken:
		switch p.tok.DataAtom {
		case a.Head, a.Body, a.Html, a.Br:
			p.parseImpliedToken(StartTagToken, a.Head, a.Head.String())
			return false
		default:
			p.parseError("unexpected-end-tag")
			// Ignore the token.
			return true
		}
	case CommentToken:
		p.addChild(p.arena.alloc(Node{Type: CommentNode, Data: p.tok.Data}))
		return true
	case DoctypeToken:
		p.parseError("unexpected-doctype")
		// Ignore the token.
		return true
	}

	p.parseImpliedToken(StartTagToken, a.Head, a.Head.String())
	return false
}

// Section 13.2.6.4.4.
func inHeadIM(p *parser) bool {
	switch p.tok.Type {
	case CharacterToken:
		s := strings.TrimLeft(p.tok.Data, whitespace)
		if len(s) < len(p.tok.Data) {
			// Add the initial whitespace to the current node.
			p.addText(p.tok.Data[:len(p.tok.Data)-len(s)])
			if s == "" {
				return true
			}
			p.tok.Data = s
		}
	case StartTagToken:
		switch p.tok.DataAtom {
		case a.Html:
			return inBodyIM(p)
		case a.Base, a.Basefont, a.Bgsound, a.Link, a.Meta:
			p.addElement()
			p.oe.pop()
			p.acknowledgeSelfClosingTag()
			return true
		case a.Noscript:
			if p.scripting {
				p.parseGenericRawTextElement()
				return true
			}
			p.addElement()
			p.im = inHeadNoscriptIM
			return true
		case a.Script:
			p.addElement()
			p.tokenizer.SetState(ScriptDataState)
			p.setOriginalIM()
			p.im = textIM
			return true
		case a.Title:
			p.parseGenericRCDATAElement()
			return true
		case a.Noframes, a.Style:
			p.parseGenericRawTextElement()
			return true
		case a.Head:
			p.parseError("unexpected-start-tag")
			// Ignore the token.
			return true
		case a.Template:
			p.addElement()
			p.afe = append(p.afe, markerID)
			p.framesetOK = false
			p.im = inTemplateIM
			p.templateStack = append(p.templateStack, inTemplateIM)
			return true
		}
	case EndTagToken:
		switch p.tok.DataAtom {
		case a.Head:
			p.oe.pop()
			p.im = afterHeadIM
			return true
		case a.Body, a.Html, a.Br:
			p.parseImpliedToken(EndTagToken, a.Head, a.Head.String())
			return false
		case a.Template:
			if !p.oeContains(a.Template) {
				p.parseError("unexpected-end-tag")
				// Ignore the token.
				return true
			}
			p.generateImpliedEndTags()
			for i := len(p.oe) - 1; i >= 0; i-- {
				if n := p.get(p.oe[i]); n.Namespace == "" && n.DataAtom == a.Template {
					p.oe = p.oe[:i]
					break
				}
			}
			p.clearActiveFormattingElements()
			p.templateStack.pop()
			p.resetInsertionMode()
			return true
		default:
			p.parseError("unexpected-end-tag")
			// Ignore the token.
			return true
		}
	case CommentToken:
		p.addChild(p.arena.alloc(Node{Type: CommentNode, Data: p.tok.Data}))
		return true
	case DoctypeToken:
		p.parseError("unexpected-doctype")
		// Ignore the token.
		return true
	}

	p.parseImpliedToken(EndTagToken, a.Head, a.Head.String())
	return false
}

// Section 13.2.6.4.5.
func inHeadNoscriptIM(p *parser) bool {
	switch p.tok.Type {
	case DoctypeToken:
		p.parseError("unexpected-doctype")
		// Ignore the token.
		return true
	case StartTagToken:
		switch p.tok.DataAtom {
		case a.Html:
			return inBodyIM(p)
		case a.Basefont, a.Bgsound, a.Link, a.Meta, a.Noframes, a.Style:
			return inHeadIM(p)
		case a.Head:
			p.parseError("unexpected-start-tag")
			// Ignore the token.
			return true
		case a.Noscript:
			p.parseError("unexpected-start-tag")
			// Don't let the tokenizer go into raw text mode, even if a
			// <noscript> tag is ignored.
			return true
		}
	case EndTagToken:
		switch p.tok.DataAtom {
		case a.Noscript, a.Br:
		default:
			p.parseError("unexpected-end-tag")
			// Ignore the token.
			return true
		}
	case CharacterToken:
		s := strings.TrimLeft(p.tok.Data, whitespace)
		if len(s) == 0 {
			// It was all whitespace.
			return inHeadIM(p)
		}
	case CommentToken:
		return inHeadIM(p)
	}
	if p.tok.Type != EndTagToken || p.tok.DataAtom != a.Noscript {
		p.parseError("unexpected-token-in-head-noscript")
	}
	p.oe.pop()
	if p.topAtom() != a.Head {
		panic("html5: bad parser state: the new current node will be a head element")
	}
	p.im = inHeadIM
	if p.tok.Type == EndTagToken && p.tok.DataAtom == a.Noscript {
		return true
	}
	return false
}

// Section 13.2.6.4.6.
func afterHeadIM(p *parser) bool {
	switch p.tok.Type {
	case CharacterToken:
		s := strings.TrimLeft(p.tok.Data, whitespace)
		if len(s) < len(p.tok.Data) {
			// Add the initial whitespace to the current node.
			p.addText(p.tok.Data[:len(p.tok.Data)-len(s)])
			if s == "" {
				return true
			}
			p.tok.Data = s
		}
	case StartTagToken:
		switch p.tok.DataAtom {
		case a.Html:
			return inBodyIM(p)
		case a.Body:
			p.addElement()
			p.framesetOK = false
			p.im = inBodyIM
			return true
		case a.Frameset:
			p.addElement()
			p.im = inFramesetIM
			return true
		case a.Base, a.Basefont, a.Bgsound, a.Link, a.Meta, a.Noframes, a.Script, a.Style, a.Template, a.Title:
			p.parseError("unexpected-start-tag")
			p.oe = append(p.oe, p.head)
			defer p.oe.remove(p.head)
			return inHeadIM(p)
		case a.Head:
			p.parseError("unexpected-start-tag")
			// Ignore the token.
			return true
		}
	case EndTagToken:
		switch p.tok.DataAtom {
		case a.Body, a.Html, a.Br:
			// Drop down to creating an implied <body> tag.
		case a.Template:
			return inHeadIM(p)
		default:
			p.parseError("unexpected-end-tag")
			// Ignore the token.
			return true
		}
	case CommentToken:
		p.addChild(p.arena.alloc(Node{Type: CommentNode, Data: p.tok.Data}))
		return true
	case DoctypeToken:
		p.parseError("unexpected-doctype")
		// Ignore the token.
		return true
	}

	p.parseImpliedToken(StartTagToken, a.Body, a.Body.String())
	p.framesetOK = true
	return false
}

// copyAttributes copies attributes of the token onto the node, but only for
// keys the node does not already have.
func (p *parser) copyAttributes(id NodeID, t Token) {
	if len(t.Attr) == 0 {
		return
	}
	n := p.get(id)
	attr := map[string]string{}
	for _, t0 := range n.Attr {
		attr[t0.Key] = t0.Val
	}
	for _, t1 := range t.Attr {
		if _, ok := attr[t1.Key]; !ok {
			n.Attr = append(n.Attr, t1)
			attr[t1.Key] = t1.Val
		}
	}
}

// Section 13.2.6.4.7.
func inBodyIM(p *parser) bool {
	switch p.tok.Type {
	case CharacterToken:
		d := p.tok.Data
		switch n := p.top(); p.get(n).DataAtom {
		case a.Pre, a.Listing:
			if len(p.get(n).Children) == 0 {
				// Ignore a newline at the start of a <pre> block.
				if d != "" && d[0] == '\n' {
					d = d[1:]
				}
			}
		}
		d = strings.Replace(d, "\x00", "", -1)
		if d == "" {
			return true
		}
		p.reconstructActiveFormattingElements()
		p.addText(d)
		if p.framesetOK && strings.TrimLeft(d, whitespace) != "" {
			// There were non-whitespace characters inserted.
			p.framesetOK = false
		}
	case StartTagToken:
		switch p.tok.DataAtom {
		case a.Html:
			p.parseError("unexpected-start-tag")
			if p.oeContains(a.Template) {
				return true
			}
			p.copyAttributes(p.oe[0], p.tok)
		case a.Base, a.Basefont, a.Bgsound, a.Link, a.Meta, a.Noframes, a.Script, a.Style, a.Template, a.Title:
			return inHeadIM(p)
		case a.Body:
			p.parseError("unexpected-start-tag")
			if p.oeContains(a.Template) {
				return true
			}
			if len(p.oe) >= 2 {
				body := p.oe[1]
				if n := p.get(body); n.Type == ElementNode && n.DataAtom == a.Body {
					p.framesetOK = false
					p.copyAttributes(body, p.tok)
				}
			}
		case a.Frameset:
			p.parseError("unexpected-start-tag")
			if !p.framesetOK || len(p.oe) < 2 || p.get(p.oe[1]).DataAtom != a.Body {
				// Ignore the token.
				return true
			}
			body := p.oe[1]
			p.arena.detach(body)
			p.oe = p.oe[:1]
			p.addElement()
			p.im = inFramesetIM
			return true
		case a.Address, a.Article, a.Aside, a.Blockquote, a.Center, a.Details, a.Dialog, a.Dir, a.Div, a.Dl, a.Fieldset, a.Figcaption, a.Figure, a.Footer, a.Header, a.Hgroup, a.Main, a.Menu, a.Nav, a.Ol, a.P, a.Section, a.Summary, a.Ul:
			p.popUntil(buttonScope, a.P)
			p.addElement()
		case a.H1, a.H2, a.H3, a.H4, a.H5, a.H6:
			p.popUntil(buttonScope, a.P)
			switch p.topAtom() {
			case a.H1, a.H2, a.H3, a.H4, a.H5, a.H6:
				p.parseError("unexpected-start-tag")
				p.oe.pop()
			}
			p.addElement()
		case a.Pre, a.Listing:
			p.popUntil(buttonScope, a.P)
			p.addElement()
			// The newline, if any, will be dealt with by the CharacterToken
			// case.
			p.framesetOK = false
		case a.Form:
			if p.form != nilNodeID && !p.oeContains(a.Template) {
				p.parseError("unexpected-start-tag")
				// Ignore the token.
				return true
			}
			p.popUntil(buttonScope, a.P)
			p.addElement()
			if !p.oeContains(a.Template) {
				p.form = p.top()
			}
		case a.Li:
			p.framesetOK = false
			for i := len(p.oe) - 1; i >= 0; i-- {
				node := p.get(p.oe[i])
				switch node.DataAtom {
				case a.Li:
					p.oe = p.oe[:i]
				case a.Address, a.Div, a.P:
					continue
				default:
					if !isSpecialElement(node) {
						continue
					}
				}
				break
			}
			p.popUntil(buttonScope, a.P)
			p.addElement()
		case a.Dd, a.Dt:
			p.framesetOK = false
			for i := len(p.oe) - 1; i >= 0; i-- {
				node := p.get(p.oe[i])
				switch node.DataAtom {
				case a.Dd, a.Dt:
					p.oe = p.oe[:i]
				case a.Address, a.Div, a.P:
					continue
				default:
					if !isSpecialElement(node) {
						continue
					}
				}
				break
			}
			p.popUntil(buttonScope, a.P)
			p.addElement()
		case a.Plaintext:
			p.popUntil(buttonScope, a.P)
			p.addElement()
			// PLAINTEXT is terminal; the tokenizer never leaves it.
			p.tokenizer.SetState(PLAINTEXTState)
		case a.Button:
			if p.elementInScope(defaultScope, a.Button) {
				p.parseError("unexpected-start-tag")
				p.parseImpliedToken(EndTagToken, a.Button, a.Button.String())
				return false
			}
			p.reconstructActiveFormattingElements()
			p.addElement()
			p.framesetOK = false
		case a.A:
			for i := len(p.afe) - 1; i >= 0 && p.afe[i] != markerID; i-- {
				if n := p.afe[i]; p.get(n).DataAtom == a.A {
					p.parseError("unexpected-start-tag")
					p.inBodyEndTagFormatting(a.A, "a")
					p.oe.remove(n)
					p.afe.remove(n)
					break
				}
			}
			p.reconstructActiveFormattingElements()
			p.addFormattingElement()
		case a.B, a.Big, a.Code, a.Em, a.Font, a.I, a.S, a.Small, a.Strike, a.Strong, a.Tt, a.U:
			p.reconstructActiveFormattingElements()
			p.addFormattingElement()
		case a.Nobr:
			p.reconstructActiveFormattingElements()
			if p.elementInScope(defaultScope, a.Nobr) {
				p.parseError("unexpected-start-tag")
				p.inBodyEndTagFormatting(a.Nobr, "nobr")
				p.reconstructActiveFormattingElements()
			}
			p.addFormattingElement()
		case a.Applet, a.Marquee, a.Object:
			p.reconstructActiveFormattingElements()
			p.addElement()
			p.afe = append(p.afe, markerID)
			p.framesetOK = false
		case a.Table:
			if !p.quirks {
				p.popUntil(buttonScope, a.P)
			}
			p.addElement()
			p.framesetOK = false
			p.im = inTableIM
			return true
		case a.Area, a.Br, a.Embed, a.Img, a.Input, a.Keygen, a.Wbr:
			p.reconstructActiveFormattingElements()
			p.addElement()
			p.oe.pop()
			p.acknowledgeSelfClosingTag()
			if p.tok.DataAtom == a.Input {
				for _, t := range p.tok.Attr {
					if t.Key == "type" {
						if strings.ToLower(t.Val) == "hidden" {
							// Skip setting framesetOK = false.
							return true
						}
					}
				}
			}
			p.framesetOK = false
		case a.Param, a.Source, a.Track:
			p.addElement()
			p.oe.pop()
			p.acknowledgeSelfClosingTag()
		case a.Hr:
			p.popUntil(buttonScope, a.P)
			p.addElement()
			p.oe.pop()
			p.acknowledgeSelfClosingTag()
			p.framesetOK = false
		case a.Image:
			p.parseError("unexpected-start-tag")
			p.tok.DataAtom = a.Img
			p.tok.Data = a.Img.String()
			return false
		case a.Textarea:
			p.addElement()
			p.tokenizer.SetState(RCDATAState)
			p.setOriginalIM()
			p.framesetOK = false
			p.im = textIM
		case a.Xmp:
			p.popUntil(buttonScope, a.P)
			p.reconstructActiveFormattingElements()
			p.framesetOK = false
			p.parseGenericRawTextElement()
		case a.Iframe:
			p.framesetOK = false
			p.parseGenericRawTextElement()
		case a.Noembed:
			p.parseGenericRawTextElement()
		case a.Noscript:
			if p.scripting {
				p.parseGenericRawTextElement()
				return true
			}
			p.reconstructActiveFormattingElements()
			p.addElement()
		case a.Select:
			p.reconstructActiveFormattingElements()
			p.addElement()
			p.framesetOK = false
			p.im = inSelectIM
			return true
		case a.Optgroup, a.Option:
			if p.topAtom() == a.Option {
				p.oe.pop()
			}
			p.reconstructActiveFormattingElements()
			p.addElement()
		case a.Rb, a.Rtc:
			if p.elementInScope(defaultScope, a.Ruby) {
				p.generateImpliedEndTags()
			}
			p.addElement()
		case a.Rp, a.Rt:
			if p.elementInScope(defaultScope, a.Ruby) {
				p.generateImpliedEndTags("rtc")
			}
			p.addElement()
		case a.Math, a.Svg:
			p.reconstructActiveFormattingElements()
			if p.tok.DataAtom == a.Math {
				adjustAttributeNames(p.tok.Attr, mathMLAttributeAdjustments)
			} else {
				adjustAttributeNames(p.tok.Attr, svgAttributeAdjustments)
			}
			adjustForeignAttributes(p.tok.Attr)
			p.addElement()
			p.get(p.top()).Namespace = p.tok.Data
			if p.hasSelfClosingToken {
				p.oe.pop()
				p.acknowledgeSelfClosingTag()
			}
			return true
		case a.Caption, a.Col, a.Colgroup, a.Frame, a.Head, a.Tbody, a.Td, a.Tfoot, a.Th, a.Thead, a.Tr:
			p.parseError("unexpected-start-tag")
			// Ignore the token.
		default:
			p.reconstructActiveFormattingElements()
			p.addElement()
		}
	case EndTagToken:
		switch p.tok.DataAtom {
		case a.Body:
			if p.elementInScope(defaultScope, a.Body) {
				p.im = afterBodyIM
			} else {
				p.parseError("unexpected-end-tag")
			}
		case a.Html:
			if p.elementInScope(defaultScope, a.Body) {
				p.parseImpliedToken(EndTagToken, a.Body, a.Body.String())
				return false
			}
			p.parseError("unexpected-end-tag")
			return true
		case a.Address, a.Article, a.Aside, a.Blockquote, a.Button, a.Center, a.Details, a.Dialog, a.Dir, a.Div, a.Dl, a.Fieldset, a.Figcaption, a.Figure, a.Footer, a.Header, a.Hgroup, a.Listing, a.Main, a.Menu, a.Nav, a.Ol, a.Pre, a.Section, a.Summary, a.Ul:
			if !p.popUntil(defaultScope, p.tok.DataAtom) {
				p.parseError("unexpected-end-tag")
			}
		case a.Form:
			if p.oeContains(a.Template) {
				i := p.indexOfElementInScope(defaultScope, a.Form)
				if i == -1 {
					p.parseError("unexpected-end-tag")
					// Ignore the token.
					return true
				}
				p.generateImpliedEndTags()
				if p.get(p.oe[i]).DataAtom != a.Form {
					p.parseError("unexpected-end-tag")
					// Ignore the token.
					return true
				}
				p.popUntil(defaultScope, a.Form)
			} else {
				node := p.form
				p.form = nilNodeID
				i := p.indexOfElementInScope(defaultScope, a.Form)
				if node == nilNodeID || i == -1 || p.oe[i] != node {
					p.parseError("unexpected-end-tag")
					// Ignore the token.
					return true
				}
				p.generateImpliedEndTags()
				if p.oe[i] != node {
					p.parseError("unexpected-end-tag")
				}
				p.oe.remove(node)
			}
		case a.P:
			if !p.elementInScope(buttonScope, a.P) {
				p.parseError("unexpected-end-tag")
				p.parseImpliedToken(StartTagToken, a.P, a.P.String())
			}
			p.popUntil(buttonScope, a.P)
		case a.Li:
			if !p.popUntil(listItemScope, a.Li) {
				p.parseError("unexpected-end-tag")
			}
		case a.Dd, a.Dt:
			if !p.popUntil(defaultScope, p.tok.DataAtom) {
				p.parseError("unexpected-end-tag")
			}
		case a.H1, a.H2, a.H3, a.H4, a.H5, a.H6:
			if !p.popUntil(defaultScope, a.H1, a.H2, a.H3, a.H4, a.H5, a.H6) {
				p.parseError("unexpected-end-tag")
			}
		case a.A, a.B, a.Big, a.Code, a.Em, a.Font, a.I, a.Nobr, a.S, a.Small, a.Strike, a.Strong, a.Tt, a.U:
			p.inBodyEndTagFormatting(p.tok.DataAtom, p.tok.Data)
		case a.Applet, a.Marquee, a.Object:
			if p.popUntil(defaultScope, p.tok.DataAtom) {
				p.clearActiveFormattingElements()
			} else {
				p.parseError("unexpected-end-tag")
			}
		case a.Br:
			p.parseError("unexpected-end-tag")
			p.tok.Type = StartTagToken
			p.tok.Attr = nil
			return false
		case a.Template:
			return inHeadIM(p)
		default:
			p.inBodyEndTagOther(p.tok.DataAtom, p.tok.Data)
		}
	case CommentToken:
		p.addChild(p.arena.alloc(Node{Type: CommentNode, Data: p.tok.Data}))
	case DoctypeToken:
		p.parseError("unexpected-doctype")
		// Ignore the token.
	case EOFToken:
		if len(p.templateStack) > 0 {
			p.im = inTemplateIM
			return false
		}
		for _, e := range p.oe {
			switch p.get(e).DataAtom {
			case a.Dd, a.Dt, a.Li, a.Optgroup, a.Option, a.P, a.Rb, a.Rp, a.Rt, a.Rtc, a.Tbody, a.Td, a.Tfoot, a.Th,
				a.Thead, a.Tr, a.Body, a.Html:
			default:
				p.parseError("expected-closing-tag-but-got-eof")
				return true
			}
		}
		// Stop parsing.
	}

	return true
}

func (p *parser) inBodyEndTagFormatting(tagAtom a.Atom, tagName string) {
	// This is the "adoption agency" algorithm, described at
	// https://html.spec.whatwg.org/multipage/syntax.html#adoptionAgency

	// Steps 1-2.
	if current := p.top(); p.get(current).Data == tagName && p.afe.index(current) == -1 {
		p.oe.pop()
		return
	}

	// Steps 3-5. The outer loop.
	for i := 0; i < 8; i++ {
		// Step 6. Find the formatting element.
		formattingElement := nilNodeID
		for j := len(p.afe) - 1; j >= 0; j-- {
			if p.afe[j] == markerID {
				break
			}
			if p.get(p.afe[j]).DataAtom == tagAtom {
				formattingElement = p.afe[j]
				break
			}
		}
		if formattingElement == nilNodeID {
			p.inBodyEndTagOther(tagAtom, tagName)
			return
		}

		// Step 7. Ignore the tag if the formatting element is not in the
		// stack of open elements.
		feIndex := p.oe.index(formattingElement)
		if feIndex == -1 {
			p.parseError("adoption-agency-1.2")
			p.afe.remove(formattingElement)
			return
		}
		// Step 8. Ignore the tag if the formatting element is not in scope.
		if !p.elementInScope(defaultScope, tagAtom) {
			p.parseError("adoption-agency-4.4")
			// Ignore the token.
			return
		}

		// Step 9. This step is omitted because it's just a parse error but
		// no need to return.
		if p.top() != formattingElement {
			p.parseError("adoption-agency-1.3")
		}

		// Steps 10-11. Find the furthest block.
		furthestBlock := nilNodeID
		for _, e := range p.oe[feIndex:] {
			if isSpecialElement(p.get(e)) {
				furthestBlock = e
				break
			}
		}
		if furthestBlock == nilNodeID {
			e := p.oe.pop()
			for e != formattingElement {
				e = p.oe.pop()
			}
			p.afe.remove(e)
			return
		}

		// Steps 12-13. Find the common ancestor and bookmark node.
		commonAncestor := p.doc
		if feIndex > 0 {
			commonAncestor = p.oe[feIndex-1]
		}
		bookmark := p.afe.index(formattingElement)

		// Step 14. The inner loop. Find the lastNode to reparent.
		lastNode := furthestBlock
		node := furthestBlock
		x := p.oe.index(node)
		// Step 14.1.
		j := 0
		for {
			// Step 14.2.
			j++
			// Step 14.3.
			x--
			node = p.oe[x]
			// Step 14.4. Go to the next step if node is the formatting
			// element.
			if node == formattingElement {
				break
			}
			// Step 14.5. Remove node from the list of active formatting
			// elements if the inner loop counter is greater than three and
			// node is in the list of active formatting elements.
			if ni := p.afe.index(node); j > 3 && ni > -1 {
				p.afe.remove(node)
				// If any element of the list of active formatting elements
				// is removed, we need to take care whether bookmark should
				// be decremented or not.
				if ni <= bookmark {
					bookmark--
				}
				continue
			}
			// Step 14.6. Continue the next inner loop if node is not in the
			// list of active formatting elements.
			if p.afe.index(node) == -1 {
				p.oe.remove(node)
				continue
			}
			// Step 14.7.
			clone := p.arena.clone(node)
			p.afe[p.afe.index(node)] = clone
			p.oe[p.oe.index(node)] = clone
			node = clone
			// Step 14.8.
			if lastNode == furthestBlock {
				bookmark = p.afe.index(node) + 1
			}
			// Step 14.9.
			p.arena.detach(lastNode)
			p.appendTo(node, lastNode)
			// Step 14.10.
			lastNode = node
		}

		// Step 15. Reparent lastNode to the common ancestor, or for
		// misnested table nodes, to the foster parent.
		p.arena.detach(lastNode)
		switch p.get(commonAncestor).DataAtom {
		case a.Table, a.Tbody, a.Tfoot, a.Thead, a.Tr:
			p.fosterParent(lastNode)
		default:
			p.appendTo(commonAncestor, lastNode)
		}

		// Steps 16-18. Reparent nodes from the furthest block's children to
		// a clone of the formatting element.
		clone := p.arena.clone(formattingElement)
		p.arena.reparentChildren(clone, furthestBlock)
		p.appendTo(furthestBlock, clone)

		// Step 19. Fix up the list of active formatting elements.
		if oldLoc := p.afe.index(formattingElement); oldLoc != -1 && oldLoc < bookmark {
			// Move the bookmark with the rest of the list.
			bookmark--
		}
		p.afe.remove(formattingElement)
		p.afe.insert(bookmark, clone)

		// Step 20. Fix up the stack of open elements.
		p.oe.remove(formattingElement)
		p.oe.insert(p.oe.index(furthestBlock)+1, clone)
	}
}

// inBodyEndTagOther performs the "any other end tag" algorithm for inBodyIM.
func (p *parser) inBodyEndTagOther(tagAtom a.Atom, tagName string) {
	for i := len(p.oe) - 1; i >= 0; i-- {
		n := p.get(p.oe[i])
		// Two element nodes have the same tag if they have the same Data (a
		// string-typed field). As an optimization, for common HTML tags,
		// each Data string is assigned a unique, non-zero DataAtom, since
		// integer comparison is faster than string comparison.
		if n.DataAtom == tagAtom && (tagAtom != 0 || n.Data == tagName) {
			p.generateImpliedEndTags(tagName)
			if p.oe.index(p.oe[i]) != len(p.oe)-1 {
				p.parseError("unexpected-end-tag")
			}
			p.oe = p.oe[:i]
			return
		}
		if isSpecialElement(n) {
			p.parseError("unexpected-end-tag")
			return
		}
	}
}

// Section 13.2.6.4.8.
func textIM(p *parser) bool {
	switch p.tok.Type {
	case EOFToken:
		p.parseError("expected-closing-tag-but-got-eof")
		p.oe.pop()
	case CharacterToken:
		d := p.tok.Data
		if n := p.oe.top(); p.get(n).DataAtom == a.Textarea && len(p.get(n).Children) == 0 {
			// Ignore a newline at the start of a <textarea> block.
			if d != "" && d[0] == '\n' {
				d = d[1:]
			}
		}
		if d == "" {
			return true
		}
		p.addText(d)
		return true
	case EndTagToken:
		p.oe.pop()
	}
	p.im = p.originalIM
	p.originalIM = nil
	return p.tok.Type == EndTagToken
}

// Section 13.2.6.4.9.
func inTableIM(p *parser) bool {
	switch p.tok.Type {
	case CharacterToken:
		switch p.topAtom() {
		case a.Table, a.Tbody, a.Tfoot, a.Thead, a.Tr:
			p.pendingTableText = p.pendingTableText[:0]
			p.setOriginalIM()
			p.im = inTableTextIM
			return false
		}
	case StartTagToken:
		switch p.tok.DataAtom {
		case a.Caption:
			p.clearStackToContext(tableScope)
			p.afe = append(p.afe, markerID)
			p.addElement()
			p.im = inCaptionIM
			return true
		case a.Colgroup:
			p.clearStackToContext(tableScope)
			p.addElement()
			p.im = inColumnGroupIM
			return true
		case a.Col:
			p.parseImpliedToken(StartTagToken, a.Colgroup, a.Colgroup.String())
			return false
		case a.Tbody, a.Tfoot, a.Thead:
			p.clearStackToContext(tableScope)
			p.addElement()
			p.im = inTableBodyIM
			return true
		case a.Td, a.Th, a.Tr:
			p.parseImpliedToken(StartTagToken, a.Tbody, a.Tbody.String())
			return false
		case a.Table:
			p.parseError("unexpected-start-tag")
			if p.popUntil(tableScope, a.Table) {
				p.resetInsertionMode()
				return false
			}
			// Ignore the token.
			return true
		case a.Style, a.Script, a.Template:
			return inHeadIM(p)
		case a.Input:
			for _, t := range p.tok.Attr {
				if t.Key == "type" && strings.ToLower(t.Val) == "hidden" {
					p.parseError("unexpected-hidden-input-in-table")
					p.addElement()
					p.oe.pop()
					return true
				}
			}
			// Otherwise drop down to the default action.
		case a.Form:
			p.parseError("unexpected-start-tag")
			if p.oeContains(a.Template) || p.form != nilNodeID {
				// Ignore the token.
				return true
			}
			p.addElement()
			p.form = p.oe.pop()
		case a.Select:
			p.reconstructActiveFormattingElements()
			switch p.topAtom() {
			case a.Table, a.Tbody, a.Tfoot, a.Thead, a.Tr:
				p.fosterParenting = true
			}
			p.addElement()
			p.fosterParenting = false
			p.framesetOK = false
			p.im = inSelectInTableIM
			return true
		}
	case EndTagToken:
		switch p.tok.DataAtom {
		case a.Table:
			if p.popUntil(tableScope, a.Table) {
				p.resetInsertionMode()
				return true
			}
			p.parseError("unexpected-end-tag")
			// Ignore the token.
			return true
		case a.Body, a.Caption, a.Col, a.Colgroup, a.Html, a.Tbody, a.Td, a.Tfoot, a.Th, a.Thead, a.Tr:
			p.parseError("unexpected-end-tag")
			// Ignore the token.
			return true
		case a.Template:
			return inHeadIM(p)
		}
	case CommentToken:
		p.addChild(p.arena.alloc(Node{Type: CommentNode, Data: p.tok.Data}))
		return true
	case DoctypeToken:
		p.parseError("unexpected-doctype")
		// Ignore the token.
		return true
	case EOFToken:
		return inBodyIM(p)
	}

	p.parseError("unexpected-token-in-table")
	p.fosterParenting = true
	defer func() { p.fosterParenting = false }()

	return inBodyIM(p)
}

// Section 13.2.6.4.10.
func inTableTextIM(p *parser) bool {
	if p.tok.Type == CharacterToken {
		// Dropping a U+0000 here is its own parse-error site in the
		// standard, but the tokenizer already reported the code point when
		// it emitted it. One error per offending code point, in every
		// insertion mode: the drop records no second error.
		p.pendingTableText = append(p.pendingTableText, strings.Replace(p.tok.Data, "\x00", "", -1))
		return true
	}

	s := strings.Join(p.pendingTableText, "")
	p.pendingTableText = p.pendingTableText[:0]
	if strings.TrimLeft(s, whitespace) != "" {
		// Non-whitespace content in table context is foster parented as if
		// handled by the in-body rules.
		p.parseError("foster-parenting-character-data")
		p.fosterParenting = true
		p.reconstructActiveFormattingElements()
		p.addText(s)
		p.fosterParenting = false
		p.framesetOK = false
	} else {
		p.addText(s)
	}
	p.im = p.originalIM
	p.originalIM = nil
	return false
}

// Section 13.2.6.4.11.
func inCaptionIM(p *parser) bool {
	switch p.tok.Type {
	case StartTagToken:
		switch p.tok.DataAtom {
		case a.Caption, a.Col, a.Colgroup, a.Tbody, a.Td, a.Tfoot, a.Thead, a.Tr:
			if !p.popUntil(tableScope, a.Caption) {
				// Ignore the token.
				return true
			}
			p.parseError("unexpected-start-tag")
			p.clearActiveFormattingElements()
			p.im = inTableIM
			return false
		case a.Select:
			p.reconstructActiveFormattingElements()
			p.addElement()
			p.framesetOK = false
			p.im = inSelectInTableIM
			return true
		}
	case EndTagToken:
		switch p.tok.DataAtom {
		case a.Caption:
			if p.popUntil(tableScope, a.Caption) {
				p.clearActiveFormattingElements()
				p.im = inTableIM
			} else {
				p.parseError("unexpected-end-tag")
			}
			return true
		case a.Table:
			if !p.popUntil(tableScope, a.Caption) {
				// Ignore the token.
				return true
			}
			p.parseError("unexpected-end-tag")
			p.clearActiveFormattingElements()
			p.im = inTableIM
			return false
		case a.Body, a.Col, a.Colgroup, a.Html, a.Tbody, a.Td, a.Tfoot, a.Th, a.Thead, a.Tr:
			p.parseError("unexpected-end-tag")
			// Ignore the token.
			return true
		}
	}
	return inBodyIM(p)
}

// Section 13.2.6.4.12.
func inColumnGroupIM(p *parser) bool {
	switch p.tok.Type {
	case CharacterToken:
		s := strings.TrimLeft(p.tok.Data, whitespace)
		if len(s) < len(p.tok.Data) {
			// Add the initial whitespace to the current node.
			p.addText(p.tok.Data[:len(p.tok.Data)-len(s)])
			if s == "" {
				return true
			}
			p.tok.Data = s
		}
	case CommentToken:
		p.addChild(p.arena.alloc(Node{Type: CommentNode, Data: p.tok.Data}))
		return true
	case DoctypeToken:
		p.parseError("unexpected-doctype")
		// Ignore the token.
		return true
	case StartTagToken:
		switch p.tok.DataAtom {
		case a.Html:
			return inBodyIM(p)
		case a.Col:
			p.addElement()
			p.oe.pop()
			p.acknowledgeSelfClosingTag()
			return true
		case a.Template:
			return inHeadIM(p)
		}
	case EndTagToken:
		switch p.tok.DataAtom {
		case a.Colgroup:
			if p.topAtom() == a.Colgroup {
				p.oe.pop()
				p.im = inTableIM
			} else {
				p.parseError("unexpected-end-tag")
			}
			return true
		case a.Col:
			p.parseError("unexpected-end-tag")
			// Ignore the token.
			return true
		case a.Template:
			return inHeadIM(p)
		}
	case EOFToken:
		return inBodyIM(p)
	}
	if p.topAtom() != a.Colgroup {
		p.parseError("unexpected-token-in-column-group")
		// Ignore the token.
		return true
	}
	p.oe.pop()
	p.im = inTableIM
	return false
}

// Section 13.2.6.4.13.
func inTableBodyIM(p *parser) bool {
	switch p.tok.Type {
	case StartTagToken:
		switch p.tok.DataAtom {
		case a.Tr:
			p.clearStackToContext(tableBodyScope)
			p.addElement()
			p.im = inRowIM
			return true
		case a.Td, a.Th:
			p.parseError("unexpected-cell-in-table-body")
			p.parseImpliedToken(StartTagToken, a.Tr, a.Tr.String())
			return false
		case a.Caption, a.Col, a.Colgroup, a.Tbody, a.Tfoot, a.Thead:
			if p.popUntil(tableScope, a.Tbody, a.Thead, a.Tfoot) {
				p.im = inTableIM
				return false
			}
			p.parseError("unexpected-start-tag")
			// Ignore the token.
			return true
		}
	case EndTagToken:
		switch p.tok.DataAtom {
		case a.Tbody, a.Tfoot, a.Thead:
			if p.elementInScope(tableScope, p.tok.DataAtom) {
				p.clearStackToContext(tableBodyScope)
				p.oe.pop()
				p.im = inTableIM
			} else {
				p.parseError("unexpected-end-tag")
			}
			return true
		case a.Table:
			if p.popUntil(tableScope, a.Tbody, a.Thead, a.Tfoot) {
				p.im = inTableIM
				return false
			}
			p.parseError("unexpected-end-tag")
			// Ignore the token.
			return true
		case a.Body, a.Caption, a.Col, a.Colgroup, a.Html, a.Td, a.Th, a.Tr:
			p.parseError("unexpected-end-tag")
			// Ignore the token.
			return true
		}
	case CommentToken:
		p.addChild(p.arena.alloc(Node{Type: CommentNode, Data: p.tok.Data}))
		return true
	}

	return inTableIM(p)
}

// Section 13.2.6.4.14.
func inRowIM(p *parser) bool {
	switch p.tok.Type {
	case StartTagToken:
		switch p.tok.DataAtom {
		case a.Td, a.Th:
			p.clearStackToContext(tableRowScope)
			p.addElement()
			p.afe = append(p.afe, markerID)
			p.im = inCellIM
			return true
		case a.Caption, a.Col, a.Colgroup, a.Tbody, a.Tfoot, a.Thead, a.Tr:
			if p.popUntil(tableScope, a.Tr) {
				p.im = inTableBodyIM
				return false
			}
			p.parseError("unexpected-start-tag")
			// Ignore the token.
			return true
		}
	case EndTagToken:
		switch p.tok.DataAtom {
		case a.Tr:
			if p.popUntil(tableScope, a.Tr) {
				p.im = inTableBodyIM
			} else {
				p.parseError("unexpected-end-tag")
			}
			return true
		case a.Table:
			if p.popUntil(tableScope, a.Tr) {
				p.im = inTableBodyIM
				return false
			}
			p.parseError("unexpected-end-tag")
			// Ignore the token.
			return true
		case a.Tbody, a.Tfoot, a.Thead:
			if p.elementInScope(tableScope, p.tok.DataAtom) {
				p.parseImpliedToken(EndTagToken, a.Tr, a.Tr.String())
				return false
			}
			p.parseError("unexpected-end-tag")
			// Ignore the token.
			return true
		case a.Body, a.Caption, a.Col, a.Colgroup, a.Html, a.Td, a.Th:
			p.parseError("unexpected-end-tag")
			// Ignore the token.
			return true
		}
	}

	return inTableIM(p)
}

// Section 13.2.6.4.15.
func inCellIM(p *parser) bool {
	switch p.tok.Type {
	case StartTagToken:
		switch p.tok.DataAtom {
		case a.Caption, a.Col, a.Colgroup, a.Tbody, a.Td, a.Tfoot, a.Th, a.Thead, a.Tr:
			if p.popUntil(tableScope, a.Td, a.Th) {
				// Close the cell and reprocess.
				p.clearActiveFormattingElements()
				p.im = inRowIM
				return false
			}
			p.parseError("unexpected-start-tag")
			// Ignore the token.
			return true
		case a.Select:
			p.reconstructActiveFormattingElements()
			p.addElement()
			p.framesetOK = false
			p.im = inSelectInTableIM
			return true
		}
	case EndTagToken:
		switch p.tok.DataAtom {
		case a.Td, a.Th:
			if !p.popUntil(tableScope, p.tok.DataAtom) {
				p.parseError("unexpected-end-tag")
				// Ignore the token.
				return true
			}
			p.clearActiveFormattingElements()
			p.im = inRowIM
			return true
		case a.Body, a.Caption, a.Col, a.Colgroup, a.Html:
			p.parseError("unexpected-end-tag")
			// Ignore the token.
			return true
		case a.Table, a.Tbody, a.Tfoot, a.Thead, a.Tr:
			if !p.elementInScope(tableScope, p.tok.DataAtom) {
				p.parseError("unexpected-end-tag")
				// Ignore the token.
				return true
			}
			// Close the cell and reprocess.
			if p.popUntil(tableScope, a.Td, a.Th) {
				p.clearActiveFormattingElements()
			}
			p.im = inRowIM
			return false
		}
	}
	return inBodyIM(p)
}

// Section 13.2.6.4.16.
func inSelectIM(p *parser) bool {
	switch p.tok.Type {
	case CharacterToken:
		p.addText(strings.Replace(p.tok.Data, "\x00", "", -1))
	case StartTagToken:
		switch p.tok.DataAtom {
		case a.Html:
			return inBodyIM(p)
		case a.Option:
			if p.topAtom() == a.Option {
				p.oe.pop()
			}
			p.addElement()
		case a.Optgroup:
			if p.topAtom() == a.Option {
				p.oe.pop()
			}
			if p.topAtom() == a.Optgroup {
				p.oe.pop()
			}
			p.addElement()
		case a.Hr:
			if p.topAtom() == a.Option {
				p.oe.pop()
			}
			if p.topAtom() == a.Optgroup {
				p.oe.pop()
			}
			p.addElement()
			p.oe.pop()
			p.acknowledgeSelfClosingTag()
		case a.Select:
			p.parseError("unexpected-start-tag")
			if !p.popUntil(selectScope, a.Select) {
				// Ignore the token.
				return true
			}
			p.resetInsertionMode()
		case a.Input, a.Keygen, a.Textarea:
			p.parseError("unexpected-start-tag")
			if p.elementInScope(selectScope, a.Select) {
				p.parseImpliedToken(EndTagToken, a.Select, a.Select.String())
				return false
			}
			// In a fragment case, ignore the token.
			return true
		case a.Script, a.Template:
			return inHeadIM(p)
		}
	case EndTagToken:
		switch p.tok.DataAtom {
		case a.Option:
			if p.topAtom() == a.Option {
				p.oe.pop()
			} else {
				p.parseError("unexpected-end-tag")
			}
		case a.Optgroup:
			if p.topAtom() == a.Option && len(p.oe) > 1 && p.get(p.oe[len(p.oe)-2]).DataAtom == a.Optgroup {
				p.oe.pop()
			}
			if p.topAtom() == a.Optgroup {
				p.oe.pop()
			} else {
				p.parseError("unexpected-end-tag")
			}
		case a.Select:
			if !p.popUntil(selectScope, a.Select) {
				p.parseError("unexpected-end-tag")
				// Ignore the token.
				return true
			}
			p.resetInsertionMode()
		case a.Template:
			return inHeadIM(p)
		default:
			p.parseError("unexpected-end-tag")
		}
	case CommentToken:
		p.addChild(p.arena.alloc(Node{Type: CommentNode, Data: p.tok.Data}))
	case DoctypeToken:
		p.parseError("unexpected-doctype")
		// Ignore the token.
	case EOFToken:
		return inBodyIM(p)
	}

	return true
}

// Section 13.2.6.4.17.
func inSelectInTableIM(p *parser) bool {
	switch p.tok.Type {
	case StartTagToken, EndTagToken:
		switch p.tok.DataAtom {
		case a.Caption, a.Table, a.Tbody, a.Tfoot, a.Thead, a.Tr, a.Td, a.Th:
			p.parseError("unexpected-table-element-in-select")
			if p.tok.Type == EndTagToken && !p.elementInScope(tableScope, p.tok.DataAtom) {
				// Ignore the token.
				return true
			}
			// This is like p.popUntil(selectScope, a.Select), but it also
			// matches <math select>, not just <select>. Matching the
			// foreign element is arguably a divergence, but it keeps this
			// in lockstep with the select-in-table recovery rules.
			for i := len(p.oe) - 1; i >= 0; i-- {
				if p.get(p.oe[i]).DataAtom == a.Select {
					p.oe = p.oe[:i]
					break
				}
			}
			p.resetInsertionMode()
			return false
		}
	}
	return inSelectIM(p)
}

// Section 13.2.6.4.18.
func inTemplateIM(p *parser) bool {
	switch p.tok.Type {
	case CharacterToken, CommentToken, DoctypeToken:
		return inBodyIM(p)
	case StartTagToken:
		switch p.tok.DataAtom {
		case a.Base, a.Basefont, a.Bgsound, a.Link, a.Meta, a.Noframes, a.Script, a.Style, a.Template, a.Title:
			return inHeadIM(p)
		case a.Caption, a.Colgroup, a.Tbody, a.Tfoot, a.Thead:
			p.templateStack.pop()
			p.templateStack = append(p.templateStack, inTableIM)
			p.im = inTableIM
			return false
		case a.Col:
			p.templateStack.pop()
			p.templateStack = append(p.templateStack, inColumnGroupIM)
			p.im = inColumnGroupIM
			return false
		case a.Tr:
			p.templateStack.pop()
			p.templateStack = append(p.templateStack, inTableBodyIM)
			p.im = inTableBodyIM
			return false
		case a.Td, a.Th:
			p.templateStack.pop()
			p.templateStack = append(p.templateStack, inRowIM)
			p.im = inRowIM
			return false
		default:
			p.templateStack.pop()
			p.templateStack = append(p.templateStack, inBodyIM)
			p.im = inBodyIM
			return false
		}
	case EndTagToken:
		switch p.tok.DataAtom {
		case a.Template:
			return inHeadIM(p)
		default:
			p.parseError("unexpected-end-tag")
			// Ignore the token.
			return true
		}
	case EOFToken:
		if !p.oeContains(a.Template) {
			// Stop parsing.
			return true
		}
		p.parseError("eof-in-template")
		for i := len(p.oe) - 1; i >= 0; i-- {
			if n := p.get(p.oe[i]); n.Namespace == "" && n.DataAtom == a.Template {
				p.oe = p.oe[:i]
				break
			}
		}
		p.clearActiveFormattingElements()
		p.templateStack.pop()
		p.resetInsertionMode()
		return false
	}
	return false
}

// Section 13.2.6.4.19.
func afterBodyIM(p *parser) bool {
	switch p.tok.Type {
	case EOFToken:
		// Stop parsing.
		return true
	case CharacterToken:
		s := strings.TrimLeft(p.tok.Data, whitespace)
		if len(s) == 0 {
			// It was all whitespace.
			return inBodyIM(p)
		}
	case StartTagToken:
		if p.tok.DataAtom == a.Html {
			return inBodyIM(p)
		}
	case EndTagToken:
		if p.tok.DataAtom == a.Html {
			if !p.fragment {
				p.im = afterAfterBodyIM
			}
			return true
		}
	case CommentToken:
		// The comment is attached to the <html> element.
		if len(p.oe) < 1 || p.get(p.oe[0]).DataAtom != a.Html {
			panic("html5: bad parser state: <html> element not found, in the after-body insertion mode")
		}
		p.appendTo(p.oe[0], p.arena.alloc(Node{Type: CommentNode, Data: p.tok.Data}))
		return true
	}
	p.parseError("unexpected-token-after-body")
	p.im = inBodyIM
	return false
}

// Section 13.2.6.4.20.
func inFramesetIM(p *parser) bool {
	switch p.tok.Type {
	case CommentToken:
		p.addChild(p.arena.alloc(Node{Type: CommentNode, Data: p.tok.Data}))
	case CharacterToken:
		// Only whitespace is allowed in a frameset.
		s := strings.Map(func(c rune) rune {
			switch c {
			case ' ', '\t', '\n', '\f':
				return c
			}
			return -1
		}, p.tok.Data)
		if s != "" {
			p.addText(s)
		}
	case StartTagToken:
		switch p.tok.DataAtom {
		case a.Html:
			return inBodyIM(p)
		case a.Frameset:
			p.addElement()
		case a.Frame:
			p.addElement()
			p.oe.pop()
			p.acknowledgeSelfClosingTag()
		case a.Noframes:
			return inHeadIM(p)
		default:
			p.parseError("unexpected-start-tag")
			// Ignore the token.
		}
	case EndTagToken:
		switch p.tok.DataAtom {
		case a.Frameset:
			if p.oe.top() != p.oe[0] {
				p.oe.pop()
				if p.topAtom() != a.Frameset {
					p.im = afterFramesetIM
				}
			}
		default:
			p.parseError("unexpected-end-tag")
			// Ignore the token.
		}
	case EOFToken:
		if p.oe.top() != p.oe[0] {
			p.parseError("eof-in-frameset")
		}
		// Stop parsing.
	}
	return true
}

// Section 13.2.6.4.21.
func afterFramesetIM(p *parser) bool {
	switch p.tok.Type {
	case CommentToken:
		p.addChild(p.arena.alloc(Node{Type: CommentNode, Data: p.tok.Data}))
	case CharacterToken:
		// Only whitespace is allowed after a frameset.
		s := strings.Map(func(c rune) rune {
			switch c {
			case ' ', '\t', '\n', '\f':
				return c
			}
			return -1
		}, p.tok.Data)
		if s != "" {
			p.addText(s)
		}
	case StartTagToken:
		switch p.tok.DataAtom {
		case a.Html:
			return inBodyIM(p)
		case a.Noframes:
			return inHeadIM(p)
		}
	case EndTagToken:
		if p.tok.DataAtom == a.Html {
			p.im = afterAfterFramesetIM
		}
	}
	return true
}

// Section 13.2.6.4.22.
func afterAfterBodyIM(p *parser) bool {
	switch p.tok.Type {
	case EOFToken:
		// Stop parsing.
		return true
	case CharacterToken:
		s := strings.TrimLeft(p.tok.Data, whitespace)
		if len(s) == 0 {
			// It was all whitespace.
			return inBodyIM(p)
		}
	case StartTagToken:
		if p.tok.DataAtom == a.Html {
			return inBodyIM(p)
		}
	case CommentToken:
		p.appendTo(p.doc, p.arena.alloc(Node{Type: CommentNode, Data: p.tok.Data}))
		return true
	case DoctypeToken:
		return inBodyIM(p)
	}
	p.parseError("unexpected-token-after-after-body")
	p.im = inBodyIM
	return false
}

// Section 13.2.6.4.23.
func afterAfterFramesetIM(p *parser) bool {
	switch p.tok.Type {
	case CommentToken:
		p.appendTo(p.doc, p.arena.alloc(Node{Type: CommentNode, Data: p.tok.Data}))
	case CharacterToken:
		// Only whitespace is allowed.
		s := strings.Map(func(c rune) rune {
			switch c {
			case ' ', '\t', '\n', '\f':
				return c
			}
			return -1
		}, p.tok.Data)
		if s != "" {
			p.tok.Data = s
			return inBodyIM(p)
		}
	case StartTagToken:
		switch p.tok.DataAtom {
		case a.Html:
			return inBodyIM(p)
		case a.Noframes:
			return inHeadIM(p)
		}
	case DoctypeToken:
		return inBodyIM(p)
	}
	return true
}

// oeContains reports whether an HTML element with the given tag is on the
// stack of open elements.
func (p *parser) oeContains(t a.Atom) bool {
	for _, id := range p.oe {
		if n := p.get(id); n.DataAtom == t && n.Namespace == "" {
			return true
		}
	}
	return false
}

// adjustedCurrentNode returns the node the foreign-content dispatch rules
// examine: the fragment context element when only the synthetic root is
// open, the current node otherwise.
func (p *parser) adjustedCurrentNode() NodeID {
	if len(p.oe) == 1 && p.fragment && p.context != nilNodeID {
		return p.context
	}
	return p.oe.top()
}

// Section 13.2.6.5: parsing tokens in foreign content.
func parseForeignContent(p *parser) bool {
	switch p.tok.Type {
	case CharacterToken:
		if p.framesetOK {
			p.framesetOK = strings.TrimLeft(p.tok.Data, whitespace+"\x00") == ""
		}
		p.tok.Data = strings.Replace(p.tok.Data, "\x00", "�", -1)
		p.addText(p.tok.Data)
	case CommentToken:
		p.addChild(p.arena.alloc(Node{Type: CommentNode, Data: p.tok.Data}))
	case DoctypeToken:
		p.parseError("unexpected-doctype")
		// Ignore the token.
	case StartTagToken:
		if !p.fragment {
			b := breakout[p.tok.Data]
			if p.tok.DataAtom == a.Font {
			loop:
				for _, attr := range p.tok.Attr {
					switch attr.Key {
					case "color", "face", "size":
						b = true
						break loop
					}
				}
			}
			if b {
				p.parseError("unexpected-html-element-in-foreign-content")
				for i := len(p.oe) - 1; i >= 0; i-- {
					n := p.get(p.oe[i])
					if n.Namespace == "" || htmlIntegrationPoint(n) || mathMLTextIntegrationPoint(n) {
						p.oe = p.oe[:i+1]
						break
					}
				}
				return false
			}
		}
		current := p.get(p.adjustedCurrentNode())
		switch current.Namespace {
		case "math":
			adjustAttributeNames(p.tok.Attr, mathMLAttributeAdjustments)
		case "svg":
			// Adjust SVG tag names. The tokenizer lower-cases tag names,
			// but SVG wants e.g. "foreignObject" with a capital second "O".
			if x := svgTagNameAdjustments[p.tok.Data]; x != "" {
				p.tok.DataAtom = a.Lookup([]byte(x))
				p.tok.Data = x
			}
			adjustAttributeNames(p.tok.Attr, svgAttributeAdjustments)
		default:
			panic("html5: bad parser state: unexpected namespace")
		}
		adjustForeignAttributes(p.tok.Attr)
		namespace := current.Namespace
		p.addElement()
		p.get(p.top()).Namespace = namespace
		if p.hasSelfClosingToken {
			p.oe.pop()
			p.acknowledgeSelfClosingTag()
		}
	case EndTagToken:
		if n := p.get(p.oe.top()); !strings.EqualFold(n.Data, p.tok.Data) {
			p.parseError("unexpected-end-tag")
		}
		for i := len(p.oe) - 1; i >= 0; i-- {
			if p.get(p.oe[i]).Namespace == "" {
				return p.im(p)
			}
			if strings.EqualFold(p.get(p.oe[i]).Data, p.tok.Data) {
				p.oe = p.oe[:i]
				break
			}
		}
		return true
	default:
		// Ignore the token.
	}
	return true
}

// Section 13.2.6: the dispatcher. inForeignContent reports whether the
// foreign-content rules, rather than the current insertion mode, handle the
// current token.
func (p *parser) inForeignContent() bool {
	if len(p.oe) == 0 {
		return false
	}
	n := p.get(p.adjustedCurrentNode())
	if n.Namespace == "" {
		return false
	}
	if mathMLTextIntegrationPoint(n) {
		if p.tok.Type == StartTagToken && p.tok.DataAtom != a.Mglyph && p.tok.DataAtom != a.Malignmark {
			return false
		}
		if p.tok.Type == CharacterToken {
			return false
		}
	}
	if n.Namespace == "math" && n.Data == "annotation-xml" && p.tok.Type == StartTagToken && p.tok.DataAtom == a.Svg {
		return false
	}
	if htmlIntegrationPoint(n) && (p.tok.Type == StartTagToken || p.tok.Type == CharacterToken) {
		return false
	}
	if p.tok.Type == EOFToken {
		return false
	}
	return true
}

// parseImpliedToken parses a token as though it had appeared in the parser's
// input.
func (p *parser) parseImpliedToken(t TokenType, dataAtom a.Atom, data string) {
	realToken, selfClosing := p.tok, p.hasSelfClosingToken
	p.tok = Token{
		Type:     t,
		DataAtom: dataAtom,
		Data:     data,
		Line:     realToken.Line,
		Col:      realToken.Col,
	}
	p.hasSelfClosingToken = false
	p.parseCurrentToken()
	p.tok, p.hasSelfClosingToken = realToken, selfClosing
}

// parseCurrentToken runs the current token through the parsing routines
// until it is consumed.
func (p *parser) parseCurrentToken() {
	if p.tok.Type == StartTagToken && p.tok.SelfClosing {
		p.hasSelfClosingToken = true
	}

	consumed := false
	for !consumed {
		if p.inForeignContent() {
			consumed = parseForeignContent(p)
		} else {
			consumed = p.im(p)
		}
	}

	if p.hasSelfClosingToken {
		// This is a parse error, but ignore it.
		p.hasSelfClosingToken = false
	}
}

func (p *parser) parse() {
	for {
		// CDATA sections are allowed only in foreign content.
		if n := p.adjustedCurrentNode(); n != nilNodeID {
			p.tokenizer.SetAllowCDATA(p.get(n).Namespace != "")
		} else {
			p.tokenizer.SetAllowCDATA(false)
		}
		// Read and parse the next token.
		p.tok = p.tokenizer.Next()
		p.parseCurrentToken()
		if p.tok.Type == EOFToken || p.stop {
			break
		}
	}
	// Stop parsing: pop any remaining open elements. This is a stack
	// operation only; the tree is already complete.
	p.oe = p.oe[:0]
}
