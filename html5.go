// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package html5 implements a WHATWG-conformant HTML5 parser: the
// tokenization state machine, the tree construction algorithm with its
// insertion modes, and fragment parsing, over an arena-allocated DOM.
//
// Parsing never fails on malformed input. Every error the algorithm defines
// has a defined recovery, so Parse always produces a complete document tree;
// the errors are recorded as advisory ParseError values with source
// positions. Strict mode turns the first recorded error into a returned one.
package html5

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
	a "golang.org/x/net/html/atom"
)

// Options configures a parse. The zero value is the conforming default:
// scripting enabled, advisory errors collected, lenient recovery.
type Options struct {
	// DisableScripting parses as if scripting were off: <noscript> content
	// is parsed as markup instead of raw text.
	DisableScripting bool

	// DiscardErrors skips collecting advisory parse errors. The recovery
	// behavior is identical either way.
	DiscardErrors bool

	// Strict aborts at the first parse error and returns it. The Dom built
	// up to that point is still returned.
	Strict bool

	// IframeSrcdoc parses the input as an iframe srcdoc document: a missing
	// doctype selects no-quirks mode instead of quirks mode.
	IframeSrcdoc bool

	// Logger receives debug-level parse telemetry. Defaults to a discarding
	// logger.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// A Dom is the tree produced by a parse: the arena holding every node, the
// ID of the document (or fragment) root, and the advisory errors recorded
// along the way, in source order.
type Dom struct {
	Arena  *Arena
	Root   NodeID
	Errors []ParseError
}

// Node dereferences an ID in the Dom's arena.
func (d *Dom) Node(id NodeID) *Node { return d.Arena.Get(id) }

// Parse parses text as a complete HTML document. The returned error is
// non-nil only in strict mode; the Dom is always a complete tree for the
// input consumed.
func Parse(text string, opts Options) (*Dom, error) {
	logger := opts.logger()
	z := NewTokenizer(text)
	z.collect = !opts.DiscardErrors

	arena := newArena()
	doc := arena.alloc(Node{Type: DocumentNode})
	p := &parser{
		tokenizer:    z,
		arena:        arena,
		doc:          doc,
		head:         nilNodeID,
		form:         nilNodeID,
		context:      nilNodeID,
		scripting:    !opts.DisableScripting,
		framesetOK:   true,
		im:           initialIM,
		iframeSrcdoc: opts.IframeSrcdoc,
	}
	var firstErr *ParseError
	if opts.Strict {
		z.onError = func(e ParseError) {
			if firstErr == nil {
				e := e
				firstErr = &e
				p.stop = true
			}
		}
	}

	logger.Debug("parse start", "bytes", len(text))
	p.parse()
	dom := &Dom{Arena: arena, Root: doc, Errors: z.Errors()}
	logger.Debug("parse done", "nodes", arena.Len(), "errors", len(dom.Errors))

	if firstErr != nil {
		return dom, errors.Wrap(*firstErr, "html5: strict parse")
	}
	return dom, nil
}

// A FragmentContext names the element a fragment is parsed "inside of"
// (section 13.4). Tag is the lower-case tag name; Namespace is "" for HTML,
// or "svg" or "math".
type FragmentContext struct {
	Tag       string
	Namespace string
}

// ParseFragment parses text as an HTML fragment in the given context. The
// returned Dom's root is a FragmentNode whose children are the parsed
// content; the synthetic <html> wrapper the algorithm works inside of is not
// part of the result.
func ParseFragment(text string, ctx FragmentContext, opts Options) (*Dom, error) {
	if ctx.Tag == "" {
		return nil, errors.New("html5: fragment parsing requires a context element")
	}
	switch ctx.Namespace {
	case "", "svg", "math":
	default:
		return nil, errors.Errorf("html5: unknown fragment context namespace %q", ctx.Namespace)
	}
	logger := opts.logger()

	z := NewTokenizer(text)
	z.collect = !opts.DiscardErrors

	arena := newArena()
	frag := arena.alloc(Node{Type: FragmentNode})
	contextAtom := a.Lookup([]byte(ctx.Tag))
	context := arena.alloc(Node{
		Type:      ElementNode,
		DataAtom:  contextAtom,
		Data:      ctx.Tag,
		Namespace: ctx.Namespace,
	})

	// The tokenizer starts in the state the context element's content would
	// be tokenized in. Section 13.4, step 11.
	if ctx.Namespace == "" {
		switch contextAtom {
		case a.Title, a.Textarea:
			z.SetState(RCDATAState)
		case a.Style, a.Xmp, a.Iframe, a.Noembed, a.Noframes:
			z.SetState(RAWTEXTState)
		case a.Script:
			z.SetState(ScriptDataState)
		case a.Noscript:
			if !opts.DisableScripting {
				z.SetState(RAWTEXTState)
			}
		case a.Plaintext:
			z.SetState(PLAINTEXTState)
		}
		z.SetLastStartTag(ctx.Tag)
	}

	root := arena.alloc(Node{Type: ElementNode, DataAtom: a.Html, Data: a.Html.String()})
	p := &parser{
		tokenizer:    z,
		arena:        arena,
		doc:          frag,
		head:         nilNodeID,
		form:         nilNodeID,
		scripting:    !opts.DisableScripting,
		framesetOK:   true,
		iframeSrcdoc: opts.IframeSrcdoc,
		fragment:     true,
		context:      context,
		oe:           nodeStack{root},
	}
	if contextAtom == a.Template {
		p.templateStack = append(p.templateStack, inTemplateIM)
	}
	p.resetInsertionMode()
	if contextAtom == a.Form && ctx.Namespace == "" {
		p.form = context
	}
	var firstErr *ParseError
	if opts.Strict {
		z.onError = func(e ParseError) {
			if firstErr == nil {
				e := e
				firstErr = &e
				p.stop = true
			}
		}
	}

	logger.Debug("parse fragment start", "context", ctx.Tag, "bytes", len(text))
	p.parse()
	// The result is the synthetic root's children, not the root itself.
	arena.reparentChildren(frag, root)
	dom := &Dom{Arena: arena, Root: frag, Errors: z.Errors()}
	logger.Debug("parse fragment done", "nodes", arena.Len(), "errors", len(dom.Errors))

	if firstErr != nil {
		return dom, errors.Wrap(*firstErr, "html5: strict parse")
	}
	return dom, nil
}

// Tokenize runs only the tokenization stage over text and returns the token
// stream (without the trailing EOF token) and the recorded errors. Character
// tokens arrive as coalesced runs. The tokenizer starts in initial, with
// lastStartTag as the most recently seen start tag name (relevant to the
// appropriate-end-tag check in the RCDATA, RAWTEXT and script data states;
// pass "" when initial is DataState). Without a treebuilder driving state
// switches, everything after the initial element tokenizes in the data
// state, so <script> and <style> content is tokenized as markup.
func Tokenize(text string, initial TokenizerState, lastStartTag string) ([]Token, []ParseError) {
	z := NewTokenizer(text)
	z.SetState(initial)
	if lastStartTag != "" {
		z.SetLastStartTag(lastStartTag)
	}
	var toks []Token
	for {
		t := z.Next()
		if t.Type == EOFToken {
			break
		}
		toks = append(toks, t)
	}
	return toks, z.Errors()
}
