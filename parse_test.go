// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package html5

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// removeIndent strips the leading newline and the common indentation of a
// backtick-quoted expected tree, so the tables below can stay readable.
func removeIndent(s string) string {
	s = strings.TrimLeft(s, "\n")

	// find first non-whitespace character
	i := strings.IndexFunc(s, func(r rune) bool {
		return r != ' ' && r != '\t'
	})
	if i == -1 {
		return s
	}

	// remove that amount of leading whitespace from all lines
	lines := strings.Split(s, "\n")
	for j, line := range lines {
		if len(line) >= i {
			lines[j] = line[i:]
		}
	}
	return strings.Join(lines, "\n")
}

// checkTreeConsistency verifies the arena invariants: no node sits in two
// child lists, and the recorded parent of every child is the node whose list
// it is in.
func checkTreeConsistency(t *testing.T, d *Dom) {
	t.Helper()
	seen := map[NodeID]NodeID{}
	for id := NodeID(0); int(id) < d.Arena.Len(); id++ {
		n := d.Node(id)
		for _, c := range n.Children {
			if prev, ok := seen[c]; ok {
				t.Fatalf("node %d is in the child lists of both %d and %d", c, prev, id)
			}
			seen[c] = id
			require.Equal(t, id, d.Arena.parent(c), "parent of node %d", c)
		}
	}
}

func testParseCase(t *testing.T, text, want string, errs []string) {
	t.Helper()
	dom, err := Parse(text, Options{})
	require.NoError(t, err)
	checkTreeConsistency(t, dom)

	got := Dump(dom)
	if got != want {
		t.Errorf("got vs want:\n----\n%s----\n%s----", got, want)
	}

	if errs != nil {
		codes := []string{}
		for _, e := range dom.Errors {
			codes = append(codes, e.Code)
		}
		require.Equal(t, errs, codes)
	}

	// Dumping is read-only: a second dump is identical and allocates no
	// nodes.
	nodes := dom.Arena.Len()
	require.Equal(t, got, Dump(dom))
	require.Equal(t, nodes, dom.Arena.Len())
}

func TestParseDocuments(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		errs []string
	}{
		{
			name: "empty input still yields a document",
			text: "",
			want: `
			| <html>
			|   <head>
			|   <body>
			`,
			errs: []string{"missing-doctype"},
		},
		{
			name: "minimal document",
			text: "<!DOCTYPE html><p>Hello",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <p>
			|       "Hello"
			`,
			errs: []string{},
		},
		{
			name: "fully explicit document",
			text: "<!DOCTYPE html><html><head></head><body><p>Hello</p></body></html>",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <p>
			|       "Hello"
			`,
			errs: []string{},
		},
		{
			name: "li auto-closed",
			text: "<!DOCTYPE html><ul><li>A<li>B</ul>",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <ul>
			|       <li>
			|         "A"
			|       <li>
			|         "B"
			`,
			errs: []string{},
		},
		{
			name: "headings auto-closed",
			text: "<!DOCTYPE html><h1>a<h2>b",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <h1>
			|       "a"
			|     <h2>
			|       "b"
			`,
		},
		{
			name: "misnested formatting elements",
			text: "<b><i>x</b>y</i>",
			want: `
			| <html>
			|   <head>
			|   <body>
			|     <b>
			|       <i>
			|         "x"
			|     <i>
			|       "y"
			`,
		},
		{
			name: "adoption agency with furthest block",
			text: "<!DOCTYPE html><p>1<b>2<i>3</b>4</i>5",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <p>
			|       "1"
			|       <b>
			|         "2"
			|         <i>
			|           "3"
			|       <i>
			|         "4"
			|       "5"
			`,
		},
		{
			name: "a inside a",
			text: "<!DOCTYPE html><a>1<a>2",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <a>
			|       "1"
			|     <a>
			|       "2"
			`,
		},
		{
			// Three identical formatting elements is the cap: the fourth <b>
			// evicts the oldest list entry, so only three reconstruct.
			name: "identical formatting elements cap at three",
			text: "<!DOCTYPE html><table><b><b><b><b></table>y",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <b>
			|       <b>
			|         <b>
			|           <b>
			|     <table>
			|     <b>
			|       <b>
			|         <b>
			|           "y"
			`,
		},
		{
			name: "text in table is foster parented and merged",
			text: "<!DOCTYPE html><table>foo<tr>bar</table>",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     "foobar"
			|     <table>
			|       <tbody>
			|         <tr>
			`,
		},
		{
			name: "full table structure",
			text: "<!DOCTYPE html><table><caption>c</caption><colgroup><col></colgroup>" +
				"<thead><tr><th>H</th></tr></thead><tbody><tr><td>D</td></tr></tbody></table>",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <table>
			|       <caption>
			|         "c"
			|       <colgroup>
			|         <col>
			|       <thead>
			|         <tr>
			|           <th>
			|             "H"
			|       <tbody>
			|         <tr>
			|           <td>
			|             "D"
			`,
			errs: []string{},
		},
		{
			name: "hidden input stays in table, other inputs are fostered",
			text: `<!DOCTYPE html><table><input type="hidden"><input type="text"></table>`,
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <input>
			|       type="text"
			|     <table>
			|       <input>
			|         type="hidden"
			`,
		},
		{
			name: "select in table is fostered and recovers on table end tag",
			text: "<!DOCTYPE html><table><select><option>x</table>",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <select>
			|       <option>
			|         "x"
			|     <table>
			`,
		},
		{
			name: "template content is separate from children",
			text: "<!DOCTYPE html><body><template>Hello</template></body>",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <template>
			|       content
			|         "Hello"
			`,
			errs: []string{},
		},
		{
			name: "table parts are allowed inside template",
			text: "<!DOCTYPE html><template><td>Hi</td></template>",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|     <template>
			|       content
			|         <td>
			|           "Hi"
			|   <body>
			`,
		},
		{
			name: "svg subtree",
			text: `<!DOCTYPE html><svg><circle r="1"/></svg>done`,
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <svg svg>
			|       <svg circle>
			|         r="1"
			|     "done"
			`,
			errs: []string{},
		},
		{
			name: "svg tag name case is adjusted",
			text: "<!DOCTYPE html><svg><foreignobject><div>x</div></foreignobject></svg>",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <svg svg>
			|       <svg foreignObject>
			|         <div>
			|           "x"
			`,
		},
		{
			name: "xlink attribute gets its namespace back",
			text: `<!DOCTYPE html><svg xlink:href="#a"></svg>`,
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <svg svg>
			|       xlink href="#a"
			`,
		},
		{
			name: "html integration point in mathml",
			text: `<!DOCTYPE html><math><annotation-xml encoding="text/html"><p>x</p></annotation-xml></math>`,
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <math math>
			|       <math annotation-xml>
			|         encoding="text/html"
			|         <p>
			|           "x"
			`,
		},
		{
			name: "html tag breaks out of foreign content",
			text: "<!DOCTYPE html><svg><b>x</b></svg>",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <svg svg>
			|     <b>
			|       "x"
			`,
		},
		{
			name: "script content is raw, including comment-like nesting",
			text: "<script><!--<script>x</script>--></script>done",
			want: `
			| <html>
			|   <head>
			|     <script>
			|       "<!--<script>x</script>-->"
			|   <body>
			|     "done"
			`,
		},
		{
			name: "title is rcdata, entities live",
			text: "<!DOCTYPE html><title>a&amp;b</title>",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|     <title>
			|       "a&b"
			|   <body>
			`,
			errs: []string{},
		},
		{
			name: "leading newline in textarea is dropped",
			text: "<!DOCTYPE html><body><textarea>\nabc</textarea>",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <textarea>
			|       "abc"
			`,
		},
		{
			name: "leading newline in pre is dropped",
			text: "<!DOCTYPE html><pre>\nx</pre>",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <pre>
			|       "x"
			`,
		},
		{
			name: "plaintext never ends",
			text: "<!DOCTYPE html><plaintext>x</plaintext>",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <plaintext>
			|       "x</plaintext>"
			`,
		},
		{
			name: "frameset document",
			text: `<!DOCTYPE html><frameset><frame src="a"></frameset><noframes>n</noframes>`,
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <frameset>
			|     <frame>
			|       src="a"
			|   <noframes>
			|     "n"
			`,
		},
		{
			name: "comments attach where they appear",
			text: "<!--x--><!DOCTYPE html><!--y--><p>z<!--w-->",
			want: `
			| <!-- x -->
			| <!DOCTYPE html>
			| <!-- y -->
			| <html>
			|   <head>
			|   <body>
			|     <p>
			|       "z"
			|       <!-- w -->
			`,
		},
		{
			name: "comments after body and after html",
			text: "<!DOCTYPE html><html><body></body><!--c--></html><!--d-->",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|   <!-- c -->
			| <!-- d -->
			`,
			errs: []string{},
		},
		{
			name: "second form start tag is ignored",
			text: "<!DOCTYPE html><form><form><input>",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <form>
			|       <input>
			`,
		},
		{
			name: "null characters are dropped from body text",
			text: "<!DOCTYPE html><body>a\x00b",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     "ab"
			`,
			errs: []string{"unexpected-null-character"},
		},
		{
			// The tokenizer reports the code point; dropping it in table
			// text adds no second error, so the count stays one per NUL in
			// every insertion mode.
			name: "null characters are dropped from table text",
			text: "<!DOCTYPE html><table>\x00</table>",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <table>
			`,
			errs: []string{"unexpected-null-character"},
		},
		{
			name: "cdata is a bogus comment in html, text in foreign content",
			text: "<!DOCTYPE html><body>a<![CDATA[b]]>c<svg><![CDATA[d]]></svg>",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     "a"
			|     <!-- [CDATA[b]] -->
			|     "c"
			|     <svg svg>
			|       "d"
			`,
			errs: []string{"cdata-in-html-content"},
		},
		{
			name: "table nests in p under quirks mode",
			text: "<p><table></table>",
			want: `
			| <html>
			|   <head>
			|   <body>
			|     <p>
			|       <table>
			`,
		},
		{
			name: "table closes p under no-quirks mode",
			text: "<!DOCTYPE html><p><table></table>",
			want: `
			| <!DOCTYPE html>
			| <html>
			|   <head>
			|   <body>
			|     <p>
			|     <table>
			`,
		},
		{
			name: "quirky public identifier is dumped with empty system",
			text: `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN"><p>x`,
			want: `
			| <!DOCTYPE html "-//W3C//DTD HTML 4.01 Transitional//EN" "">
			| <html>
			|   <head>
			|   <body>
			|     <p>
			|       "x"
			`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testParseCase(t, tt.text, removeIndent(tt.want), tt.errs)
		})
	}
}

func TestParseFragments(t *testing.T) {
	tests := []struct {
		name string
		ctx  FragmentContext
		text string
		want string
	}{
		{
			name: "td context ignores stray cell tags",
			ctx:  FragmentContext{Tag: "td"},
			text: "<td>x</td>",
			want: `
			| "x"
			`,
		},
		{
			name: "tr context builds cells",
			ctx:  FragmentContext{Tag: "tr"},
			text: "<td>x</td>",
			want: `
			| <td>
			|   "x"
			`,
		},
		{
			name: "select context without document scaffolding",
			ctx:  FragmentContext{Tag: "select"},
			text: "<option>A<option>B",
			want: `
			| <option>
			|   "A"
			| <option>
			|   "B"
			`,
		},
		{
			name: "hr closes option and optgroup in select context",
			ctx:  FragmentContext{Tag: "select"},
			text: "<option>a<hr><optgroup><option>b<hr><option>c",
			want: `
			| <option>
			|   "a"
			| <hr>
			| <optgroup>
			|   <option>
			|     "b"
			| <hr>
			| <option>
			|   "c"
			`,
		},
		{
			name: "template context",
			ctx:  FragmentContext{Tag: "template"},
			text: "<div>x</div>",
			want: `
			| <div>
			|   "x"
			`,
		},
		{
			name: "svg context stays foreign",
			ctx:  FragmentContext{Tag: "svg", Namespace: "svg"},
			text: "<circle/>",
			want: `
			| <svg circle>
			`,
		},
		{
			name: "body context",
			ctx:  FragmentContext{Tag: "body"},
			text: "<b>x",
			want: `
			| <b>
			|   "x"
			`,
		},
		{
			name: "title context tokenizes as rcdata",
			ctx:  FragmentContext{Tag: "title"},
			text: "<b>x",
			want: `
			| "<b>x"
			`,
		},
		{
			name: "script context tokenizes as script data",
			ctx:  FragmentContext{Tag: "script"},
			text: "x=1<y",
			want: `
			| "x=1<y"
			`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dom, err := ParseFragment(tt.text, tt.ctx, Options{})
			require.NoError(t, err)
			checkTreeConsistency(t, dom)
			require.Equal(t, FragmentNode, dom.Node(dom.Root).Type)

			got := Dump(dom)
			want := removeIndent(tt.want)
			if got != want {
				t.Errorf("got vs want:\n----\n%s----\n%s----", got, want)
			}
		})
	}
}

func TestParseFragmentContextRequired(t *testing.T) {
	_, err := ParseFragment("x", FragmentContext{}, Options{})
	require.Error(t, err)

	_, err = ParseFragment("x", FragmentContext{Tag: "div", Namespace: "xml"}, Options{})
	require.Error(t, err)
}

func TestQuirksModes(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts Options
		want QuirksMode
	}{
		{
			name: "no doctype",
			text: "<p>x",
			want: Quirks,
		},
		{
			name: "modern doctype",
			text: "<!DOCTYPE html><p>x",
			want: NoQuirks,
		},
		{
			name: "legacy compat doctype",
			text: `<!doctype HTML sYstem "about:legacy-compat"><p>x`,
			want: NoQuirks,
		},
		{
			name: "unknown name",
			text: "<!DOCTYPE foo><p>x",
			want: Quirks,
		},
		{
			name: "html 3.2 public identifier",
			text: `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 3.2 Final//EN"><p>x`,
			want: Quirks,
		},
		{
			name: "4.01 transitional without system id",
			text: `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN"><p>x`,
			want: Quirks,
		},
		{
			name: "4.01 transitional with system id",
			text: `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN" "http://www.w3.org/TR/html4/loose.dtd"><p>x`,
			want: LimitedQuirks,
		},
		{
			name: "xhtml 1.0 transitional",
			text: `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN"><p>x`,
			want: LimitedQuirks,
		},
		{
			name: "iframe srcdoc without doctype",
			text: "<p>x",
			opts: Options{IframeSrcdoc: true},
			want: NoQuirks,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dom, err := Parse(tt.text, tt.opts)
			require.NoError(t, err)
			require.Equal(t, tt.want, dom.Node(dom.Root).Quirks)
		})
	}
}

func TestParseErrorPositions(t *testing.T) {
	dom, err := Parse("<p>x", Options{})
	require.NoError(t, err)
	require.NotEmpty(t, dom.Errors)
	e := dom.Errors[0]
	require.Equal(t, "missing-doctype", e.Code)
	require.Equal(t, 1, e.Line)
	require.Equal(t, 1, e.Col)
	require.Equal(t, "1:1: missing-doctype", e.Error())
}
