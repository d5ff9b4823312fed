// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package html5

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExportEtree(t *testing.T) {
	dom, err := Parse(`<!DOCTYPE html><p class="a">Hi<!--c-->`, Options{})
	require.NoError(t, err)

	doc := dom.ExportEtree()
	s, err := doc.WriteToString()
	require.NoError(t, err)
	require.Contains(t, s, "<!DOCTYPE html>")
	require.Contains(t, s, `<p class="a">Hi<!--c--></p>`)

	p := doc.FindElement("//p")
	require.NotNil(t, p)
	require.Equal(t, "Hi", p.Text())
	require.Equal(t, "a", p.SelectAttrValue("class", ""))
}

func TestExportEtreeTemplateContent(t *testing.T) {
	dom, err := Parse("<!DOCTYPE html><template>Hello</template>", Options{})
	require.NoError(t, err)

	doc := dom.ExportEtree()
	tmpl := doc.FindElement("//template")
	require.NotNil(t, tmpl)
	require.Equal(t, "Hello", tmpl.Text())
}

func TestExportEtreeForeign(t *testing.T) {
	dom, err := Parse(`<!DOCTYPE html><svg><image xlink:href="x"/></svg>`, Options{})
	require.NoError(t, err)

	doc := dom.ExportEtree()
	svg := doc.FindElement("//svg:svg")
	require.NotNil(t, svg)
	img := svg.FindElement("svg:image")
	require.NotNil(t, img)
	require.Equal(t, "x", img.SelectAttrValue("xlink:href", ""))
}
