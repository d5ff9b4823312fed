// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package html5

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDoctypeQuirks(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want QuirksMode
	}{
		{
			"plain html",
			Token{Data: "html"},
			NoQuirks,
		},
		{
			"legacy compat",
			Token{Data: "html", HasSystem: true, System: "about:legacy-compat"},
			NoQuirks,
		},
		{
			"wrong name",
			Token{Data: "foo"},
			Quirks,
		},
		{
			"force quirks",
			Token{Data: "html", ForceQuirks: true},
			Quirks,
		},
		{
			"html 3.2",
			Token{Data: "html", HasPublic: true, Public: "-//W3C//DTD HTML 3.2 Final//EN"},
			Quirks,
		},
		{
			"4.01 transitional public only",
			Token{Data: "html", HasPublic: true, Public: "-//W3C//DTD HTML 4.01 Transitional//EN"},
			Quirks,
		},
		{
			"4.01 transitional with system",
			Token{
				Data:      "html",
				HasPublic: true, Public: "-//W3C//DTD HTML 4.01 Transitional//EN",
				HasSystem: true, System: "http://www.w3.org/TR/html4/loose.dtd",
			},
			LimitedQuirks,
		},
		{
			"xhtml 1.0 transitional",
			Token{
				Data:      "html",
				HasPublic: true, Public: "-//W3C//DTD XHTML 1.0 Transitional//EN",
				HasSystem: true, System: "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd",
			},
			LimitedQuirks,
		},
		{
			"ibm system id",
			Token{
				Data:      "html",
				HasSystem: true, System: "http://www.IBM.com/data/dtd/v11/ibmxhtml1-transitional.dtd",
			},
			Quirks,
		},
		{
			"public html",
			Token{Data: "html", HasPublic: true, Public: "HTML"},
			Quirks,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := tt.tok
			tok.Type = DoctypeToken
			require.Equal(t, tt.want, doctypeQuirks(&tok))
		})
	}
}

func TestIsConformingDoctype(t *testing.T) {
	require.True(t, isConformingDoctype(&Token{Data: "html"}))
	require.True(t, isConformingDoctype(&Token{Data: "html", HasSystem: true, System: "about:legacy-compat"}))
	require.False(t, isConformingDoctype(&Token{Data: "html", HasSystem: true, System: "other"}))
	require.False(t, isConformingDoctype(&Token{Data: "html", HasPublic: true}))
	require.False(t, isConformingDoctype(&Token{Data: "HTML"}))
}
