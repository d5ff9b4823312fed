// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package html5

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreprocessNewlines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "abc", want: "abc"},
		{name: "lf", in: "a\nb", want: "a\nb"},
		{name: "crlf", in: "a\r\nb", want: "a\nb"},
		{name: "bare cr", in: "a\rb", want: "a\nb"},
		{name: "mixed", in: "a\r\rb\r\n\nc", want: "a\n\nb\n\nc"},
		{name: "trailing crlf", in: "a\r\n", want: "a\n"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, pos := preprocess(tt.in)
			require.Equal(t, tt.want, string(got))
			require.Len(t, pos, len(got))
		})
	}
}

func TestPreprocessPositions(t *testing.T) {
	// Positions refer to the original text, so the newline that replaces a
	// CRLF pair sits at the CR's position and the next line starts fresh.
	got, pos := preprocess("a\r\nb\rc")
	require.Equal(t, "a\nb\nc", string(got))
	require.Equal(t, []position{
		{line: 1, col: 1},
		{line: 1, col: 2},
		{line: 2, col: 1},
		{line: 2, col: 2},
		{line: 3, col: 1},
	}, pos)
}

func TestPreprocessMultibyte(t *testing.T) {
	// Columns count code points, not bytes.
	got, pos := preprocess("héllo")
	require.Equal(t, "héllo", string(got))
	require.Equal(t, position{line: 1, col: 5}, pos[4])
}
