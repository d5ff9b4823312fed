package html5

// A position is a 1-based (line, column) location in the original text,
// before newline normalization.
type position struct {
	line, col int32
}

// preprocess implements the input stream preprocessor: every "\r\n" pair and
// every lone "\r" becomes a single "\n". It returns the normalized code
// points together with a parallel table mapping each produced code point back
// to its position in the original text, so errors reported against the
// normalized stream still point at the source the caller supplied.
func preprocess(s string) ([]rune, []position) {
	out := make([]rune, 0, len(s))
	pos := make([]position, 0, len(s))

	line, col := int32(1), int32(1)
	pendingCR := false
	for _, r := range s {
		if pendingCR {
			pendingCR = false
			if r == '\n' {
				// The \n of a \r\n pair was already emitted as the
				// normalized newline when the \r was seen.
				continue
			}
		}
		switch r {
		case '\r':
			out = append(out, '\n')
			pos = append(pos, position{line, col})
			line++
			col = 1
			pendingCR = true
		case '\n':
			out = append(out, '\n')
			pos = append(pos, position{line, col})
			line++
			col = 1
		default:
			out = append(out, r)
			pos = append(pos, position{line, col})
			col++
		}
	}
	return out, pos
}
