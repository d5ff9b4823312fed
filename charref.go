package html5

// replacementTable, transcribed from the numeric character reference end
// state of the HTML standard, maps the C1 control range 0x80-0x9F to the
// code points a windows-1252 interpretation of those bytes would produce.
// Entries absent from the standard's table (0x81, 0x8D, 0x8F, 0x90, 0x9D)
// pass through unchanged.
var replacementTable = map[int32]rune{
	0x80: '€', // EURO SIGN
	0x82: '‚', // SINGLE LOW-9 QUOTATION MARK
	0x83: 'ƒ', // LATIN SMALL LETTER F WITH HOOK
	0x84: '„', // DOUBLE LOW-9 QUOTATION MARK
	0x85: '…', // HORIZONTAL ELLIPSIS
	0x86: '†', // DAGGER
	0x87: '‡', // DOUBLE DAGGER
	0x88: 'ˆ', // MODIFIER LETTER CIRCUMFLEX ACCENT
	0x89: '‰', // PER MILLE SIGN
	0x8A: 'Š', // LATIN CAPITAL LETTER S WITH CARON
	0x8B: '‹', // SINGLE LEFT-POINTING ANGLE QUOTATION MARK
	0x8C: 'Œ', // LATIN CAPITAL LIGATURE OE
	0x8E: 'Ž', // LATIN CAPITAL LETTER Z WITH CARON
	0x91: '‘', // LEFT SINGLE QUOTATION MARK
	0x92: '’', // RIGHT SINGLE QUOTATION MARK
	0x93: '“', // LEFT DOUBLE QUOTATION MARK
	0x94: '”', // RIGHT DOUBLE QUOTATION MARK
	0x95: '•', // BULLET
	0x96: '–', // EN DASH
	0x97: '—', // EM DASH
	0x98: '˜', // SMALL TILDE
	0x99: '™', // TRADE MARK SIGN
	0x9A: 'š', // LATIN SMALL LETTER S WITH CARON
	0x9B: '›', // SINGLE RIGHT-POINTING ANGLE QUOTATION MARK
	0x9C: 'œ', // LATIN SMALL LIGATURE OE
	0x9E: 'ž', // LATIN SMALL LETTER Z WITH CARON
	0x9F: 'Ÿ', // LATIN CAPITAL LETTER Y WITH DIAERESIS
}

// flushRef sends resolved (or raw, unresolved) character reference output to
// wherever the return state collects characters: the pending attribute value
// in the attribute value states, the text run otherwise.
func (z *Tokenizer) flushRef(rs ...rune) {
	switch z.returnState {
	case attributeValueDoubleQuotedState, attributeValueSingleQuotedState, attributeValueUnquotedState:
		z.pendingAttr.Val += string(rs)
	default:
		for _, r := range rs {
			z.appendText(r)
		}
	}
}

// consumeCharacterReference is called with the '&' already consumed and the
// return state recorded. It implements the character reference, named
// character reference, ambiguous ampersand and numeric character reference
// states as one subroutine: the machine resumes in the return state when it
// returns, with unconsumed input intact (at most the code point after the
// reference is left for the return state to reconsume).
func (z *Tokenizer) consumeCharacterReference(inAttr bool) {
	ampLine, ampCol := z.curPos()
	r, ok := z.consume()
	switch {
	case !ok:
		z.flushRef('&')
		z.reconsume()
	case r == '#':
		z.consumeNumericReference(ampLine, ampCol)
	case isASCIIAlnum(r):
		z.reconsume()
		z.consumeNamedReference(inAttr)
	default:
		z.flushRef('&')
		z.reconsume()
	}
	z.state = z.returnState
}

// consumeNamedReference performs longest-match resolution against the named
// character reference table. The match that wins is the longest table entry
// reachable from the input: an entry with a trailing semicolon when the
// input supplies one, otherwise the longest semicolon-less (legacy) entry.
func (z *Tokenizer) consumeNamedReference(inAttr bool) {
	// Gather the candidate alphanumeric run.
	start := z.n
	for z.n < len(z.input) && isASCIIAlnum(z.input[z.n]) && z.n-start < longestEntityLen {
		z.n++
	}
	name := string(z.input[start:z.n])
	semi := z.n < len(z.input) && z.input[z.n] == ';'

	// An exact entry including the semicolon beats everything.
	if semi {
		if r, found := entity[name+";"]; found {
			z.n++
			z.flushRef(r)
			return
		}
		if rs, found := entity2[name+";"]; found {
			z.n++
			z.flushRef(rs[0], rs[1])
			return
		}
	}

	// Fall back to the longest legacy entry, which never needs the
	// semicolon. Unmatched tail characters stay in the input.
	for l := len(name); l > 0; l-- {
		prefix := name[:l]
		r, found := entity[prefix]
		if !found {
			continue
		}
		z.n = start + l
		next := rune(0)
		if z.n < len(z.input) {
			next = z.input[z.n]
		}
		if inAttr && (isASCIIAlnum(next) || next == '=') {
			// Historical carve-out: "&notit" in an attribute stays
			// literal text, with no error.
			z.flushRef('&')
			z.flushRef([]rune(prefix)...)
			return
		}
		z.err("missing-semicolon-after-character-reference")
		z.flushRef(r)
		return
	}

	// No match at all: the run is literal text (ambiguous ampersand). A
	// terminating semicolon is an error but is left for the return state.
	z.flushRef('&')
	z.flushRef([]rune(name)...)
	if semi && len(name) > 0 {
		z.n++
		z.err("unknown-named-character-reference")
		z.reconsume()
	}
}

func (z *Tokenizer) consumeNumericReference(ampLine, ampCol int) {
	hex := false
	marker := []rune{'&', '#'}
	if z.n < len(z.input) && (z.input[z.n] == 'x' || z.input[z.n] == 'X') {
		hex = true
		marker = append(marker, z.input[z.n])
		z.n++
	}

	digits := 0
	var code int32
	for z.n < len(z.input) {
		c := z.input[z.n]
		var v int32
		switch {
		case '0' <= c && c <= '9':
			v = c - '0'
		case hex && 'a' <= c && c <= 'f':
			v = c - 'a' + 10
		case hex && 'A' <= c && c <= 'F':
			v = c - 'A' + 10
		default:
			goto done
		}
		digits++
		if code < 0x110000 {
			if hex {
				code = code*16 + v
			} else {
				code = code*10 + v
			}
		}
		z.n++
	}
done:
	if digits == 0 {
		// "&#" (or "&#x") with no digits is not a reference at all.
		z.err("absence-of-digits-in-numeric-character-reference")
		z.flushRef(marker...)
		return
	}

	if z.n < len(z.input) && z.input[z.n] == ';' {
		z.n++
	} else {
		z.err("missing-semicolon-after-character-reference")
	}

	switch {
	case code == 0:
		z.errAt("null-character-reference", ampLine, ampCol)
		code = 0xFFFD
	case code > 0x10FFFF:
		z.errAt("character-reference-outside-unicode-range", ampLine, ampCol)
		code = 0xFFFD
	case 0xD800 <= code && code <= 0xDFFF:
		z.errAt("surrogate-character-reference", ampLine, ampCol)
		code = 0xFFFD
	case isNoncharacter(code):
		z.errAt("noncharacter-character-reference", ampLine, ampCol)
	case code == 0x0D || isControl(code):
		z.errAt("control-character-reference", ampLine, ampCol)
		if repl, found := replacementTable[code]; found {
			code = int32(repl)
		}
	}
	z.flushRef(rune(code))
}

func isNoncharacter(c int32) bool {
	if 0xFDD0 <= c && c <= 0xFDEF {
		return true
	}
	return c&0xFFFE == 0xFFFE && c <= 0x10FFFF
}

// isControl reports C0 controls that are not whitespace, and all C1
// controls.
func isControl(c int32) bool {
	if c == 0x09 || c == 0x0A || c == 0x0C || c == 0x0D || c == 0x20 {
		return false
	}
	return c <= 0x1F || 0x7F <= c && c <= 0x9F
}
