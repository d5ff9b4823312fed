package html5

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// A TokenizerState names a state of the tokenization state machine. The
// exported states are the ones a parse can start in; the treebuilder (or a
// Tokenize caller) selects them when element content changes the lexical
// grammar, e.g. after a <script> or <textarea> start tag.
type TokenizerState uint8

const (
	DataState TokenizerState = iota
	RCDATAState
	RAWTEXTState
	ScriptDataState
	// PLAINTEXTState is terminal: every remaining code point is text.
	PLAINTEXTState
	CDATASectionState

	tagOpenState
	endTagOpenState
	tagNameState
	rcdataLessThanSignState
	rcdataEndTagOpenState
	rcdataEndTagNameState
	rawtextLessThanSignState
	rawtextEndTagOpenState
	rawtextEndTagNameState
	scriptDataLessThanSignState
	scriptDataEndTagOpenState
	scriptDataEndTagNameState
	scriptDataEscapeStartState
	scriptDataEscapeStartDashState
	scriptDataEscapedState
	scriptDataEscapedDashState
	scriptDataEscapedDashDashState
	scriptDataEscapedLessThanSignState
	scriptDataEscapedEndTagOpenState
	scriptDataEscapedEndTagNameState
	scriptDataDoubleEscapeStartState
	scriptDataDoubleEscapedState
	scriptDataDoubleEscapedDashState
	scriptDataDoubleEscapedDashDashState
	scriptDataDoubleEscapedLessThanSignState
	scriptDataDoubleEscapeEndState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentLessThanSignState
	commentLessThanSignBangState
	commentLessThanSignBangDashState
	commentLessThanSignBangDashDashState
	commentEndDashState
	commentEndState
	commentEndBangState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	afterDoctypePublicKeywordState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	betweenDoctypePublicAndSystemIdentifiersState
	afterDoctypeSystemKeywordState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState
	cdataSectionBracketState
	cdataSectionEndState
)

// A Tokenizer runs the tokenization state machine over preprocessed input.
// It is a forward-only pass with at most a one-code-point reconsume. Errors
// never stop it: every malformed construct has a defined recovery.
type Tokenizer struct {
	input []rune
	pos   []position

	// n indexes the next code point to consume.
	n     int
	state TokenizerState
	// returnState is where character reference consumption resumes.
	returnState TokenizerState

	// lastStartTag is the name of the most recently emitted start tag; an
	// end tag in RCDATA/RAWTEXT/script data is structural only if its name
	// matches it.
	lastStartTag string
	allowCDATA   bool

	// tok is the tag, comment or doctype token under construction.
	tok Token
	// pendingAttr is the attribute under construction; dropAttr is set when
	// its name duplicates an earlier one, so it is discarded on completion.
	pendingAttr     Attribute
	pendingAttrSet  bool
	dropAttr        bool
	pendingAttrLine int
	pendingAttrCol  int

	// text buffers a run of character data; textLine/textCol hold the
	// position of its first code point.
	text     []rune
	textLine int
	textCol  int

	// buf is the temporary buffer (end tag scanning in raw text states,
	// script data double escaping, character references).
	buf []rune

	pending []Token
	eof     bool

	errs       []ParseError
	collect    bool
	onError    func(ParseError) // strict-mode hook, may be nil
	numRefCode int32
}

// NewTokenizer returns a tokenizer for the given decoded text, starting in
// the data state. The text is preprocessed (newline normalization) before
// tokenization.
func NewTokenizer(text string) *Tokenizer {
	input, pos := preprocess(text)
	return &Tokenizer{
		input:   input,
		pos:     pos,
		state:   DataState,
		collect: true,
	}
}

// SetState switches the state the machine will be in for the next code
// point. The treebuilder calls this after start tags that change the lexical
// grammar (script, style, textarea, title, plaintext, ...).
func (z *Tokenizer) SetState(s TokenizerState) { z.state = s }

// SetLastStartTag seeds the "appropriate end tag" check. It is only needed
// when tokenization starts mid-document, e.g. in RCDATA for fragment
// parsing; ordinary runs track emitted start tags automatically.
func (z *Tokenizer) SetLastStartTag(name string) { z.lastStartTag = name }

// SetAllowCDATA sets whether "<![CDATA[" opens a CDATA section. The
// treebuilder enables it only while the adjusted current node is in a
// foreign namespace.
func (z *Tokenizer) SetAllowCDATA(allow bool) { z.allowCDATA = allow }

// Errors returns the parse errors recorded so far, in emission order.
func (z *Tokenizer) Errors() []ParseError { return z.errs }

// Next returns the next token. After the input is exhausted it returns an
// EOFToken forever.
func (z *Tokenizer) Next() Token {
	for len(z.pending) == 0 {
		z.step()
	}
	t := z.pending[0]
	z.pending = z.pending[1:]
	return t
}

// consume returns the next input code point, or false at end of input.
func (z *Tokenizer) consume() (rune, bool) {
	if z.n >= len(z.input) {
		z.n++ // keep reconsume symmetric at EOF
		return 0, false
	}
	r := z.input[z.n]
	z.n++
	return r, true
}

// reconsume makes the most recently consumed code point the next one again.
func (z *Tokenizer) reconsume() { z.n-- }

func (z *Tokenizer) curPos() (int, int) {
	i := z.n - 1
	if i >= len(z.pos) {
		return z.eofPos()
	}
	if i < 0 {
		i = 0
	}
	return int(z.pos[i].line), int(z.pos[i].col)
}

func (z *Tokenizer) eofPos() (int, int) {
	if len(z.pos) == 0 {
		return 1, 1
	}
	last := z.pos[len(z.pos)-1]
	if z.input[len(z.input)-1] == '\n' {
		return int(last.line) + 1, 1
	}
	return int(last.line), int(last.col) + 1
}

// err records a parse error at the most recently consumed code point.
func (z *Tokenizer) err(code string) {
	line, col := z.curPos()
	z.errAt(code, line, col)
}

func (z *Tokenizer) errAt(code string, line, col int) {
	e := ParseError{Code: code, Line: line, Col: col}
	if z.collect {
		z.errs = append(z.errs, e)
	}
	if z.onError != nil {
		z.onError(e)
	}
}

func (z *Tokenizer) appendText(r rune) {
	if len(z.text) == 0 {
		z.textLine, z.textCol = z.curPos()
	}
	z.text = append(z.text, r)
}

// appendTextRun appends text whose run position, if it starts one, is the
// given location (used when flushing buffered markup like "</" + name).
func (z *Tokenizer) appendTextRun(s []rune, line, col int) {
	if len(z.text) == 0 {
		z.textLine, z.textCol = line, col
	}
	z.text = append(z.text, s...)
}

func (z *Tokenizer) flushText() {
	if len(z.text) == 0 {
		return
	}
	z.pending = append(z.pending, Token{
		Type: CharacterToken,
		Data: string(z.text),
		Line: z.textLine,
		Col:  z.textCol,
	})
	z.text = z.text[:0]
}

func (z *Tokenizer) emit(t Token) {
	z.flushText()
	z.pending = append(z.pending, t)
}

func (z *Tokenizer) emitEOF() {
	z.flushText()
	line, col := z.eofPos()
	z.pending = append(z.pending, Token{Type: EOFToken, Line: line, Col: col})
	z.eof = true
}

// startTagToken begins a new tag token at the position of the '<' that
// opened it, which is delta code points back from the current one.
func (z *Tokenizer) startTagToken(tt TokenType, delta int) {
	i := z.n - 1 - delta
	line, col := 0, 0
	if i >= 0 && i < len(z.pos) {
		line, col = int(z.pos[i].line), int(z.pos[i].col)
	} else {
		line, col = z.curPos()
	}
	z.tok = Token{Type: tt, Line: line, Col: col}
	z.pendingAttrSet = false
	z.dropAttr = false
}

func (z *Tokenizer) appendTagName(r rune) {
	z.tok.Data += string(r)
}

func (z *Tokenizer) startAttr() {
	z.finishAttr()
	z.pendingAttr = Attribute{}
	z.pendingAttrSet = true
	z.dropAttr = false
	z.pendingAttrLine, z.pendingAttrCol = z.curPos()
}

// finishAttr commits the pending attribute, dropping duplicates and keeping
// the first occurrence of a name.
func (z *Tokenizer) finishAttr() {
	if !z.pendingAttrSet {
		return
	}
	z.pendingAttrSet = false
	if z.dropAttr {
		return
	}
	z.tok.Attr = append(z.tok.Attr, z.pendingAttr)
}

// checkAttrName is called once the pending attribute's name is complete.
func (z *Tokenizer) checkAttrName() {
	if !z.pendingAttrSet {
		return
	}
	for _, a := range z.tok.Attr {
		if a.Key == z.pendingAttr.Key {
			z.errAt("duplicate-attribute", z.pendingAttrLine, z.pendingAttrCol)
			z.dropAttr = true
			return
		}
	}
}

func (z *Tokenizer) emitTag() {
	z.finishAttr()
	z.tok.DataAtom = atom.Lookup([]byte(z.tok.Data))
	if z.tok.Type == StartTagToken {
		z.lastStartTag = z.tok.Data
	} else {
		if len(z.tok.Attr) > 0 {
			z.err("end-tag-with-attributes")
		}
		if z.tok.SelfClosing {
			z.err("end-tag-with-trailing-solidus")
			z.tok.SelfClosing = false
		}
	}
	z.emit(z.tok)
	z.state = DataState
}

// isAppropriateEndTag reports whether the end tag under construction closes
// the element that switched the tokenizer out of the data state.
func (z *Tokenizer) isAppropriateEndTag() bool {
	return z.lastStartTag != "" && strings.EqualFold(z.tok.Data, z.lastStartTag)
}

func isASCIIAlpha(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isASCIIAlnum(r rune) bool {
	return isASCIIAlpha(r) || '0' <= r && r <= '9'
}

func isWhitespace(r rune) bool {
	return r == '\t' || r == '\n' || r == '\f' || r == ' '
}

func toLower(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + 'a' - 'A'
	}
	return r
}

// lookAhead reports whether the upcoming input (starting at the next
// unconsumed code point) matches s, ASCII case-insensitively when fold is
// set, consuming it on a match.
func (z *Tokenizer) lookAhead(s string, fold bool) bool {
	start := z.n
	if start+len(s) > len(z.input) {
		return false
	}
	for i := 0; i < len(s); i++ {
		r := z.input[start+i]
		c := rune(s[i])
		if fold {
			r = toLower(r)
			c = toLower(c)
		}
		if r != c {
			return false
		}
	}
	z.n = start + len(s)
	return true
}

// step consumes one code point (or the EOF sentinel) and advances the state
// machine. Subroutines such as character reference consumption may consume
// more.
func (z *Tokenizer) step() {
	if z.eof {
		line, col := z.eofPos()
		z.pending = append(z.pending, Token{Type: EOFToken, Line: line, Col: col})
		return
	}

	r, ok := z.consume()

	switch z.state {
	case DataState:
		switch {
		case !ok:
			z.emitEOF()
		case r == '&':
			z.returnState = DataState
			z.consumeCharacterReference(false)
		case r == '<':
			z.state = tagOpenState
		case r == 0:
			z.err("unexpected-null-character")
			z.appendText(r)
		default:
			z.appendText(r)
		}

	case RCDATAState:
		switch {
		case !ok:
			z.emitEOF()
		case r == '&':
			z.returnState = RCDATAState
			z.consumeCharacterReference(false)
		case r == '<':
			z.state = rcdataLessThanSignState
		case r == 0:
			z.err("unexpected-null-character")
			z.appendText('�')
		default:
			z.appendText(r)
		}

	case RAWTEXTState:
		switch {
		case !ok:
			z.emitEOF()
		case r == '<':
			z.state = rawtextLessThanSignState
		case r == 0:
			z.err("unexpected-null-character")
			z.appendText('�')
		default:
			z.appendText(r)
		}

	case ScriptDataState:
		switch {
		case !ok:
			z.emitEOF()
		case r == '<':
			z.state = scriptDataLessThanSignState
		case r == 0:
			z.err("unexpected-null-character")
			z.appendText('�')
		default:
			z.appendText(r)
		}

	case PLAINTEXTState:
		switch {
		case !ok:
			z.emitEOF()
		case r == 0:
			z.err("unexpected-null-character")
			z.appendText('�')
		default:
			z.appendText(r)
		}

	case tagOpenState:
		switch {
		case !ok:
			z.err("eof-before-tag-name")
			z.appendText('<')
			z.emitEOF()
		case r == '!':
			z.state = markupDeclarationOpenState
		case r == '/':
			z.state = endTagOpenState
		case isASCIIAlpha(r):
			z.startTagToken(StartTagToken, 1)
			z.reconsume()
			z.state = tagNameState
		case r == '?':
			z.err("unexpected-question-mark-instead-of-tag-name")
			z.startTagToken(CommentToken, 1)
			z.reconsume()
			z.state = bogusCommentState
		default:
			z.err("invalid-first-character-of-tag-name")
			z.appendText('<')
			z.reconsume()
			z.state = DataState
		}

	case endTagOpenState:
		switch {
		case !ok:
			z.err("eof-before-tag-name")
			z.appendText('<')
			z.appendText('/')
			z.emitEOF()
		case isASCIIAlpha(r):
			z.startTagToken(EndTagToken, 2)
			z.reconsume()
			z.state = tagNameState
		case r == '>':
			z.err("missing-end-tag-name")
			z.state = DataState
		default:
			z.err("invalid-first-character-of-tag-name")
			z.startTagToken(CommentToken, 2)
			z.reconsume()
			z.state = bogusCommentState
		}

	case tagNameState:
		switch {
		case !ok:
			z.err("eof-in-tag")
			z.emitEOF()
		case isWhitespace(r):
			z.state = beforeAttributeNameState
		case r == '/':
			z.state = selfClosingStartTagState
		case r == '>':
			z.emitTag()
		case r == 0:
			z.err("unexpected-null-character")
			z.appendTagName('�')
		default:
			z.appendTagName(toLower(r))
		}

	case rcdataLessThanSignState:
		if ok && r == '/' {
			z.buf = z.buf[:0]
			z.state = rcdataEndTagOpenState
		} else {
			z.appendText('<')
			z.reconsume()
			z.state = RCDATAState
		}

	case rcdataEndTagOpenState:
		if ok && isASCIIAlpha(r) {
			z.startTagToken(EndTagToken, 2)
			z.reconsume()
			z.state = rcdataEndTagNameState
		} else {
			z.appendText('<')
			z.appendText('/')
			z.reconsume()
			z.state = RCDATAState
		}

	case rcdataEndTagNameState:
		z.rawEndTagNameState(r, ok, RCDATAState)

	case rawtextLessThanSignState:
		if ok && r == '/' {
			z.buf = z.buf[:0]
			z.state = rawtextEndTagOpenState
		} else {
			z.appendText('<')
			z.reconsume()
			z.state = RAWTEXTState
		}

	case rawtextEndTagOpenState:
		if ok && isASCIIAlpha(r) {
			z.startTagToken(EndTagToken, 2)
			z.reconsume()
			z.state = rawtextEndTagNameState
		} else {
			z.appendText('<')
			z.appendText('/')
			z.reconsume()
			z.state = RAWTEXTState
		}

	case rawtextEndTagNameState:
		z.rawEndTagNameState(r, ok, RAWTEXTState)

	case scriptDataLessThanSignState:
		switch {
		case ok && r == '/':
			z.buf = z.buf[:0]
			z.state = scriptDataEndTagOpenState
		case ok && r == '!':
			z.appendText('<')
			z.appendText('!')
			z.state = scriptDataEscapeStartState
		default:
			z.appendText('<')
			z.reconsume()
			z.state = ScriptDataState
		}

	case scriptDataEndTagOpenState:
		if ok && isASCIIAlpha(r) {
			z.startTagToken(EndTagToken, 2)
			z.reconsume()
			z.state = scriptDataEndTagNameState
		} else {
			z.appendText('<')
			z.appendText('/')
			z.reconsume()
			z.state = ScriptDataState
		}

	case scriptDataEndTagNameState:
		z.rawEndTagNameState(r, ok, ScriptDataState)

	case scriptDataEscapeStartState:
		if ok && r == '-' {
			z.appendText('-')
			z.state = scriptDataEscapeStartDashState
		} else {
			z.reconsume()
			z.state = ScriptDataState
		}

	case scriptDataEscapeStartDashState:
		if ok && r == '-' {
			z.appendText('-')
			z.state = scriptDataEscapedDashDashState
		} else {
			z.reconsume()
			z.state = ScriptDataState
		}

	case scriptDataEscapedState:
		switch {
		case !ok:
			z.err("eof-in-script-html-comment-like-text")
			z.emitEOF()
		case r == '-':
			z.appendText('-')
			z.state = scriptDataEscapedDashState
		case r == '<':
			z.state = scriptDataEscapedLessThanSignState
		case r == 0:
			z.err("unexpected-null-character")
			z.appendText('�')
		default:
			z.appendText(r)
		}

	case scriptDataEscapedDashState:
		switch {
		case !ok:
			z.err("eof-in-script-html-comment-like-text")
			z.emitEOF()
		case r == '-':
			z.appendText('-')
			z.state = scriptDataEscapedDashDashState
		case r == '<':
			z.state = scriptDataEscapedLessThanSignState
		case r == 0:
			z.err("unexpected-null-character")
			z.appendText('�')
			z.state = scriptDataEscapedState
		default:
			z.appendText(r)
			z.state = scriptDataEscapedState
		}

	case scriptDataEscapedDashDashState:
		switch {
		case !ok:
			z.err("eof-in-script-html-comment-like-text")
			z.emitEOF()
		case r == '-':
			z.appendText('-')
		case r == '<':
			z.state = scriptDataEscapedLessThanSignState
		case r == '>':
			z.appendText('>')
			z.state = ScriptDataState
		case r == 0:
			z.err("unexpected-null-character")
			z.appendText('�')
			z.state = scriptDataEscapedState
		default:
			z.appendText(r)
			z.state = scriptDataEscapedState
		}

	case scriptDataEscapedLessThanSignState:
		switch {
		case ok && r == '/':
			z.buf = z.buf[:0]
			z.state = scriptDataEscapedEndTagOpenState
		case ok && isASCIIAlpha(r):
			z.buf = z.buf[:0]
			z.appendText('<')
			z.reconsume()
			z.state = scriptDataDoubleEscapeStartState
		default:
			z.appendText('<')
			z.reconsume()
			z.state = scriptDataEscapedState
		}

	case scriptDataEscapedEndTagOpenState:
		if ok && isASCIIAlpha(r) {
			z.startTagToken(EndTagToken, 2)
			z.reconsume()
			z.state = scriptDataEscapedEndTagNameState
		} else {
			z.appendText('<')
			z.appendText('/')
			z.reconsume()
			z.state = scriptDataEscapedState
		}

	case scriptDataEscapedEndTagNameState:
		z.rawEndTagNameState(r, ok, scriptDataEscapedState)

	case scriptDataDoubleEscapeStartState:
		switch {
		case ok && (isWhitespace(r) || r == '/' || r == '>'):
			if string(z.buf) == "script" {
				z.state = scriptDataDoubleEscapedState
			} else {
				z.state = scriptDataEscapedState
			}
			z.appendText(r)
		case ok && isASCIIAlpha(r):
			z.buf = append(z.buf, toLower(r))
			z.appendText(r)
		default:
			z.reconsume()
			z.state = scriptDataEscapedState
		}

	case scriptDataDoubleEscapedState:
		switch {
		case !ok:
			z.err("eof-in-script-html-comment-like-text")
			z.emitEOF()
		case r == '-':
			z.appendText('-')
			z.state = scriptDataDoubleEscapedDashState
		case r == '<':
			z.appendText('<')
			z.state = scriptDataDoubleEscapedLessThanSignState
		case r == 0:
			z.err("unexpected-null-character")
			z.appendText('�')
		default:
			z.appendText(r)
		}

	case scriptDataDoubleEscapedDashState:
		switch {
		case !ok:
			z.err("eof-in-script-html-comment-like-text")
			z.emitEOF()
		case r == '-':
			z.appendText('-')
			z.state = scriptDataDoubleEscapedDashDashState
		case r == '<':
			z.appendText('<')
			z.state = scriptDataDoubleEscapedLessThanSignState
		case r == 0:
			z.err("unexpected-null-character")
			z.appendText('�')
			z.state = scriptDataDoubleEscapedState
		default:
			z.appendText(r)
			z.state = scriptDataDoubleEscapedState
		}

	case scriptDataDoubleEscapedDashDashState:
		switch {
		case !ok:
			z.err("eof-in-script-html-comment-like-text")
			z.emitEOF()
		case r == '-':
			z.appendText('-')
		case r == '<':
			z.appendText('<')
			z.state = scriptDataDoubleEscapedLessThanSignState
		case r == '>':
			z.appendText('>')
			z.state = ScriptDataState
		case r == 0:
			z.err("unexpected-null-character")
			z.appendText('�')
			z.state = scriptDataDoubleEscapedState
		default:
			z.appendText(r)
			z.state = scriptDataDoubleEscapedState
		}

	case scriptDataDoubleEscapedLessThanSignState:
		if ok && r == '/' {
			z.buf = z.buf[:0]
			z.appendText('/')
			z.state = scriptDataDoubleEscapeEndState
		} else {
			z.reconsume()
			z.state = scriptDataDoubleEscapedState
		}

	case scriptDataDoubleEscapeEndState:
		switch {
		case ok && (isWhitespace(r) || r == '/' || r == '>'):
			if string(z.buf) == "script" {
				z.state = scriptDataEscapedState
			} else {
				z.state = scriptDataDoubleEscapedState
			}
			z.appendText(r)
		case ok && isASCIIAlpha(r):
			z.buf = append(z.buf, toLower(r))
			z.appendText(r)
		default:
			z.reconsume()
			z.state = scriptDataDoubleEscapedState
		}

	case beforeAttributeNameState:
		switch {
		case !ok:
			z.reconsume()
			z.state = afterAttributeNameState
		case isWhitespace(r):
			// Ignore.
		case r == '/' || r == '>':
			z.reconsume()
			z.state = afterAttributeNameState
		case r == '=':
			z.err("unexpected-equals-sign-before-attribute-name")
			z.startAttr()
			z.pendingAttr.Key = "="
			z.state = attributeNameState
		default:
			z.startAttr()
			z.reconsume()
			z.state = attributeNameState
		}

	case attributeNameState:
		switch {
		case !ok || isWhitespace(r) || r == '/' || r == '>':
			z.checkAttrName()
			z.reconsume()
			z.state = afterAttributeNameState
		case r == '=':
			z.checkAttrName()
			z.state = beforeAttributeValueState
		case r == 0:
			z.err("unexpected-null-character")
			z.pendingAttr.Key += "�"
		case r == '"' || r == '\'' || r == '<':
			z.err("unexpected-character-in-attribute-name")
			z.pendingAttr.Key += string(r)
		default:
			z.pendingAttr.Key += string(toLower(r))
		}

	case afterAttributeNameState:
		switch {
		case !ok:
			z.err("eof-in-tag")
			z.emitEOF()
		case isWhitespace(r):
			// Ignore.
		case r == '/':
			z.state = selfClosingStartTagState
		case r == '=':
			z.state = beforeAttributeValueState
		case r == '>':
			z.emitTag()
		default:
			z.startAttr()
			z.reconsume()
			z.state = attributeNameState
		}

	case beforeAttributeValueState:
		switch {
		case !ok:
			z.reconsume()
			z.state = attributeValueUnquotedState
		case isWhitespace(r):
			// Ignore.
		case r == '"':
			z.state = attributeValueDoubleQuotedState
		case r == '\'':
			z.state = attributeValueSingleQuotedState
		case r == '>':
			z.err("missing-attribute-value")
			z.emitTag()
		default:
			z.reconsume()
			z.state = attributeValueUnquotedState
		}

	case attributeValueDoubleQuotedState:
		switch {
		case !ok:
			z.err("eof-in-tag")
			z.emitEOF()
		case r == '"':
			z.state = afterAttributeValueQuotedState
		case r == '&':
			z.returnState = attributeValueDoubleQuotedState
			z.consumeCharacterReference(true)
		case r == 0:
			z.err("unexpected-null-character")
			z.pendingAttr.Val += "�"
		default:
			z.pendingAttr.Val += string(r)
		}

	case attributeValueSingleQuotedState:
		switch {
		case !ok:
			z.err("eof-in-tag")
			z.emitEOF()
		case r == '\'':
			z.state = afterAttributeValueQuotedState
		case r == '&':
			z.returnState = attributeValueSingleQuotedState
			z.consumeCharacterReference(true)
		case r == 0:
			z.err("unexpected-null-character")
			z.pendingAttr.Val += "�"
		default:
			z.pendingAttr.Val += string(r)
		}

	case attributeValueUnquotedState:
		switch {
		case !ok:
			z.err("eof-in-tag")
			z.emitEOF()
		case isWhitespace(r):
			z.state = beforeAttributeNameState
		case r == '&':
			z.returnState = attributeValueUnquotedState
			z.consumeCharacterReference(true)
		case r == '>':
			z.emitTag()
		case r == 0:
			z.err("unexpected-null-character")
			z.pendingAttr.Val += "�"
		case r == '"' || r == '\'' || r == '<' || r == '=' || r == '`':
			z.err("unexpected-character-in-unquoted-attribute-value")
			z.pendingAttr.Val += string(r)
		default:
			z.pendingAttr.Val += string(r)
		}

	case afterAttributeValueQuotedState:
		switch {
		case !ok:
			z.err("eof-in-tag")
			z.emitEOF()
		case isWhitespace(r):
			z.state = beforeAttributeNameState
		case r == '/':
			z.state = selfClosingStartTagState
		case r == '>':
			z.emitTag()
		default:
			z.err("missing-whitespace-between-attributes")
			z.reconsume()
			z.state = beforeAttributeNameState
		}

	case selfClosingStartTagState:
		switch {
		case !ok:
			z.err("eof-in-tag")
			z.emitEOF()
		case r == '>':
			z.tok.SelfClosing = true
			z.emitTag()
		default:
			z.err("unexpected-solidus-in-tag")
			z.reconsume()
			z.state = beforeAttributeNameState
		}

	case bogusCommentState:
		switch {
		case !ok:
			z.emit(z.tok)
			z.emitEOF()
		case r == '>':
			z.emit(z.tok)
			z.state = DataState
		case r == 0:
			z.err("unexpected-null-character")
			z.tok.Data += "�"
		default:
			z.tok.Data += string(r)
		}

	case markupDeclarationOpenState:
		z.reconsume()
		switch {
		case z.lookAhead("--", false):
			z.startTagToken(CommentToken, 3)
			z.state = commentStartState
		case z.lookAhead("DOCTYPE", true):
			z.state = doctypeState
		case z.lookAhead("[CDATA[", false):
			if z.allowCDATA {
				z.state = CDATASectionState
			} else {
				z.err("cdata-in-html-content")
				z.startTagToken(CommentToken, 8)
				z.tok.Data = "[CDATA["
				z.state = bogusCommentState
			}
		default:
			z.err("incorrectly-opened-comment")
			z.startTagToken(CommentToken, 1)
			z.state = bogusCommentState
		}

	case commentStartState:
		switch {
		case !ok:
			z.reconsume()
			z.state = commentState
		case r == '-':
			z.state = commentStartDashState
		case r == '>':
			z.err("abrupt-closing-of-empty-comment")
			z.emit(z.tok)
			z.state = DataState
		default:
			z.reconsume()
			z.state = commentState
		}

	case commentStartDashState:
		switch {
		case !ok:
			z.err("eof-in-comment")
			z.emit(z.tok)
			z.emitEOF()
		case r == '-':
			z.state = commentEndState
		case r == '>':
			z.err("abrupt-closing-of-empty-comment")
			z.emit(z.tok)
			z.state = DataState
		default:
			z.tok.Data += "-"
			z.reconsume()
			z.state = commentState
		}

	case commentState:
		switch {
		case !ok:
			z.err("eof-in-comment")
			z.emit(z.tok)
			z.emitEOF()
		case r == '<':
			z.tok.Data += string(r)
			z.state = commentLessThanSignState
		case r == '-':
			z.state = commentEndDashState
		case r == 0:
			z.err("unexpected-null-character")
			z.tok.Data += "�"
		default:
			z.tok.Data += string(r)
		}

	case commentLessThanSignState:
		switch {
		case ok && r == '!':
			z.tok.Data += string(r)
			z.state = commentLessThanSignBangState
		case ok && r == '<':
			z.tok.Data += string(r)
		default:
			z.reconsume()
			z.state = commentState
		}

	case commentLessThanSignBangState:
		if ok && r == '-' {
			z.state = commentLessThanSignBangDashState
		} else {
			z.reconsume()
			z.state = commentState
		}

	case commentLessThanSignBangDashState:
		if ok && r == '-' {
			z.state = commentLessThanSignBangDashDashState
		} else {
			z.reconsume()
			z.state = commentEndDashState
		}

	case commentLessThanSignBangDashDashState:
		if !ok || r == '>' {
			z.reconsume()
			z.state = commentEndState
		} else {
			z.err("nested-comment")
			z.reconsume()
			z.state = commentEndState
		}

	case commentEndDashState:
		switch {
		case !ok:
			z.err("eof-in-comment")
			z.emit(z.tok)
			z.emitEOF()
		case r == '-':
			z.state = commentEndState
		default:
			z.tok.Data += "-"
			z.reconsume()
			z.state = commentState
		}

	case commentEndState:
		switch {
		case !ok:
			z.err("eof-in-comment")
			z.emit(z.tok)
			z.emitEOF()
		case r == '>':
			z.emit(z.tok)
			z.state = DataState
		case r == '!':
			z.state = commentEndBangState
		case r == '-':
			z.tok.Data += "-"
		default:
			z.tok.Data += "--"
			z.reconsume()
			z.state = commentState
		}

	case commentEndBangState:
		switch {
		case !ok:
			z.err("eof-in-comment")
			z.emit(z.tok)
			z.emitEOF()
		case r == '-':
			z.tok.Data += "--!"
			z.state = commentEndDashState
		case r == '>':
			z.err("incorrectly-closed-comment")
			z.emit(z.tok)
			z.state = DataState
		default:
			z.tok.Data += "--!"
			z.reconsume()
			z.state = commentState
		}

	case doctypeState:
		switch {
		case !ok:
			z.err("eof-in-doctype")
			z.newDoctypeToken()
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.emitEOF()
		case isWhitespace(r):
			z.state = beforeDoctypeNameState
		case r == '>':
			z.reconsume()
			z.state = beforeDoctypeNameState
		default:
			z.err("missing-whitespace-before-doctype-name")
			z.reconsume()
			z.state = beforeDoctypeNameState
		}

	case beforeDoctypeNameState:
		switch {
		case !ok:
			z.err("eof-in-doctype")
			z.newDoctypeToken()
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.emitEOF()
		case isWhitespace(r):
			// Ignore.
		case r == 0:
			z.err("unexpected-null-character")
			z.newDoctypeToken()
			z.tok.Data = "�"
			z.state = doctypeNameState
		case r == '>':
			z.err("missing-doctype-name")
			z.newDoctypeToken()
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.state = DataState
		default:
			z.newDoctypeToken()
			z.tok.Data = string(toLower(r))
			z.state = doctypeNameState
		}

	case doctypeNameState:
		switch {
		case !ok:
			z.err("eof-in-doctype")
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.emitEOF()
		case isWhitespace(r):
			z.state = afterDoctypeNameState
		case r == '>':
			z.emit(z.tok)
			z.state = DataState
		case r == 0:
			z.err("unexpected-null-character")
			z.tok.Data += "�"
		default:
			z.tok.Data += string(toLower(r))
		}

	case afterDoctypeNameState:
		switch {
		case !ok:
			z.err("eof-in-doctype")
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.emitEOF()
		case isWhitespace(r):
			// Ignore.
		case r == '>':
			z.emit(z.tok)
			z.state = DataState
		default:
			z.reconsume()
			if z.lookAhead("PUBLIC", true) {
				z.state = afterDoctypePublicKeywordState
			} else if z.lookAhead("SYSTEM", true) {
				z.state = afterDoctypeSystemKeywordState
			} else {
				z.err("invalid-character-sequence-after-doctype-name")
				z.tok.ForceQuirks = true
				z.state = bogusDoctypeState
			}
		}

	case afterDoctypePublicKeywordState:
		switch {
		case !ok:
			z.err("eof-in-doctype")
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.emitEOF()
		case isWhitespace(r):
			z.state = beforeDoctypePublicIdentifierState
		case r == '"':
			z.err("missing-whitespace-after-doctype-public-keyword")
			z.tok.HasPublic = true
			z.state = doctypePublicIdentifierDoubleQuotedState
		case r == '\'':
			z.err("missing-whitespace-after-doctype-public-keyword")
			z.tok.HasPublic = true
			z.state = doctypePublicIdentifierSingleQuotedState
		case r == '>':
			z.err("missing-doctype-public-identifier")
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.state = DataState
		default:
			z.err("missing-quote-before-doctype-public-identifier")
			z.tok.ForceQuirks = true
			z.reconsume()
			z.state = bogusDoctypeState
		}

	case beforeDoctypePublicIdentifierState:
		switch {
		case !ok:
			z.err("eof-in-doctype")
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.emitEOF()
		case isWhitespace(r):
			// Ignore.
		case r == '"':
			z.tok.HasPublic = true
			z.state = doctypePublicIdentifierDoubleQuotedState
		case r == '\'':
			z.tok.HasPublic = true
			z.state = doctypePublicIdentifierSingleQuotedState
		case r == '>':
			z.err("missing-doctype-public-identifier")
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.state = DataState
		default:
			z.err("missing-quote-before-doctype-public-identifier")
			z.tok.ForceQuirks = true
			z.reconsume()
			z.state = bogusDoctypeState
		}

	case doctypePublicIdentifierDoubleQuotedState, doctypePublicIdentifierSingleQuotedState:
		quote := rune('"')
		if z.state == doctypePublicIdentifierSingleQuotedState {
			quote = '\''
		}
		switch {
		case !ok:
			z.err("eof-in-doctype")
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.emitEOF()
		case r == quote:
			z.state = afterDoctypePublicIdentifierState
		case r == 0:
			z.err("unexpected-null-character")
			z.tok.Public += "�"
		case r == '>':
			z.err("abrupt-doctype-public-identifier")
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.state = DataState
		default:
			z.tok.Public += string(r)
		}

	case afterDoctypePublicIdentifierState:
		switch {
		case !ok:
			z.err("eof-in-doctype")
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.emitEOF()
		case isWhitespace(r):
			z.state = betweenDoctypePublicAndSystemIdentifiersState
		case r == '>':
			z.emit(z.tok)
			z.state = DataState
		case r == '"':
			z.err("missing-whitespace-between-doctype-public-and-system-identifiers")
			z.tok.HasSystem = true
			z.state = doctypeSystemIdentifierDoubleQuotedState
		case r == '\'':
			z.err("missing-whitespace-between-doctype-public-and-system-identifiers")
			z.tok.HasSystem = true
			z.state = doctypeSystemIdentifierSingleQuotedState
		default:
			z.err("missing-quote-before-doctype-system-identifier")
			z.tok.ForceQuirks = true
			z.reconsume()
			z.state = bogusDoctypeState
		}

	case betweenDoctypePublicAndSystemIdentifiersState:
		switch {
		case !ok:
			z.err("eof-in-doctype")
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.emitEOF()
		case isWhitespace(r):
			// Ignore.
		case r == '>':
			z.emit(z.tok)
			z.state = DataState
		case r == '"':
			z.tok.HasSystem = true
			z.state = doctypeSystemIdentifierDoubleQuotedState
		case r == '\'':
			z.tok.HasSystem = true
			z.state = doctypeSystemIdentifierSingleQuotedState
		default:
			z.err("missing-quote-before-doctype-system-identifier")
			z.tok.ForceQuirks = true
			z.reconsume()
			z.state = bogusDoctypeState
		}

	case afterDoctypeSystemKeywordState:
		switch {
		case !ok:
			z.err("eof-in-doctype")
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.emitEOF()
		case isWhitespace(r):
			z.state = beforeDoctypeSystemIdentifierState
		case r == '"':
			z.err("missing-whitespace-after-doctype-system-keyword")
			z.tok.HasSystem = true
			z.state = doctypeSystemIdentifierDoubleQuotedState
		case r == '\'':
			z.err("missing-whitespace-after-doctype-system-keyword")
			z.tok.HasSystem = true
			z.state = doctypeSystemIdentifierSingleQuotedState
		case r == '>':
			z.err("missing-doctype-system-identifier")
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.state = DataState
		default:
			z.err("missing-quote-before-doctype-system-identifier")
			z.tok.ForceQuirks = true
			z.reconsume()
			z.state = bogusDoctypeState
		}

	case beforeDoctypeSystemIdentifierState:
		switch {
		case !ok:
			z.err("eof-in-doctype")
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.emitEOF()
		case isWhitespace(r):
			// Ignore.
		case r == '"':
			z.tok.HasSystem = true
			z.state = doctypeSystemIdentifierDoubleQuotedState
		case r == '\'':
			z.tok.HasSystem = true
			z.state = doctypeSystemIdentifierSingleQuotedState
		case r == '>':
			z.err("missing-doctype-system-identifier")
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.state = DataState
		default:
			z.err("missing-quote-before-doctype-system-identifier")
			z.tok.ForceQuirks = true
			z.reconsume()
			z.state = bogusDoctypeState
		}

	case doctypeSystemIdentifierDoubleQuotedState, doctypeSystemIdentifierSingleQuotedState:
		quote := rune('"')
		if z.state == doctypeSystemIdentifierSingleQuotedState {
			quote = '\''
		}
		switch {
		case !ok:
			z.err("eof-in-doctype")
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.emitEOF()
		case r == quote:
			z.state = afterDoctypeSystemIdentifierState
		case r == 0:
			z.err("unexpected-null-character")
			z.tok.System += "�"
		case r == '>':
			z.err("abrupt-doctype-system-identifier")
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.state = DataState
		default:
			z.tok.System += string(r)
		}

	case afterDoctypeSystemIdentifierState:
		switch {
		case !ok:
			z.err("eof-in-doctype")
			z.tok.ForceQuirks = true
			z.emit(z.tok)
			z.emitEOF()
		case isWhitespace(r):
			// Ignore.
		case r == '>':
			z.emit(z.tok)
			z.state = DataState
		default:
			z.err("unexpected-character-after-doctype-system-identifier")
			z.reconsume()
			z.state = bogusDoctypeState
		}

	case bogusDoctypeState:
		switch {
		case !ok:
			z.emit(z.tok)
			z.emitEOF()
		case r == '>':
			z.emit(z.tok)
			z.state = DataState
		case r == 0:
			z.err("unexpected-null-character")
		default:
			// Ignore.
		}

	case CDATASectionState:
		switch {
		case !ok:
			z.err("eof-in-cdata")
			z.emitEOF()
		case r == ']':
			z.state = cdataSectionBracketState
		default:
			z.appendText(r)
		}

	case cdataSectionBracketState:
		if ok && r == ']' {
			z.state = cdataSectionEndState
		} else {
			z.appendText(']')
			z.reconsume()
			z.state = CDATASectionState
		}

	case cdataSectionEndState:
		switch {
		case ok && r == ']':
			z.appendText(']')
		case ok && r == '>':
			z.state = DataState
		default:
			z.appendText(']')
			z.appendText(']')
			z.reconsume()
			z.state = CDATASectionState
		}

	default:
		panic("html5: bad tokenizer state")
	}
}

// newDoctypeToken begins a doctype token at the current position.
func (z *Tokenizer) newDoctypeToken() {
	line, col := z.curPos()
	z.tok = Token{Type: DoctypeToken, Line: line, Col: col}
}

// rawEndTagNameState handles the shared end-tag-name logic of the RCDATA,
// RAWTEXT, script data and script data escaped states. fallback is the state
// (and text treatment) used when the tag turns out not to be the appropriate
// end tag.
func (z *Tokenizer) rawEndTagNameState(r rune, ok bool, fallback TokenizerState) {
	switch {
	case ok && isWhitespace(r):
		if z.isAppropriateEndTag() {
			z.state = beforeAttributeNameState
			return
		}
	case ok && r == '/':
		if z.isAppropriateEndTag() {
			z.state = selfClosingStartTagState
			return
		}
	case ok && r == '>':
		if z.isAppropriateEndTag() {
			z.emitTag()
			return
		}
	case ok && isASCIIAlpha(r):
		z.appendTagName(toLower(r))
		z.buf = append(z.buf, r)
		return
	}
	// Anything else: the "</" and buffered name are plain text.
	line, col := z.tok.Line, z.tok.Col
	z.appendTextRun([]rune{'<', '/'}, line, col)
	z.appendTextRun(z.buf, line, col)
	z.buf = z.buf[:0]
	z.reconsume()
	z.state = fallback
}
