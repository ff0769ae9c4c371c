package fbgenkeys

import (
	"strings"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenWhitespace
	tokenComment
	tokenString
	tokenQuotedIdentifier
	tokenWord
	tokenOpenParen
	tokenCloseParen
	tokenPeriod
	tokenOther
)

type token struct {
	typ  tokenType
	text string
	pos  int
}

// tokenizer splits Firebird SQL into just enough tokens to find statement
// keywords, identifiers and parenthesis depth. It never fails: unterminated
// literals and comments run to the end of the input.
type tokenizer struct {
	input string
	pos   int
}

func newTokenizer(sql string) *tokenizer {
	return &tokenizer{input: sql}
}

func (t *tokenizer) peekByte(offset int) byte {
	if t.pos+offset < len(t.input) {
		return t.input[t.pos+offset]
	}
	return 0
}

func (t *tokenizer) next() token {
	if t.pos >= len(t.input) {
		return token{typ: tokenEOF, pos: t.pos}
	}
	start := t.pos
	c := t.input[t.pos]
	switch {
	case isSpace(c):
		for t.pos < len(t.input) && isSpace(t.input[t.pos]) {
			t.pos++
		}
		return t.newToken(tokenWhitespace, start)
	case c == '-' && t.peekByte(1) == '-':
		t.readLineComment()
		return t.newToken(tokenComment, start)
	case c == '/' && t.peekByte(1) == '*':
		t.readBlockComment()
		return t.newToken(tokenComment, start)
	case c == '\'':
		t.readQuoted('\'')
		return t.newToken(tokenString, start)
	case c == '"':
		t.readQuoted('"')
		return t.newToken(tokenQuotedIdentifier, start)
	case (c == 'q' || c == 'Q') && t.peekByte(1) == '\'' && t.peekByte(2) != 0:
		t.readQString()
		return t.newToken(tokenString, start)
	case isWordStart(c):
		for t.pos < len(t.input) && isWordPart(t.input[t.pos]) {
			t.pos++
		}
		return t.newToken(tokenWord, start)
	case c == '(':
		t.pos++
		return t.newToken(tokenOpenParen, start)
	case c == ')':
		t.pos++
		return t.newToken(tokenCloseParen, start)
	case c == '.':
		t.pos++
		return t.newToken(tokenPeriod, start)
	}
	t.pos++
	return t.newToken(tokenOther, start)
}

// nextSignificant skips whitespace and comments.
func (t *tokenizer) nextSignificant() token {
	for {
		tok := t.next()
		if tok.typ != tokenWhitespace && tok.typ != tokenComment {
			return tok
		}
	}
}

func (t *tokenizer) newToken(typ tokenType, start int) token {
	return token{typ: typ, text: t.input[start:t.pos], pos: start}
}

func (t *tokenizer) readLineComment() {
	i := strings.IndexByte(t.input[t.pos:], '\n')
	if i < 0 {
		t.pos = len(t.input)
		return
	}
	t.pos += i + 1
}

func (t *tokenizer) readBlockComment() {
	i := strings.Index(t.input[t.pos+2:], "*/")
	if i < 0 {
		t.pos = len(t.input)
		return
	}
	t.pos += 2 + i + 2
}

// readQuoted reads a literal or identifier where a doubled delimiter is an
// escaped delimiter.
func (t *tokenizer) readQuoted(delimiter byte) {
	t.pos++
	for t.pos < len(t.input) {
		if t.input[t.pos] == delimiter {
			if t.peekByte(1) == delimiter {
				t.pos += 2
				continue
			}
			t.pos++
			return
		}
		t.pos++
	}
}

// readQString reads q'<x>...<x>' where brackets close with their pair.
func (t *tokenizer) readQString() {
	open := t.input[t.pos+2]
	closing := open
	switch open {
	case '(':
		closing = ')'
	case '{':
		closing = '}'
	case '[':
		closing = ']'
	case '<':
		closing = '>'
	}
	t.pos += 3
	for t.pos < len(t.input) {
		if t.input[t.pos] == closing && t.peekByte(1) == '\'' {
			t.pos += 2
			return
		}
		t.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isWordStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c >= 0x80
}

func isWordPart(c byte) bool {
	return isWordStart(c) || c >= '0' && c <= '9' || c == '$'
}

func (tok token) isKeyword(keyword string) bool {
	return tok.typ == tokenWord && strings.EqualFold(tok.text, keyword)
}

func (tok token) isIdentifier() bool {
	return tok.typ == tokenWord || tok.typ == tokenQuotedIdentifier
}
