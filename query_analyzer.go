/*******************************************************************************
The MIT License (MIT)

Copyright (c) 2025 Hajime Nakagami

Permission is hereby granted, free of charge, to any person obtaining a copy of
this software and associated documentation files (the "Software"), to deal in
the Software without restriction, including without limitation the rights to
use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
the Software, and to permit persons to whom the Software is furnished to do so,
subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*******************************************************************************/

package fbgenkeys

// ParsedQuery is the result of AnalyzeQuery.
type ParsedQuery struct {
	Kind StatementKind
	// TableName as written in the statement, quotes included,
	// e.g. GENERATED_KEYS_TBL, "Table.Name" or SCHEMA."TBL"
	TableName    string
	HasReturning bool
	SQL          string
	// offset of a trailing top-level ';', or -1
	terminator int
}

// AnalyzeQuery finds the statement kind, target table and an existing
// top-level RETURNING clause. It is a keyword scan, not a SQL parser.
func AnalyzeQuery(sql string) ParsedQuery {
	pq := ParsedQuery{Kind: StatementOther, SQL: sql, terminator: -1}
	t := newTokenizer(sql)

	first := t.nextSignificant()
	var tok token
	switch {
	case first.isKeyword("INSERT"):
		if !t.nextSignificant().isKeyword("INTO") {
			return pq
		}
		pq.Kind = StatementInsert
		tok = t.nextSignificant()
	case first.isKeyword("UPDATE"):
		tok = t.nextSignificant()
		if tok.isKeyword("OR") {
			if !t.nextSignificant().isKeyword("INSERT") || !t.nextSignificant().isKeyword("INTO") {
				return pq
			}
			pq.Kind = StatementUpdateOrInsert
			tok = t.nextSignificant()
		} else {
			pq.Kind = StatementUpdate
		}
	case first.isKeyword("DELETE"), first.isKeyword("MERGE"):
		// RETURNING is valid here, but keys are never added to these
		pq.HasReturning, pq.terminator = scanStatementTail(t)
		return pq
	default:
		return pq
	}

	name, ok := readTableName(t, tok)
	if !ok {
		pq.Kind = StatementOther
		return pq
	}
	pq.TableName = name
	pq.HasReturning, pq.terminator = scanStatementTail(t)
	return pq
}

// readTableName reads [schema.]table starting at tok.
func readTableName(t *tokenizer, tok token) (string, bool) {
	if !tok.isIdentifier() {
		return "", false
	}
	name := tok.text
	save := t.pos
	if t.nextSignificant().typ == tokenPeriod {
		part := t.nextSignificant()
		if !part.isIdentifier() {
			return "", false
		}
		return name + "." + part.text, true
	}
	t.pos = save
	return name, true
}

// scanStatementTail looks for a top-level RETURNING and for a ';' that is
// followed only by whitespace, comments or more ';'.
func scanStatementTail(t *tokenizer) (returning bool, terminator int) {
	depth := 0
	terminator = -1
	for {
		tok := t.nextSignificant()
		if tok.typ == tokenEOF {
			return returning, terminator
		}
		if depth == 0 && tok.typ == tokenOther && tok.text == ";" {
			if terminator < 0 {
				terminator = tok.pos
			}
			continue
		}
		terminator = -1
		switch tok.typ {
		case tokenOpenParen:
			depth++
		case tokenCloseParen:
			if depth > 0 {
				depth--
			}
		case tokenWord:
			if depth == 0 && tok.isKeyword(returningKeyword) {
				returning = true
			}
		}
	}
}

// withClause inserts clause at the end of the statement, before a trailing
// ';' if there is one.
func (pq ParsedQuery) withClause(clause string) string {
	if pq.terminator < 0 {
		return pq.SQL + clause
	}
	return pq.SQL[:pq.terminator] + clause + pq.SQL[pq.terminator:]
}

// supportsKeys reports whether keys may be added to statements of this kind.
func (pq ParsedQuery) supportsKeys() bool {
	return pq.Kind != StatementOther
}
