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

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type ColumnMetadataEntry struct {
	Name            string
	OrdinalPosition int
}

// ColumnRows is a cursor over column metadata. Close must always be called.
type ColumnRows interface {
	Next() bool
	Entry() ColumnMetadataEntry
	Err() error
	Close() error
}

// DatabaseMetaData is what generated keys support needs from a connection.
// Patterns use LIKE syntax with '\' as escape; an empty pattern matches all,
// except that an empty schemaPattern may mean the current schema on servers
// that have schemas.
type DatabaseMetaData interface {
	Columns(ctx context.Context, catalog, schemaPattern, tableNamePattern, columnNamePattern string) (ColumnRows, error)
	ConnectionDialect() int
	DatabaseMajorVersion() int
	DatabaseMinorVersion() int
}

type sliceColumnRows struct {
	entries []ColumnMetadataEntry
	pos     int
}

// NewColumnRows returns a ColumnRows over entries, in the order given.
func NewColumnRows(entries ...ColumnMetadataEntry) ColumnRows {
	return &sliceColumnRows{entries: entries, pos: -1}
}

func (r *sliceColumnRows) Next() bool {
	if r.pos+1 >= len(r.entries) {
		r.pos = len(r.entries)
		return false
	}
	r.pos++
	return true
}

func (r *sliceColumnRows) Entry() ColumnMetadataEntry {
	return r.entries[r.pos]
}

func (r *sliceColumnRows) Err() error { return nil }

func (r *sliceColumnRows) Close() error { return nil }

// splitObjectName splits SCHEMA.TABLE as written, honoring quotes.
func splitObjectName(name string) (schema string, object string) {
	t := newTokenizer(name)
	var parts []string
	for tok := t.nextSignificant(); tok.typ != tokenEOF; tok = t.nextSignificant() {
		if tok.isIdentifier() {
			parts = append(parts, tok.text)
		}
	}
	switch len(parts) {
	case 0:
		return "", name
	case 1:
		return "", parts[0]
	}
	return parts[len(parts)-2], parts[len(parts)-1]
}

// normalizeObjectName returns the name as stored in the system tables:
// quoted names lose their quotes, unquoted names are upper cased.
func normalizeObjectName(name string) string {
	name = strings.TrimSpace(name)
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		return strings.ReplaceAll(name[1:len(name)-1], `""`, `"`)
	}
	return cases.Upper(language.Und).String(name)
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `_`, `\_`, `%`, `\%`)

// escapeWildcards turns a literal name into a pattern matching only itself.
func escapeWildcards(name string) string {
	return wildcardEscaper.Replace(name)
}
