package fbgenkeys

import (
	"strings"
)

// quoteIdentifier quotes name for dialect 3; dialect 1 has no quoted
// identifiers so the name is used verbatim.
func quoteIdentifier(name string, dialect int) string {
	if dialect == SQL_DIALECT_V5 {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// buildReturningAll renders RETURNING *, accepted from Firebird 4.0.
func buildReturningAll() string {
	return returningAll
}

// buildReturningColumns renders the clause with every column quoted per
// dialect, in the order given.
func buildReturningColumns(columns []string, dialect int) string {
	var sb strings.Builder
	sb.WriteString(returningPrefix)
	for i, c := range columns {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(quoteIdentifier(c, dialect))
	}
	return sb.String()
}

// buildReturningNames renders caller supplied names without quoting.
func buildReturningNames(names []string) string {
	return returningPrefix + strings.Join(names, ",")
}
