package fbgenkeys

import (
	"strings"
)

type patternKind int

const (
	patternAll patternKind = iota
	patternEquals
	patternStartingWith
	patternLike
)

// metadataPattern is a LIKE pattern (escape '\') reduced to the cheapest
// condition on a system table column.
type metadataPattern struct {
	kind  patternKind
	value string
}

func compileMetadataPattern(pattern string) metadataPattern {
	if pattern == "" || pattern == "%" {
		return metadataPattern{kind: patternAll}
	}

	var literal strings.Builder
	wildcards := 0
	trailingPercent := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '\\':
			if i+1 < len(pattern) {
				i++
				literal.WriteByte(pattern[i])
			} else {
				literal.WriteByte(c)
			}
			trailingPercent = false
		case '%', '_':
			wildcards++
			trailingPercent = c == '%' && i == len(pattern)-1
		default:
			literal.WriteByte(c)
			trailingPercent = false
		}
	}

	switch {
	case wildcards == 0:
		return metadataPattern{kind: patternEquals, value: literal.String()}
	case wildcards == 1 && trailingPercent:
		return metadataPattern{kind: patternStartingWith, value: literal.String()}
	}
	return metadataPattern{kind: patternLike, value: pattern}
}

// condition renders the pattern against column; an empty condition
// matches everything.
func (p metadataPattern) condition(column string) (string, []interface{}) {
	switch p.kind {
	case patternEquals:
		return column + " = ?", []interface{}{p.value}
	case patternStartingWith:
		return column + " STARTING WITH ?", []interface{}{p.value}
	case patternLike:
		return "TRIM(TRAILING FROM " + column + ") LIKE ? ESCAPE '\\'", []interface{}{p.value}
	}
	return "", nil
}
