package fbgenkeys

import (
	"context"
	"sort"
)

type columnResolver struct {
	md DatabaseMetaData
}

// columns reads every column of tableName. The cursor is closed on return.
func (r columnResolver) columns(ctx context.Context, tableName string) (entries []ColumnMetadataEntry, err error) {
	schema, table := splitObjectName(tableName)
	schemaPattern := ""
	if schema != "" {
		schemaPattern = escapeWildcards(normalizeObjectName(schema))
	}
	rows, err := r.md.Columns(ctx, "", schemaPattern, escapeWildcards(normalizeObjectName(table)), "")
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); err == nil {
			err = cerr
		}
	}()

	for rows.Next() {
		entries = append(entries, rows.Entry())
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// resolveAll returns all column names in ordinal order.
func (r columnResolver) resolveAll(ctx context.Context, tableName string) ([]string, error) {
	entries, err := r.columns(ctx, tableName)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errNoColumnsFound(tableName)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OrdinalPosition < entries[j].OrdinalPosition
	})
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names, nil
}

// resolveByIndex returns the names at the given ordinals in the order they
// were requested. All columns are collected before any ordinal is checked.
func (r columnResolver) resolveByIndex(ctx context.Context, tableName string, ordinals []int) ([]string, error) {
	entries, err := r.columns(ctx, tableName)
	if err != nil {
		return nil, err
	}
	byPosition := make(map[int]string, len(entries))
	for _, e := range entries {
		byPosition[e.OrdinalPosition] = e.Name
	}
	names := make([]string, len(ordinals))
	for i, n := range ordinals {
		name, ok := byPosition[n]
		if !ok {
			return nil, errInvalidColumnPosition(n, tableName)
		}
		names[i] = name
	}
	return names, nil
}

func (r columnResolver) resolveByName(names []string) []string {
	return names
}
