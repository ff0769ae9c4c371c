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
	"database/sql"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	sqlEngineVersion = `SELECT rdb$get_context('SYSTEM', 'ENGINE_VERSION') FROM rdb$database`

	sqlColumnsSelect = `SELECT TRIM(TRAILING FROM RF.RDB$FIELD_NAME) AS COLUMN_NAME, RF.RDB$FIELD_POSITION + 1 AS ORDINAL_POSITION FROM RDB$RELATION_FIELDS RF`
	sqlColumnsOrder  = ` ORDER BY RF.RDB$RELATION_NAME, RF.RDB$FIELD_POSITION`

	// Firebird 6 adds schemas
	schemaMajorVersion = 6

	currentSchemaCondition = "RF.RDB$SCHEMA_NAME = CURRENT_SCHEMA"
)

// Queryer is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DBMetaData implements DatabaseMetaData over a database/sql connection to
// Firebird using the RDB$ system tables.
type DBMetaData struct {
	q       Queryer
	dialect int
	version FirebirdVersion
}

type DBMetaDataOption func(*dbMetaDataOptions)

type dbMetaDataOptions struct {
	dialect int
	version *FirebirdVersion
}

func WithSQLDialect(dialect int) DBMetaDataOption {
	return func(opts *dbMetaDataOptions) {
		opts.dialect = dialect
	}
}

// WithServerVersion skips the ENGINE_VERSION query.
func WithServerVersion(major int, minor int) DBMetaDataOption {
	return func(opts *dbMetaDataOptions) {
		opts.version = &FirebirdVersion{Major: major, Minor: minor}
	}
}

func NewDBMetaData(ctx context.Context, q Queryer, opts ...DBMetaDataOption) (*DBMetaData, error) {
	options := dbMetaDataOptions{dialect: SQL_DIALECT_CURRENT}
	for _, opt := range opts {
		opt(&options)
	}
	if _, err := parseSQLDialect(strconv.Itoa(options.dialect)); err != nil {
		return nil, err
	}

	if options.version == nil {
		var engineVersion string
		if err := q.QueryRowContext(ctx, sqlEngineVersion).Scan(&engineVersion); err != nil {
			return nil, errors.Wrap(err, "query engine version")
		}
		v, err := ParseEngineVersion(engineVersion)
		if err != nil {
			return nil, err
		}
		options.version = &v
	}
	return &DBMetaData{q: q, dialect: options.dialect, version: *options.version}, nil
}

func (md *DBMetaData) ConnectionDialect() int { return md.dialect }

func (md *DBMetaData) DatabaseMajorVersion() int { return md.version.Major }

func (md *DBMetaData) DatabaseMinorVersion() int { return md.version.Minor }

func (md *DBMetaData) hasSchemas() bool {
	return md.version.EqualOrGreater(schemaMajorVersion, 0)
}

// Columns lists columns ordered by table and position. catalog is ignored
// and schemaPattern is used from Firebird 6 only, where an empty
// schemaPattern means CURRENT_SCHEMA and "%" means every schema.
func (md *DBMetaData) Columns(ctx context.Context, catalog, schemaPattern, tableNamePattern, columnNamePattern string) (ColumnRows, error) {
	query, args := md.columnsQuery(schemaPattern, tableNamePattern, columnNamePattern)
	rows, err := md.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &dbColumnRows{rows: rows}, nil
}

func (md *DBMetaData) columnsQuery(schemaPattern, tableNamePattern, columnNamePattern string) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	add := func(column string, pattern string) {
		cond, a := compileMetadataPattern(pattern).condition(column)
		if cond != "" {
			conditions = append(conditions, cond)
			args = append(args, a...)
		}
	}
	if md.hasSchemas() {
		if schemaPattern == "" {
			conditions = append(conditions, currentSchemaCondition)
		} else {
			add("RF.RDB$SCHEMA_NAME", schemaPattern)
		}
	}
	add("RF.RDB$RELATION_NAME", tableNamePattern)
	add("RF.RDB$FIELD_NAME", columnNamePattern)

	query := sqlColumnsSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	return query + sqlColumnsOrder, args
}

type dbColumnRows struct {
	rows  *sql.Rows
	entry ColumnMetadataEntry
	err   error
}

func (r *dbColumnRows) Next() bool {
	if r.err != nil || !r.rows.Next() {
		return false
	}
	var e ColumnMetadataEntry
	if err := r.rows.Scan(&e.Name, &e.OrdinalPosition); err != nil {
		r.err = err
		return false
	}
	r.entry = e
	return true
}

func (r *dbColumnRows) Entry() ColumnMetadataEntry { return r.entry }

func (r *dbColumnRows) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.rows.Err()
}

func (r *dbColumnRows) Close() error { return r.rows.Close() }

// NewGeneratedKeysSupportFromDSN configures generated keys support from the
// sql_dialect and generated_keys_enabled options of a firebirdsql DSN.
func NewGeneratedKeysSupportFromDSN(ctx context.Context, q Queryer, dsns string, opts ...Option) (*GeneratedKeysSupport, error) {
	dsn, err := parseDSN(dsns)
	if err != nil {
		return nil, err
	}
	dialect, err := dsn.sqlDialect()
	if err != nil {
		return nil, err
	}
	config, err := dsn.generatedKeysConfig()
	if err != nil {
		return nil, err
	}
	md, err := NewDBMetaData(ctx, q, WithSQLDialect(dialect))
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithGeneratedKeysConfig(config)}, opts...)
	gk := NewGeneratedKeysSupport(md, opts...)
	gk.logger.Debug("generated keys support configured", "addr", dsn.addr, "database", dsn.dbName, "user", dsn.user)
	return gk, nil
}
