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

// Package fbgenkeys rewrites Firebird INSERT, UPDATE and UPDATE OR INSERT
// statements so that generated keys come back through a RETURNING clause.
package fbgenkeys

import (
	"context"
	"log/slog"
)

// Query is the statement to prepare. GeneratesKeys is true when the
// statement has a RETURNING clause, either written by the caller or added.
type Query struct {
	QueryString   string
	GeneratesKeys bool
}

// DialectContext describes the connection a query is built for.
type DialectContext struct {
	SQLDialect   int
	MajorVersion int
	MinorVersion int
}

type keysStrategy int

const (
	metadataDrivenStrategy keysStrategy = iota
	returnAllColumnsStrategy
)

func (s keysStrategy) String() string {
	if s == returnAllColumnsStrategy {
		return "return-all-columns"
	}
	return "metadata-driven"
}

func selectStrategy(v FirebirdVersion) keysStrategy {
	if v.EqualOrGreater(RETURN_ALL_MAJOR_VERSION, 0) {
		return returnAllColumnsStrategy
	}
	return metadataDrivenStrategy
}

type GeneratedKeysSupport struct {
	md       DatabaseMetaData
	resolver columnResolver
	version  FirebirdVersion
	strategy keysStrategy
	config   GeneratedKeysConfig
	logger   *slog.Logger
}

// NewGeneratedKeysSupport reads the server version from md once; the
// dialect is asked for only when a column list has to be quoted.
func NewGeneratedKeysSupport(md DatabaseMetaData, opts ...Option) *GeneratedKeysSupport {
	options := NewOptions(opts...)
	gk := &GeneratedKeysSupport{
		md:       md,
		resolver: columnResolver{md: md},
		version: FirebirdVersion{
			Major: md.DatabaseMajorVersion(),
			Minor: md.DatabaseMinorVersion(),
		},
		config: options.GeneratedKeys,
		logger: options.Logger,
	}
	gk.strategy = selectStrategy(gk.version)
	gk.logger.Debug("generated keys support",
		"version", gk.version.String(),
		"strategy", gk.strategy.String(),
		"generated_keys_enabled", gk.config.String())
	return gk
}

// BuildQuery returns sql, with a RETURNING clause added when d asks for
// generated keys and the statement can produce them.
func (gk *GeneratedKeysSupport) BuildQuery(ctx context.Context, sql string, d Directive) (Query, error) {
	if err := d.validate(); err != nil {
		return Query{}, err
	}
	switch gk.config.mode {
	case generatedKeysIgnored:
		return Query{QueryString: sql}, nil
	case generatedKeysDisabled:
		if d.requestsKeys() {
			return Query{}, errGeneratedKeysNotSupported()
		}
	}

	pq := AnalyzeQuery(sql)
	if pq.HasReturning {
		gk.logger.Debug("query has RETURNING, left unchanged", "kind", pq.Kind.String())
		return Query{QueryString: sql, GeneratesKeys: true}, nil
	}
	if d.kind == directiveNone || !pq.supportsKeys() || !gk.config.enabled(pq.Kind) {
		return Query{QueryString: sql}, nil
	}

	var clause string
	switch d.kind {
	case directiveAll:
		if gk.strategy == returnAllColumnsStrategy {
			clause = buildReturningAll()
			break
		}
		columns, err := gk.resolver.resolveAll(ctx, pq.TableName)
		if err != nil {
			return Query{}, err
		}
		clause = buildReturningColumns(columns, gk.md.ConnectionDialect())
	case directiveByIndex:
		columns, err := gk.resolver.resolveByIndex(ctx, pq.TableName, d.indexes)
		if err != nil {
			return Query{}, err
		}
		clause = buildReturningColumns(columns, gk.md.ConnectionDialect())
	case directiveByName:
		clause = buildReturningNames(gk.resolver.resolveByName(d.names))
	}

	gk.logger.Debug("RETURNING clause added",
		"kind", pq.Kind.String(),
		"table", pq.TableName,
		"directive", d.String())
	return Query{QueryString: pq.withClause(clause), GeneratesKeys: true}, nil
}

// DialectContext reports the version read at construction and the current
// connection dialect.
func (gk *GeneratedKeysSupport) DialectContext() DialectContext {
	return DialectContext{
		SQLDialect:   gk.md.ConnectionDialect(),
		MajorVersion: gk.version.Major,
		MinorVersion: gk.version.Minor,
	}
}
