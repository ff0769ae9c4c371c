package fbgenkeys

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func expectEngineVersion(mock sqlmock.Sqlmock, version string) {
	mock.ExpectQuery(sqlEngineVersion).
		WillReturnRows(sqlmock.NewRows([]string{"RDB$GET_CONTEXT"}).AddRow(version))
}

func columnRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"COLUMN_NAME", "ORDINAL_POSITION"}).
		AddRow("ID", 1).
		AddRow("NAME", 2).
		AddRow("TEXT_VALUE", 3)
}

func TestNewDBMetaData(t *testing.T) {
	db, mock := newMock(t)
	expectEngineVersion(mock, "3.0.10")

	md, err := NewDBMetaData(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, SQL_DIALECT_CURRENT, md.ConnectionDialect())
	assert.Equal(t, 3, md.DatabaseMajorVersion())
	assert.Equal(t, 0, md.DatabaseMinorVersion())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewDBMetaDataWithOptions(t *testing.T) {
	db, mock := newMock(t)

	md, err := NewDBMetaData(context.Background(), db, WithSQLDialect(SQL_DIALECT_V5), WithServerVersion(5, 0))
	require.NoError(t, err)
	assert.Equal(t, SQL_DIALECT_V5, md.ConnectionDialect())
	assert.Equal(t, 5, md.DatabaseMajorVersion())
	require.NoError(t, mock.ExpectationsWereMet())

	_, err = NewDBMetaData(context.Background(), db, WithSQLDialect(4), WithServerVersion(5, 0))
	assert.True(t, errors.Is(err, ErrInvalidSQLDialect))
}

func TestNewDBMetaDataVersionErrors(t *testing.T) {
	db, mock := newMock(t)
	failure := errors.New("connection reset")
	mock.ExpectQuery(sqlEngineVersion).WillReturnError(failure)

	_, err := NewDBMetaData(context.Background(), db)
	require.Error(t, err)
	assert.True(t, errors.Is(err, failure))
	assert.Contains(t, err.Error(), "query engine version")

	expectEngineVersion(mock, "unknown")
	_, err = NewDBMetaData(context.Background(), db)
	assert.True(t, errors.Is(err, ErrInvalidVersion))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDBMetaDataColumnsQuery(t *testing.T) {
	fb3 := &DBMetaData{dialect: 3, version: FirebirdVersion{Major: 3}}
	fb6 := &DBMetaData{dialect: 3, version: FirebirdVersion{Major: 6}}

	query, args := fb3.columnsQuery("PUBLIC", `GENERATED\_KEYS\_TBL`, "")
	assert.Equal(t, sqlColumnsSelect+" WHERE RF.RDB$RELATION_NAME = ?"+sqlColumnsOrder, query)
	assert.Equal(t, []interface{}{"GENERATED_KEYS_TBL"}, args)

	query, args = fb6.columnsQuery("PUBLIC", "GEN%", "ID")
	assert.Equal(t, sqlColumnsSelect+
		" WHERE RF.RDB$SCHEMA_NAME = ? AND RF.RDB$RELATION_NAME STARTING WITH ? AND RF.RDB$FIELD_NAME = ?"+
		sqlColumnsOrder, query)
	assert.Equal(t, []interface{}{"PUBLIC", "GEN", "ID"}, args)

	query, args = fb6.columnsQuery("%", "%", "")
	assert.Equal(t, sqlColumnsSelect+sqlColumnsOrder, query)
	assert.Empty(t, args)
}

func TestDBMetaDataColumnsQueryCurrentSchema(t *testing.T) {
	fb5 := &DBMetaData{dialect: 3, version: FirebirdVersion{Major: 5, Minor: 9}}
	fb6 := &DBMetaData{dialect: 3, version: FirebirdVersion{Major: 6}}

	query, args := fb6.columnsQuery("", "TBL", "")
	assert.Equal(t, sqlColumnsSelect+
		" WHERE RF.RDB$SCHEMA_NAME = CURRENT_SCHEMA AND RF.RDB$RELATION_NAME = ?"+
		sqlColumnsOrder, query)
	assert.Equal(t, []interface{}{"TBL"}, args)

	query, args = fb5.columnsQuery("", "TBL", "")
	assert.Equal(t, sqlColumnsSelect+" WHERE RF.RDB$RELATION_NAME = ?"+sqlColumnsOrder, query)
	assert.Equal(t, []interface{}{"TBL"}, args)
}

func TestBuildQueryWithDBMetaDataSchemas(t *testing.T) {
	db, mock := newMock(t)
	expectEngineVersion(mock, "6.0.0")
	mock.ExpectQuery(sqlColumnsSelect+" WHERE RF.RDB$SCHEMA_NAME = CURRENT_SCHEMA AND RF.RDB$RELATION_NAME = ?"+sqlColumnsOrder).
		WithArgs("GENERATED_KEYS_TBL").
		WillReturnRows(columnRows()).
		RowsWillBeClosed()
	mock.ExpectQuery(sqlColumnsSelect+" WHERE RF.RDB$SCHEMA_NAME = ? AND RF.RDB$RELATION_NAME = ?"+sqlColumnsOrder).
		WithArgs("APP", "GENERATED_KEYS_TBL").
		WillReturnRows(columnRows()).
		RowsWillBeClosed()

	md, err := NewDBMetaData(context.Background(), db)
	require.NoError(t, err)
	gk := NewGeneratedKeysSupport(md)
	d := mustDirective(ColumnIndexes(1))

	q, err := gk.BuildQuery(context.Background(), testInsertQuery, d)
	require.NoError(t, err)
	assert.Equal(t, testInsertQuery+"\nRETURNING \"ID\"", q.QueryString)

	sql := "INSERT INTO app.GENERATED_KEYS_TBL(NAME) VALUES (?)"
	q, err = gk.BuildQuery(context.Background(), sql, d)
	require.NoError(t, err)
	assert.Equal(t, sql+"\nRETURNING \"ID\"", q.QueryString)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDBMetaDataColumns(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(sqlColumnsSelect+" WHERE RF.RDB$RELATION_NAME = ?"+sqlColumnsOrder).
		WithArgs("GENERATED_KEYS_TBL").
		WillReturnRows(columnRows()).
		RowsWillBeClosed()

	md, err := NewDBMetaData(context.Background(), db, WithServerVersion(3, 0))
	require.NoError(t, err)
	rows, err := md.Columns(context.Background(), "", "", `GENERATED\_KEYS\_TBL`, "")
	require.NoError(t, err)
	var got []ColumnMetadataEntry
	for rows.Next() {
		got = append(got, rows.Entry())
	}
	require.NoError(t, rows.Err())
	require.NoError(t, rows.Close())
	assert.Equal(t, generatedKeysTblColumns, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDBMetaDataColumnsScanError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(sqlColumnsSelect+" WHERE RF.RDB$RELATION_NAME = ?"+sqlColumnsOrder).
		WithArgs("TBL").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "ORDINAL_POSITION"}).AddRow("ID", "first"))

	md, err := NewDBMetaData(context.Background(), db, WithServerVersion(3, 0))
	require.NoError(t, err)
	rows, err := md.Columns(context.Background(), "", "", "TBL", "")
	require.NoError(t, err)
	assert.False(t, rows.Next())
	assert.Error(t, rows.Err())
	assert.NoError(t, rows.Close())
}

func TestBuildQueryWithDBMetaData(t *testing.T) {
	db, mock := newMock(t)
	expectEngineVersion(mock, "3.0.10")
	mock.ExpectQuery(sqlColumnsSelect+" WHERE RF.RDB$RELATION_NAME = ?"+sqlColumnsOrder).
		WithArgs("GENERATED_KEYS_TBL").
		WillReturnRows(columnRows()).
		RowsWillBeClosed()

	md, err := NewDBMetaData(context.Background(), db)
	require.NoError(t, err)
	gk := NewGeneratedKeysSupport(md)
	q, err := gk.BuildQuery(context.Background(), testInsertQuery, mustDirective(ColumnIndexes(3, 1)))
	require.NoError(t, err)
	assert.Equal(t, testInsertQuery+"\nRETURNING \"TEXT_VALUE\",\"ID\"", q.QueryString)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewGeneratedKeysSupportFromDSN(t *testing.T) {
	db, mock := newMock(t)
	expectEngineVersion(mock, "3.0.10")
	mock.ExpectQuery(sqlColumnsSelect+" WHERE RF.RDB$RELATION_NAME = ?"+sqlColumnsOrder).
		WithArgs("GENERATED_KEYS_TBL").
		WillReturnRows(columnRows()).
		RowsWillBeClosed()

	gk, err := NewGeneratedKeysSupportFromDSN(context.Background(), db,
		"user:password@localhost/test.fdb?sql_dialect=1&generated_keys_enabled=insert")
	require.NoError(t, err)
	assert.Equal(t, DialectContext{SQLDialect: SQL_DIALECT_V5, MajorVersion: 3, MinorVersion: 0}, gk.DialectContext())

	q, err := gk.BuildQuery(context.Background(), testInsertQuery, ReturnGeneratedKeys())
	require.NoError(t, err)
	assert.Equal(t, testInsertQuery+"\nRETURNING ID,NAME,TEXT_VALUE", q.QueryString)

	update := "UPDATE GENERATED_KEYS_TBL SET NAME = ?"
	q, err = gk.BuildQuery(context.Background(), update, ReturnGeneratedKeys())
	require.NoError(t, err)
	assert.Equal(t, Query{QueryString: update}, q)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewGeneratedKeysSupportFromDSNErrors(t *testing.T) {
	db, mock := newMock(t)

	_, err := NewGeneratedKeysSupportFromDSN(context.Background(), db, "localhost/test.fdb")
	assert.Equal(t, ErrDsnUserUnknown, err)

	_, err = NewGeneratedKeysSupportFromDSN(context.Background(), db, "user:password@localhost/test.fdb?sql_dialect=5")
	assert.True(t, errors.Is(err, ErrInvalidSQLDialect))

	_, err = NewGeneratedKeysSupportFromDSN(context.Background(), db, "user:password@localhost/test.fdb?generated_keys_enabled=select")
	assert.True(t, errors.Is(err, ErrInvalidGeneratedKeysConfig))
	require.NoError(t, mock.ExpectationsWereMet())
}
