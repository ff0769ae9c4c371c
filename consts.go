/*******************************************************************************
The MIT License (MIT)

Copyright (c) 2013-2025 Hajime Nakagami

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

const (
	// autoGeneratedKeys values
	RETURN_GENERATED_KEYS = 1
	NO_GENERATED_KEYS     = 2

	// SQL dialects
	SQL_DIALECT_V5            = 1
	SQL_DIALECT_V6_TRANSITION = 2
	SQL_DIALECT_V6            = 3
	SQL_DIALECT_CURRENT       = SQL_DIALECT_V6

	// First major version accepting RETURNING *
	RETURN_ALL_MAJOR_VERSION = 4

	// Error codes
	GK_ERR_INVALID_OPTION          = 337248280
	GK_ERR_EMPTY_COLUMN_LIST       = 337248281
	GK_ERR_INVALID_COLUMN_POSITION = 337248282
	GK_ERR_NO_COLUMNS_FOUND        = 337248283
	GK_ERR_NOT_SUPPORTED           = 337248284

	// SQLSTATE values
	SQLSTATE_GENERAL_ERROR       = "HY000"
	SQLSTATE_INVALID_OPTION      = "HY092"
	SQLSTATE_NO_SUCH_COLUMN      = "42S22"
	SQLSTATE_NO_SUCH_TABLE       = "42S02"
	SQLSTATE_FEATURE_NOT_SUPPORT = "0A000"

	returningKeyword = "RETURNING"
	returningAll     = "\nRETURNING *"
	returningPrefix  = "\nRETURNING "
)

// Statement kinds recognized by AnalyzeQuery
type StatementKind int

const (
	StatementOther StatementKind = iota
	StatementInsert
	StatementUpdate
	StatementUpdateOrInsert
)

func (k StatementKind) String() string {
	switch k {
	case StatementInsert:
		return "INSERT"
	case StatementUpdate:
		return "UPDATE"
	case StatementUpdateOrInsert:
		return "UPDATE OR INSERT"
	default:
		return "OTHER"
	}
}
