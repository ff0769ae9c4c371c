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

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

type firebirdDsn struct {
	addr    string
	dbName  string
	user    string
	options map[string]string
}

var (
	ErrDsnUserUnknown    = errors.New("User unknown")
	ErrInvalidSQLDialect = errors.New("invalid sql_dialect")
)

func newFirebirdDsn() *firebirdDsn {
	return &firebirdDsn{options: make(map[string]string)}
}

// parseDSN reads the options used here from a firebirdsql DSN. The
// password is not kept.
func parseDSN(dsns string) (*firebirdDsn, error) {

	dsn := newFirebirdDsn()

	if !strings.HasPrefix(dsns, "firebird://") {
		dsns = "firebird://" + dsns
	}
	u, err := url.Parse(dsns)
	if err != nil {
		return nil, err
	}
	if u.User == nil {
		return nil, ErrDsnUserUnknown
	}
	dsn.user = u.User.Username()
	dsn.addr = u.Host
	if !strings.ContainsRune(dsn.addr, ':') {
		dsn.addr += ":3050"
	}
	dsn.dbName = u.Path
	if len(dsn.dbName) > 1 && !strings.ContainsRune(dsn.dbName[1:], '/') {
		dsn.dbName = dsn.dbName[1:]
	}

	//Windows Path
	if len(dsn.dbName) > 2 && strings.ContainsRune(dsn.dbName[2:], ':') {
		dsn.dbName = dsn.dbName[1:]
	}

	m, _ := url.ParseQuery(u.RawQuery)

	var default_options = map[string]string{
		"sql_dialect":            strconv.Itoa(SQL_DIALECT_CURRENT),
		"generated_keys_enabled": "default",
	}

	for k, v := range default_options {
		values, ok := m[k]
		if ok {
			dsn.options[k] = values[0]
		} else {
			dsn.options[k] = v
		}
	}

	return dsn, nil
}

func (dsn *firebirdDsn) sqlDialect() (int, error) {
	return parseSQLDialect(dsn.options["sql_dialect"])
}

func (dsn *firebirdDsn) generatedKeysConfig() (GeneratedKeysConfig, error) {
	return ParseGeneratedKeysConfig(dsn.options["generated_keys_enabled"])
}

func parseSQLDialect(s string) (int, error) {
	dialect, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !slices.Contains([]int{SQL_DIALECT_V5, SQL_DIALECT_V6_TRANSITION, SQL_DIALECT_V6}, dialect) {
		return 0, errors.Wrapf(ErrInvalidSQLDialect, "%q", s)
	}
	return dialect, nil
}
