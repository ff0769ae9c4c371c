package fbgenkeys

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidGeneratedKeysOption     = errors.New("invalid generated keys option")
	ErrEmptyOrNullColumnSpecification = errors.New("empty or null column specification")
	ErrInvalidColumnPosition          = errors.New("invalid column position")
	ErrNoColumnsFound                 = errors.New("no columns found")
	ErrGeneratedKeysNotSupported      = errors.New("generated keys not supported")
)

// GeneratedKeysError is returned by BuildQuery and the Directive constructors.
// errors.Is matches it against the Err* kinds above.
type GeneratedKeysError struct {
	Code     int
	SQLState string
	Message  string
	kind     error
}

func (e *GeneratedKeysError) Error() string {
	return fmt.Sprintf("%s [SQLState:%s, ISC error code:%d]", e.Message, e.SQLState, e.Code)
}

func (e *GeneratedKeysError) Unwrap() error { return e.kind }

func newGeneratedKeysError(kind error, code int, sqlState string, format string, args ...interface{}) error {
	return &GeneratedKeysError{
		Code:     code,
		SQLState: sqlState,
		Message:  fmt.Sprintf(format, args...),
		kind:     kind,
	}
}

func errInvalidGeneratedKeysOption(option int) error {
	return newGeneratedKeysError(ErrInvalidGeneratedKeysOption, GK_ERR_INVALID_OPTION, SQLSTATE_INVALID_OPTION,
		"Invalid autoGeneratedKeys value %d, expected RETURN_GENERATED_KEYS or NO_GENERATED_KEYS", option)
}

func errEmptyOrNullColumnSpecification(parameter string) error {
	return newGeneratedKeysError(ErrEmptyOrNullColumnSpecification, GK_ERR_EMPTY_COLUMN_LIST, SQLSTATE_GENERAL_ERROR,
		"Generated keys array %s was empty or nil; a non-empty array is required", parameter)
}

func errInvalidColumnPosition(position int, tableName string) error {
	return newGeneratedKeysError(ErrInvalidColumnPosition, GK_ERR_INVALID_COLUMN_POSITION, SQLSTATE_NO_SUCH_COLUMN,
		"Generated keys column position %d does not exist for table %s", position, tableName)
}

func errNoColumnsFound(tableName string) error {
	return newGeneratedKeysError(ErrNoColumnsFound, GK_ERR_NO_COLUMNS_FOUND, SQLSTATE_NO_SUCH_TABLE,
		"No columns were found for table %s to build RETURNING clause; the table does not exist", tableName)
}

func errGeneratedKeysNotSupported() error {
	return newGeneratedKeysError(ErrGeneratedKeysNotSupported, GK_ERR_NOT_SUPPORTED, SQLSTATE_FEATURE_NOT_SUPPORT,
		"Generated keys functionality not available: disabled by generated_keys_enabled")
}
