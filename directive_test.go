package fbgenkeys

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoGeneratedKeys(t *testing.T) {
	d, err := AutoGeneratedKeys(RETURN_GENERATED_KEYS)
	require.NoError(t, err)
	assert.Equal(t, ReturnGeneratedKeys(), d)
	assert.True(t, d.requestsKeys())

	d, err = AutoGeneratedKeys(NO_GENERATED_KEYS)
	require.NoError(t, err)
	assert.Equal(t, NoGeneratedKeys(), d)
	assert.False(t, d.requestsKeys())

	for _, option := range []int{0, 3, -1} {
		d, err = AutoGeneratedKeys(option)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidGeneratedKeysOption))
		assert.Equal(t, err, d.validate())
	}
}

func TestColumnIndexes(t *testing.T) {
	_, err := ColumnIndexes()
	assert.True(t, errors.Is(err, ErrEmptyOrNullColumnSpecification))
	assert.Contains(t, err.Error(), "columnIndexes")

	_, err = ColumnIndexes([]int(nil)...)
	assert.True(t, errors.Is(err, ErrEmptyOrNullColumnSpecification))

	indexes := []int{2, 1}
	d, err := ColumnIndexes(indexes...)
	require.NoError(t, err)
	indexes[0] = 3
	assert.Equal(t, []int{2, 1}, d.indexes)
	assert.NoError(t, d.validate())
	assert.Equal(t, "columnIndexes[2,1]", d.String())
}

func TestColumnNames(t *testing.T) {
	_, err := ColumnNames()
	assert.True(t, errors.Is(err, ErrEmptyOrNullColumnSpecification))
	assert.Contains(t, err.Error(), "columnNames")

	d, err := ColumnNames("NAME", "ID")
	require.NoError(t, err)
	assert.True(t, d.requestsKeys())
	assert.NoError(t, d.validate())
	assert.Equal(t, "columnNames[NAME,ID]", d.String())
}

func TestDirectiveString(t *testing.T) {
	assert.Equal(t, "NO_GENERATED_KEYS", NoGeneratedKeys().String())
	assert.Equal(t, "RETURN_GENERATED_KEYS", ReturnGeneratedKeys().String())
	assert.Equal(t, "invalid(0)", Directive{}.String())
}
