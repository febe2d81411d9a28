package location_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycast/skycast/internal/location"
)

func TestValidateQuery_AcceptsAndTrims(t *testing.T) {
	got, err := location.ValidateQuery("  New York  ")
	require.NoError(t, err)
	assert.Equal(t, "New York", got)
}

func TestValidateQuery_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"single character", "a"},
		{"single multi-byte character", "é"},
		{"too long", strings.Repeat("x", 101)},
		{"too long multi-byte", strings.Repeat("東", 101)},
		{"less than", "city<name"},
		{"greater than", "city>name"},
		{"double quote", `city"name`},
		{"single quote", "city'name"},
		{"ampersand", "city&name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := location.ValidateQuery(tt.query)
			require.Error(t, err)
			assert.ErrorIs(t, err, location.ErrInvalidQuery)
		})
	}
}

func TestValidateQuery_BoundaryLengths(t *testing.T) {
	got, err := location.ValidateQuery("ab")
	require.NoError(t, err)
	assert.Equal(t, "ab", got)

	longest := strings.Repeat("x", 100)
	got, err = location.ValidateQuery(longest)
	require.NoError(t, err)
	assert.Equal(t, longest, got)
}

// Length bounds count characters, not bytes: a two-rune query passes the
// minimum and a 100-rune query passes the maximum even when its UTF-8
// encoding is far longer.
func TestValidateQuery_CountsCharactersNotBytes(t *testing.T) {
	got, err := location.ValidateQuery("東京")
	require.NoError(t, err)
	assert.Equal(t, "東京", got)

	accented := strings.Repeat("é", 100) // 200 bytes
	got, err = location.ValidateQuery(accented)
	require.NoError(t, err)
	assert.Equal(t, accented, got)
}
