package reservation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingCode(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := NewBookingCode()
		require.NoError(t, err)
		assert.Len(t, code, 8)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(alphabet, c), "unexpected character %q in %s", c, code)
		}
		seen[code] = true
	}
	// Collisions in 100 draws over 36^8 values would indicate a broken source.
	assert.Greater(t, len(seen), 95)
}
