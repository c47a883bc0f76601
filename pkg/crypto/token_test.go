package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken_Length(t *testing.T) {
	for _, n := range []int{1, 24, 64, 128} {
		tok, err := GenerateToken(n)
		require.NoError(t, err)
		assert.Len(t, tok, n)
	}
}

func TestGenerateToken_ExcludedCharacters(t *testing.T) {
	// The characters unsafe in the generated manifest must never appear.
	for i := 0; i < 50; i++ {
		tok, err := GenerateToken(PasswordLength)
		require.NoError(t, err)
		assert.NotContains(t, tok, "=")
		assert.NotContains(t, tok, "+")
		assert.NotContains(t, tok, "/")
		for _, ch := range tok {
			assert.True(t, strings.ContainsRune(TokenAlphabet, ch),
				"unexpected character %q", ch)
		}
	}
}

func TestGenerateToken_InvalidLength(t *testing.T) {
	_, err := GenerateToken(0)
	assert.Error(t, err)
	_, err = GenerateToken(-5)
	assert.Error(t, err)
}

func TestGeneratePassword(t *testing.T) {
	pw, err := GeneratePassword()
	require.NoError(t, err)
	assert.Len(t, pw, 24)
}

func TestGenerateSecretKey(t *testing.T) {
	key, err := GenerateSecretKey()
	require.NoError(t, err)
	assert.Len(t, key, 64)
}

func TestGenerateToken_NotConstant(t *testing.T) {
	a, err := GenerateToken(24)
	require.NoError(t, err)
	b, err := GenerateToken(24)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
