package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	passwords := []string{"pw1", "correct horse battery staple", "пароль", " ", strings.Repeat("x", MaxPasswordBytes)}

	for _, pw := range passwords {
		h1, err := HashPassword(pw)
		require.NoError(t, err)
		h2, err := HashPassword(pw)
		require.NoError(t, err)

		assert.NotEqual(t, h1, h2, "hashes must be salted")
		assert.NotContains(t, h1, pw)
		assert.True(t, CheckPassword(pw, h1))
		assert.True(t, CheckPassword(pw, h2))
		assert.False(t, CheckPassword(pw+"!", h1))
	}
}

func TestCheckPasswordRejectsSuffixBeyondLimit(t *testing.T) {
	pw := strings.Repeat("x", MaxPasswordBytes)
	hash, err := HashPassword(pw)
	require.NoError(t, err)

	assert.True(t, CheckPassword(pw, hash))
	assert.False(t, CheckPassword(pw+"!", hash))
	assert.False(t, CheckPassword(pw+"anything-else", hash))
}

func TestHashPasswordTooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("pw", ""))
	assert.False(t, CheckPassword("pw", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("pw", "$2a$10$short"))
}
