package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, hasher.Verify("secret1", hash))
	assert.False(t, hasher.Verify("secret2", hash))
	assert.False(t, hasher.Verify("", hash))
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := NewPasswordHasher()

	first, err := hasher.Hash("secret1")
	require.NoError(t, err)
	second, err := hasher.Hash("secret1")
	require.NoError(t, err)

	// Same plaintext, fresh salt each time.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("secret1", first))
	assert.True(t, hasher.Verify("secret1", second))
}

func TestPasswordHasher_VerifyMalformedHash(t *testing.T) {
	hasher := NewPasswordHasher()

	for _, hash := range []string{"", "not-a-bcrypt-hash", "$2a$10$tooShort"} {
		assert.False(t, hasher.Verify("secret1", hash))
	}
}

func TestPasswordHasher_TooLongPasswordErrors(t *testing.T) {
	hasher := NewPasswordHasher()

	// bcrypt rejects inputs over 72 bytes; the credential validator keeps
	// registration inside that bound.
	_, err := hasher.Hash(strings.Repeat("x", 73))
	assert.Error(t, err)
}
