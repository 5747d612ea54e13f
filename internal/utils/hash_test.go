package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_ComparePassword(t *testing.T) {
	hash, err := HashPassword("s3cret!", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.NoError(t, ComparePassword(hash, "s3cret!"))
	assert.ErrorIs(t, ComparePassword(hash, "wrong"), ErrPasswordMismatch)
}

func TestHashPassword_IsSalted(t *testing.T) {
	h1, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestComparePassword_MalformedHash(t *testing.T) {
	err := ComparePassword("not-a-bcrypt-hash", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}

func TestHashString_Deterministic(t *testing.T) {
	a := HashString("data", "key")
	b := HashString("data", "key")
	c := HashString("data", "other-key")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestVerifyHashString(t *testing.T) {
	sig := HashString("users/1/a.txt|100", "key")

	assert.True(t, VerifyHashString("users/1/a.txt|100", sig, "key"))
	assert.False(t, VerifyHashString("users/2/a.txt|100", sig, "key"))
	assert.False(t, VerifyHashString("users/1/a.txt|100", sig, "other"))
	assert.False(t, VerifyHashString("users/1/a.txt|100", "zz-not-hex", "key"))
}
