package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSHA256Hasher(t *testing.T) {
	h := SHA256Hasher{}

	hash, err := h.Hash("secret")
	require.NoError(t, err)
	assert.Equal(t, "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b", hash)

	empty, err := h.Hash("")
	require.NoError(t, err)
	assert.Empty(t, empty, "empty password leaves the room open")

	assert.True(t, h.Verify(hash, "secret"))
	assert.False(t, h.Verify(hash, "Secret"))
	assert.False(t, h.Verify(hash, ""))
	assert.True(t, h.Verify("", "anything"), "unprotected room accepts any header")
	assert.True(t, h.Verify("", ""))
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)
	assert.True(t, h.Verify(hash, "secret"))
	assert.False(t, h.Verify(hash, "wrong"))
	assert.True(t, h.Verify("", "whatever"))

	legacy, err := SHA256Hasher{}.Hash("secret")
	require.NoError(t, err)
	assert.True(t, h.Verify(legacy, "secret"), "rooms hashed with sha256 stay reachable")
	assert.False(t, h.Verify(legacy, "nope"))
}

func TestNewPasswordHasher(t *testing.T) {
	h, err := NewPasswordHasher("sha256")
	require.NoError(t, err)
	assert.IsType(t, SHA256Hasher{}, h)

	h, err = NewPasswordHasher("bcrypt")
	require.NoError(t, err)
	assert.IsType(t, BcryptHasher{}, h)

	_, err = NewPasswordHasher("md5")
	assert.Error(t, err)
}
