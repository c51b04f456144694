package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	h := &Hasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, h.Compare(hash, "password123"))
	assert.False(t, h.Compare(hash, "password124"))
	assert.False(t, h.Compare("", "password123"))
}

func TestNewHasherClampsCost(t *testing.T) {
	assert.Equal(t, 10, NewHasher(0).Cost)
	assert.Equal(t, 10, NewHasher(4).Cost)
	assert.Equal(t, 12, NewHasher(12).Cost)
	assert.Equal(t, bcrypt.MaxCost, NewHasher(99).Cost)
}

func TestTokenDigestIsStable(t *testing.T) {
	// Long tokens must survive bcrypt's 72-byte input limit; the digest keeps
	// the whole token relevant.
	long := strings.Repeat("a", 300) + ".tail"
	longOther := strings.Repeat("a", 300) + ".other"

	assert.Equal(t, TokenDigest(long), TokenDigest(long))
	assert.NotEqual(t, TokenDigest(long), TokenDigest(longOther))
	assert.Len(t, TokenDigest(long), 64)
}

func TestTokenFingerprintRoundTrip(t *testing.T) {
	h := &Hasher{Cost: bcrypt.MinCost}
	token := strings.Repeat("x", 200) // longer than bcrypt's raw limit

	fp, err := h.HashTokenFingerprint(token)
	require.NoError(t, err)

	assert.True(t, h.CompareTokenFingerprint(fp, token))
	assert.False(t, h.CompareTokenFingerprint(fp, token+"tampered"))
}
