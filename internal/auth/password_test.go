package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasherRoundTrip(t *testing.T) {
	hasher := NewHasher(4)

	digest, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "correct horse battery", digest)

	assert.True(t, hasher.Verify("correct horse battery", digest))
	assert.False(t, hasher.Verify("correct horse batterz", digest))
}

func TestHasherDistinctDigests(t *testing.T) {
	hasher := NewHasher(4)

	first, err := hasher.Hash("password123")
	require.NoError(t, err)
	second, err := hasher.Hash("password123")
	require.NoError(t, err)

	// bcrypt salts per call, so equal inputs produce distinct digests.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("password123", first))
	assert.True(t, hasher.Verify("password123", second))
}

func TestHasherMalformedDigest(t *testing.T) {
	hasher := NewHasher(4)

	assert.False(t, hasher.Verify("password123", ""))
	assert.False(t, hasher.Verify("password123", "not-a-bcrypt-digest"))
}
