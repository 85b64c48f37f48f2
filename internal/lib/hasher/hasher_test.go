package hasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	h := New(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, h.Verify("secret1", hash))
	assert.False(t, h.Verify("secret2", hash))
	assert.False(t, h.Verify("", hash))
}

func TestHash_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h := New(bcrypt.MinCost)

	first, err := h.Hash("secret1")
	require.NoError(t, err)

	second, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("secret1", first))
	assert.True(t, h.Verify("secret1", second))
}

func TestVerify_GarbageHash(t *testing.T) {
	t.Parallel()

	h := New(bcrypt.MinCost)

	assert.False(t, h.Verify("secret1", []byte("not a bcrypt hash")))
}

func TestNew_CostOutOfRange(t *testing.T) {
	t.Parallel()

	h := New(1000)

	assert.Equal(t, DefaultCost, h.cost)
}
