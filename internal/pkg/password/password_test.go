package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashWithCost("123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "123", hash)
	assert.True(t, Verify("123", hash))
	assert.False(t, Verify("1234", hash))
	assert.False(t, Verify("123", "not-a-hash"))
}

func TestHashWithCostClampsInvalidCost(t *testing.T) {
	hash, err := HashWithCost("secret", 99)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}
