package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompareHash(t *testing.T) {
	hash, err := GetHash("secret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", hash)

	assert.NoError(t, CompareHash(hash, "secret-password"))
	assert.Error(t, CompareHash(hash, "wrong-password"))
}

func TestGetHash_ProducesDifferentSalts(t *testing.T) {
	first, err := GetHash("secret-password")
	require.NoError(t, err)
	second, err := GetHash("secret-password")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
