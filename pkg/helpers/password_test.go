package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, CompareHashAndPassword(hash, "hunter2hunter2"))
	assert.False(t, CompareHashAndPassword(hash, "wrong-password"))
}

func TestCompareRejectsNonHash(t *testing.T) {
	assert.False(t, CompareHashAndPassword("plain-text", "plain-text"))
}
