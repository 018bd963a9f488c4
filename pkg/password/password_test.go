package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	hash, err := Hash("s3cret-pw")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pw", hash)

	assert.True(t, Check("s3cret-pw", hash))
	assert.False(t, Check("wrong", hash))
}

func TestGenerateTemporary(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		pw, err := GenerateTemporary(8)
		require.NoError(t, err)
		assert.Len(t, pw, 8)
		seen[pw] = true
	}
	// All five draws colliding is astronomically unlikely.
	assert.Greater(t, len(seen), 1)
}
