package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", hashed)
	assert.True(t, CheckPassword(hashed, "correct horse"))
	assert.False(t, CheckPassword(hashed, "wrong horse"))
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("same")
	require.NoError(t, err)
	second, err := HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCheckPasswordRejectsGarbageHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-hash", "anything"))
}

func TestIdentityContext(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		_, ok := FromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("signed in", func(t *testing.T) {
		ctx := WithIdentity(context.Background(), Identity{UserID: 7, Name: "Ada", Admin: true})
		id, ok := FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, uint(7), id.UserID)
		assert.True(t, id.Admin)
	})

	t.Run("zero id is anonymous", func(t *testing.T) {
		ctx := WithIdentity(context.Background(), Identity{})
		_, ok := FromContext(ctx)
		assert.False(t, ok)
	})
}
