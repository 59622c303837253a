package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw123456")
	require.NoError(t, err)
	require.NotEqual(t, "pw123456", hash)
	require.True(t, strings.HasPrefix(hash, "$2a$10$"), "hash carries cost factor 10")

	require.True(t, CheckPassword(hash, "pw123456"))
	require.False(t, CheckPassword(hash, "wrong-password"))
	require.False(t, CheckPassword("not-a-hash", "pw123456"))
}
