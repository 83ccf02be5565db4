package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/finmate-app/finmate/internal/common"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	secret := []byte("test_secret")

	token, err := GenerateToken("user-1", secret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := GetUserIDFromToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)
}

func TestGetUserIDFromToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", []byte("right"), time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, []byte("wrong"))
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	secret := []byte("test_secret")

	token, err := GenerateToken("user-1", secret, -time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, secret)
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestGetUserIDFromToken_Garbage(t *testing.T) {
	_, err := GetUserIDFromToken("not.a.token", []byte("secret"))
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}
