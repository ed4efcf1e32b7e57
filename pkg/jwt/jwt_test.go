package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 1)

	token, err := m.GenerateToken("user-1", "mluukkai")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "mluukkai", claims.Username)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", 1).GenerateToken("user-1", "mluukkai")
	require.NoError(t, err)

	_, err = NewManager("secret-b", 1).ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	// negative expiry signs an already-expired token
	token, err := NewManager("test-secret", -1).GenerateToken("user-1", "mluukkai")
	require.NoError(t, err)

	_, err = NewManager("test-secret", -1).ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenMalformed(t *testing.T) {
	_, err := NewManager("test-secret", 1).ValidateToken("not-a-token")
	assert.Error(t, err)
}
