package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPasswordHash("s3cret-password", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestGenerateJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tok, err := GenerateJWT(42, "user@example.com")
	require.NoError(t, err)

	parsed, err := jwt.Parse(tok, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["userId"])
	assert.Equal(t, "user@example.com", claims["email"])
	assert.NotZero(t, claims["exp"])
}

func TestGenerateRandomToken(t *testing.T) {
	tok := GenerateRandomToken(6)
	assert.Len(t, tok, 6)

	other := GenerateRandomToken(6)
	assert.Len(t, other, 6)
}

func TestGenerateNumericCode(t *testing.T) {
	code := GenerateNumericCode(6)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}
}
