package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndValidateToken(t *testing.T) {
	token, err := SignToken(map[string]any{"email": "rider@example.com"}, "secret", TokenTTL)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "rider@example.com", claims["email"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, 5*time.Second)
}

func TestSignToken_OverridesCallerExpiry(t *testing.T) {
	farFuture := time.Now().Add(24 * 365 * time.Hour).Unix()
	token, err := SignToken(map[string]any{"exp": farFuture}, "secret", TokenTTL)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.True(t, exp.Time.Before(time.Now().Add(2*time.Hour)))
}

func TestValidateToken_Rejects(t *testing.T) {
	valid, err := SignToken(map[string]any{"email": "a@b.c"}, "secret", TokenTTL)
	require.NoError(t, err)

	expired, err := SignToken(map[string]any{"email": "a@b.c"}, "secret", -time.Minute)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "a@b.c",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "a@b.c"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", valid, "other"},
		{"expired", expired, "secret"},
		{"malformed", "clearly-not-a-jwt", "secret"},
		{"none algorithm", noneAlg, "secret"},
		{"missing expiry", noExpiry, "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestSignToken_RequiresSecret(t *testing.T) {
	_, err := SignToken(map[string]any{}, "", TokenTTL)
	assert.Error(t, err)
}
