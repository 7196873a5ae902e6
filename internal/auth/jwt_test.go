package auth

import (
	"testing"
	"time"

	"eventreg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.JWTConfig {
	return &config.JWTConfig{AccessSecret: "test-secret", AccessExpiry: time.Hour, Issuer: "eventreg"}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateAccessToken(cfg, "ops@example.com", "ADMIN", 0)
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseRejects(t *testing.T) {
	cfg := testConfig()

	elsewhere := *cfg
	elsewhere.Issuer = "someone-else"
	foreign, err := GenerateAccessToken(&elsewhere, "ops@example.com", "ADMIN", time.Hour)
	require.NoError(t, err)
	_, err = ParseAccessToken(cfg, foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := *cfg
	other.AccessSecret = "another-secret"
	forged, err := GenerateAccessToken(&other, "ops@example.com", "ADMIN", time.Hour)
	require.NoError(t, err)
	_, err = ParseAccessToken(cfg, forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseAccessToken(cfg, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
