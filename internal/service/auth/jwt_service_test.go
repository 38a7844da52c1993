package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityinfohq/cityinfo-api/internal/config"
)

const testSecret = "test-secret-that-is-32-chars-long!!"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
		CityClaimKey:         "city",
	}
}

func newTestJWTService(t *testing.T) *hmacJWTService {
	t.Helper()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	cfg.JWTSecret = "short"
	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestJWTService(t)
	token, err := svc.GenerateToken(ctx, "user-1", map[string]string{"city": "Seattle"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.False(t, claims.ExpiresAt.IsZero())

	city, ok := claims.Claim("city")
	require.True(t, ok)
	assert.Equal(t, "Seattle", city)

	_, ok = claims.Claim("missing")
	assert.False(t, ok)
}

func TestRegisteredClaimsExcludedFromCustom(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestJWTService(t)
	token, err := svc.GenerateToken(ctx, "user-1", map[string]string{"city": "Berlin"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)

	for _, key := range []string{"sub", "iat", "exp", "jti"} {
		_, ok := claims.Claim(key)
		assert.False(t, ok, "registered claim %q must not appear in Custom", key)
	}
}

func TestGenerateTokenRejectsReservedCustomClaim(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	_, err := svc.GenerateToken(context.Background(), "user-1", map[string]string{"sub": "spoof"})
	assert.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestJWTService(t)
	token, err := svc.GenerateToken(ctx, "user-1", nil)
	require.NoError(t, err)

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "another-secret-that-is-32-chars-long"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	_, err = other.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestJWTService(t)
	token, err := svc.GenerateToken(ctx, "user-1", nil)
	require.NoError(t, err)

	// Jump past the lifetime plus the allowed clock skew.
	svc.timeFunc = func() time.Time {
		return time.Now().Add(svc.tokenLifetime + svc.clockSkew + time.Minute)
	}

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenMalformed(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	_, err := svc.ValidateToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
