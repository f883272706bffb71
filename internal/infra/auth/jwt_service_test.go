package auth

import (
	"testing"
	"time"

	"rately/config"
	"rately/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret

	return cfg
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	cfg := testJWTConfig("test_access_secret_key_very_long_for_testing")

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	accountID := uuid.New()

	token, err := jwtService.GenerateAccessToken(accountID, entity.RoleStoreOwner)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := jwtService.ValidateAccessToken(token)
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, accountID.String(), claims["sub"])
	assert.Equal(t, entity.RoleStoreOwner.String(), claims["role"])
}

func TestJWTService_InvalidToken(t *testing.T) {
	cfg := testJWTConfig("test_access_secret_key_very_long_for_testing")

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	// Test invalid token - using clearly non-JWT format
	parsed, err := jwtService.ValidateAccessToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, parsed)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(testJWTConfig("issuer_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	verifier, err := NewJWTService(testJWTConfig("another_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	token, err := issuer.GenerateAccessToken(uuid.New(), entity.RoleNormalUser)
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_EmptySecret(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig(""))
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt access secret must be provided")
}

func TestJWTService_ConfiguredTTL(t *testing.T) {
	cfg := testJWTConfig("test_access_secret_key_very_long_for_testing")
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: time.Hour}

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	token, err := jwtService.GenerateAccessToken(uuid.New(), entity.RoleNormalUser)
	require.NoError(t, err)

	parsed, err := jwtService.ValidateAccessToken(token)
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	iat, err := claims.GetIssuedAt()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, exp.Sub(iat.Time))
}
