package auth

import (
	"testing"
	"time"

	"nydra/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Device = "test_device_secret_key_very_long_for_testing"
	return cfg
}

// signUserToken mimics the identity provider that issues user access tokens.
func signUserToken(t *testing.T, secret string, sub string, ttl time.Duration) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func TestJWTService_VerifyUserToken(t *testing.T) {
	cfg := testConfig()

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	userID := uuid.New()
	tokenString := signUserToken(t, cfg.SecretKey.Access, userID.String(), time.Minute)

	parsed, err := jwtService.VerifyUserToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWTService_VerifyUserToken_Expired(t *testing.T) {
	cfg := testConfig()

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)

	tokenString := signUserToken(t, cfg.SecretKey.Access, uuid.NewString(), -time.Minute)

	parsed, err := jwtService.VerifyUserToken(tokenString)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, parsed)
}

func TestJWTService_VerifyUserToken_BadSubject(t *testing.T) {
	cfg := testConfig()

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)

	tokenString := signUserToken(t, cfg.SecretKey.Access, "not-a-uuid", time.Minute)

	parsed, err := jwtService.VerifyUserToken(tokenString)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, parsed)
}

func TestJWTService_GenerateAndVerifyDeviceToken(t *testing.T) {
	cfg := testConfig()

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)

	userID := uuid.New()
	deviceID := "laptop-7f9c"

	tokenString, err := jwtService.GenerateDeviceToken(userID, deviceID)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := jwtService.VerifyDeviceToken(tokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, deviceID, claims.DeviceID)
}

func TestJWTService_UserTokenRejectedAsDeviceToken(t *testing.T) {
	cfg := testConfig()

	// A user access token must never authenticate as a device, even when
	// the secrets happen to be the same.
	cfg.SecretKey.Device = cfg.SecretKey.Access

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)

	tokenString := signUserToken(t, cfg.SecretKey.Access, uuid.NewString(), time.Minute)

	claims, err := jwtService.VerifyDeviceToken(tokenString)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_InvalidToken(t *testing.T) {
	cfg := testConfig()

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)

	invalidToken := "clearly-not-a-jwt-token-format"

	_, err = jwtService.VerifyUserToken(invalidToken)
	assert.Error(t, err)

	claims, err := jwtService.VerifyDeviceToken(invalidToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecrets(t *testing.T) {
	cfg := &config.Config{}

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}
