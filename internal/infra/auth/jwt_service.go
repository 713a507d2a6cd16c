// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"nydra/config"
	"nydra/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret string        // Secret key used to verify user access tokens.
	deviceSecret string        // Secret key for signing device tokens.
	deviceTTL    time.Duration // Time-to-live for device tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Device == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	return &jwtService{
		accessSecret: cfg.SecretKey.Access,
		deviceSecret: cfg.SecretKey.Device,
		deviceTTL:    time.Hour * 24 * 30, // devices re-register on install, not on a session cadence
	}, nil
}

// VerifyUserToken checks a user access token and extracts the user identity from it.
func (s *jwtService) VerifyUserToken(tokenString string) (uuid.UUID, error) {
	claims, err := s.parseToken(tokenString, s.accessSecret)
	if err != nil {
		return uuid.Nil, err
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, errors.New("token is missing a subject claim")
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errors.New("token subject is not a valid user id")
	}

	return userID, nil
}

// GenerateDeviceToken creates a signed credential binding a device to its owner.
func (s *jwtService) GenerateDeviceToken(userID uuid.UUID, deviceID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  deviceID,                             // Subject (which device the token is for)
		"uid":  userID.String(),                      // Owning user
		"iat":  time.Now().Unix(),                    // Issued At
		"exp":  time.Now().Add(s.deviceTTL).Unix(),   // Expiration Time
		"type": "device",                             // Distinguishes device credentials from user tokens
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.deviceSecret))
}

// VerifyDeviceToken checks a device credential and extracts its identity claims.
func (s *jwtService) VerifyDeviceToken(tokenString string) (*service.DeviceClaims, error) {
	claims, err := s.parseToken(tokenString, s.deviceSecret)
	if err != nil {
		return nil, err
	}

	if tokenType, _ := claims["type"].(string); tokenType != "device" {
		return nil, errors.New("token is not a device credential")
	}

	deviceID, err := claims.GetSubject()
	if err != nil || deviceID == "" {
		return nil, errors.New("token is missing a subject claim")
	}

	uid, _ := claims["uid"].(string)
	userID, err := uuid.Parse(uid)
	if err != nil {
		return nil, errors.New("token uid claim is not a valid user id")
	}

	return &service.DeviceClaims{
		UserID:   userID,
		DeviceID: deviceID,
	}, nil
}

// parseToken is a private helper that validates a token string against a secret
// and returns its claims.
func (s *jwtService) parseToken(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
