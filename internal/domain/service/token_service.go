package service

import (
	"github.com/google/uuid"
)

// DeviceClaims are the identity claims carried by a device credential.
type DeviceClaims struct {
	UserID   uuid.UUID
	DeviceID string
}

// TokenService is the auth collaborator the dispatcher and delivery layers
// consume. User tokens are issued elsewhere and only verified here; device
// tokens are issued when a device registers.
type TokenService interface {
	// VerifyUserToken resolves a user bearer token to the user identity.
	VerifyUserToken(tokenString string) (uuid.UUID, error)

	// GenerateDeviceToken issues a credential binding a device to its owner.
	GenerateDeviceToken(userID uuid.UUID, deviceID string) (string, error)

	// VerifyDeviceToken resolves a device credential to its identity claims.
	VerifyDeviceToken(tokenString string) (*DeviceClaims, error)
}
