// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Device types accepted at registration.
const (
	DeviceTypeMobile  = "mobile"
	DeviceTypeDesktop = "desktop"
	DeviceTypeTablet  = "tablet"
	DeviceTypeOther   = "other"
)

// Device represents a user-owned endpoint that can send and receive commands.
type Device struct {
	ID           uuid.UUID `json:"id"`            // The Global Unique Identifier (GUID) for the device row.
	UserID       uuid.UUID `json:"user_id"`       // The ID of the user who owns this device.
	DeviceID     string    `json:"device_id"`     // Stable, caller-chosen device identifier; credential subject.
	Name         string    `json:"name"`          // Display name chosen by the user.
	DeviceType   string    `json:"device_type"`   // mobile, desktop, tablet or other.
	Platform     string    `json:"platform"`      // OS/platform string reported by the client.
	Capabilities []string  `json:"capabilities"`  // Command types this device can execute.
	PushToken    string    `json:"push_token"`    // Optional FCM token for wake-up pushes.
	IsOnline     bool      `json:"is_online"`     // Stored presence flag; authoritative only while a connection lives.
	LastActive   time.Time `json:"last_active"`   // Timestamp of the last connection activity or heartbeat.
	Metadata     Attrs     `json:"metadata"`      // Free-form client metadata.
	CreatedAt    time.Time `json:"created_at"`    // Timestamp of when this device was registered.
	UpdatedAt    time.Time `json:"updated_at"`    // Timestamp of the last modification.
}

// ValidDeviceType reports whether t is one of the accepted device types.
func ValidDeviceType(t string) bool {
	switch t {
	case DeviceTypeMobile, DeviceTypeDesktop, DeviceTypeTablet, DeviceTypeOther:
		return true
	default:
		return false
	}
}
