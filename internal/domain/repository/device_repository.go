package repository

import (
	"context"
	"time"

	"nydra/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for device persistence.
var (
	// ErrDeviceNotFound is returned when a device is not found.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrDuplicateDevice is returned when trying to create a device that already exists.
	ErrDuplicateDevice = errors.New("device already exists")
)

// DeviceRepository defines the interface for device-related database operations.
type DeviceRepository interface {
	// Create persists a new device for a user.
	Create(ctx context.Context, device *entity.Device) error

	// Update persists mutable device fields (name, type, platform,
	// capabilities, metadata) for an existing device.
	Update(ctx context.Context, device *entity.Device) error

	// FindByDeviceID retrieves a device by its stable device identifier.
	FindByDeviceID(ctx context.Context, deviceID string) (*entity.Device, error)

	// FindByUserAndDeviceID retrieves a device scoped to its owning user.
	FindByUserAndDeviceID(ctx context.Context, userID uuid.UUID, deviceID string) (*entity.Device, error)

	// FindByUser retrieves all devices for a specific user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Device, error)

	// UpdatePresence sets the stored online flag and last-activity time.
	UpdatePresence(ctx context.Context, deviceID string, isOnline bool, lastActive time.Time) error

	// UpdateLastActive refreshes the last-activity time without touching the
	// online flag. Used by heartbeats.
	UpdateLastActive(ctx context.Context, deviceID string, lastActive time.Time) error

	// UpdatePushToken updates the wake-up push token for a device.
	UpdatePushToken(ctx context.Context, userID uuid.UUID, deviceID string, pushToken string) error
}
