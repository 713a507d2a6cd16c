package usecase

import (
	"context"

	"nydra/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterDeviceInput represents the input for registering a device
type RegisterDeviceInput struct {
	DeviceID     string       `json:"device_id" validate:"required"`
	Name         string       `json:"name" validate:"required"`
	DeviceType   string       `json:"device_type" validate:"required"`
	Platform     string       `json:"platform"`
	Capabilities []string     `json:"capabilities"`
	PushToken    string       `json:"push_token"`
	Metadata     entity.Attrs `json:"metadata"`
}

// RegisteredDevice is the registration result: the device record plus the
// credential it authenticates with from now on
type RegisteredDevice struct {
	Device      *entity.Device `json:"device"`
	DeviceToken string         `json:"device_token"`
}

// DeviceUsecase defines the interface for device registry use cases
type DeviceUsecase interface {
	// Register creates or updates a device for a user and issues its credential.
	Register(ctx context.Context, userID uuid.UUID, input *RegisterDeviceInput) (*RegisteredDevice, error)

	// List retrieves all devices belonging to a user.
	List(ctx context.Context, userID uuid.UUID) ([]*entity.Device, error)

	// Get retrieves one device scoped to its owning user.
	Get(ctx context.Context, userID uuid.UUID, deviceID string) (*entity.Device, error)

	// UpdateStatus sets the stored presence flag explicitly. Live
	// connections normally drive presence; this is the REST fallback.
	UpdateStatus(ctx context.Context, userID uuid.UUID, deviceID string, isOnline bool) (*entity.Device, error)

	// UpdatePushToken stores a fresh wake-up push token for a device.
	UpdatePushToken(ctx context.Context, userID uuid.UUID, deviceID string, pushToken string) error
}
