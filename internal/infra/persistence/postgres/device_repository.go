package postgres

import (
	"context"
	"time"

	"nydra/internal/domain/entity"
	domainerrors "nydra/internal/domain/errors"
	"nydra/internal/domain/repository"
	"nydra/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// deviceRepository implements the repository.DeviceRepository interface.
type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository is the constructor for deviceRepository.
func NewDeviceRepository(db *gorm.DB) repository.DeviceRepository {
	return &deviceRepository{
		db: db,
	}
}

// Create persists a new device for a user.
func (repo *deviceRepository) Create(ctx context.Context, device *entity.Device) error {
	deviceM := fromDeviceDomain(device)

	if err := repo.db.WithContext(ctx).Create(deviceM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateDevice
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required device information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create device")
	}

	// Update the entity with generated values
	device.ID = deviceM.ID
	device.CreatedAt = deviceM.CreatedAt
	device.UpdatedAt = deviceM.UpdatedAt

	return nil
}

// Update persists mutable device fields for an existing device.
func (repo *deviceRepository) Update(ctx context.Context, device *entity.Device) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DeviceModel{}).
		Where("user_id = ? AND device_id = ?", device.UserID, device.DeviceID).
		Updates(map[string]any{
			"name":         device.Name,
			"device_type":  device.DeviceType,
			"platform":     device.Platform,
			"capabilities": datatypes.NewJSONSlice(device.Capabilities),
			"metadata":     datatypes.JSONMap(device.Metadata),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update device")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// FindByDeviceID retrieves a device by its stable device identifier.
func (repo *deviceRepository) FindByDeviceID(ctx context.Context, deviceID string) (*entity.Device, error) {
	var deviceM model.DeviceModel

	if err := repo.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		First(&deviceM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDeviceNotFound
		}

		return nil, errors.Wrap(err, "failed to find device by device ID")
	}

	return toDeviceDomain(&deviceM), nil
}

// FindByUserAndDeviceID retrieves a device scoped to its owning user.
func (repo *deviceRepository) FindByUserAndDeviceID(ctx context.Context, userID uuid.UUID, deviceID string) (*entity.Device, error) {
	var deviceM model.DeviceModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND device_id = ?", userID, deviceID).
		First(&deviceM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDeviceNotFound
		}

		return nil, errors.Wrap(err, "failed to find device by user and device ID")
	}

	return toDeviceDomain(&deviceM), nil
}

// FindByUser retrieves all devices for a specific user.
func (repo *deviceRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Device, error) {
	var deviceModels []*model.DeviceModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&deviceModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find devices by user")
	}

	devices := make([]*entity.Device, 0, len(deviceModels))
	for _, deviceM := range deviceModels {
		devices = append(devices, toDeviceDomain(deviceM))
	}

	return devices, nil
}

// UpdatePresence sets the stored online flag and last-activity time.
func (repo *deviceRepository) UpdatePresence(ctx context.Context, deviceID string, isOnline bool, lastActive time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DeviceModel{}).
		Where("device_id = ?", deviceID).
		Updates(map[string]any{
			"is_online":   isOnline,
			"last_active": lastActive,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update device presence")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// UpdateLastActive refreshes the last-activity time without touching the online flag.
func (repo *deviceRepository) UpdateLastActive(ctx context.Context, deviceID string, lastActive time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DeviceModel{}).
		Where("device_id = ?", deviceID).
		Update("last_active", lastActive)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update device last active")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// UpdatePushToken updates the wake-up push token for a device.
func (repo *deviceRepository) UpdatePushToken(ctx context.Context, userID uuid.UUID, deviceID string, pushToken string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DeviceModel{}).
		Where("user_id = ? AND device_id = ?", userID, deviceID).
		Update("push_token", pushToken)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update push token")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toDeviceDomain converts a GORM DeviceModel to a domain Device entity.
func toDeviceDomain(data *model.DeviceModel) *entity.Device {
	if data == nil {
		return nil
	}

	return &entity.Device{
		ID:           data.ID,
		UserID:       data.UserID,
		DeviceID:     data.DeviceID,
		Name:         data.Name,
		DeviceType:   data.DeviceType,
		Platform:     data.Platform,
		Capabilities: data.Capabilities,
		PushToken:    data.PushToken,
		IsOnline:     data.IsOnline,
		LastActive:   data.LastActive,
		Metadata:     entity.Attrs(data.Metadata),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromDeviceDomain converts a domain Device entity to a GORM DeviceModel.
func fromDeviceDomain(data *entity.Device) *model.DeviceModel {
	if data == nil {
		return nil
	}

	return &model.DeviceModel{
		ID:           data.ID,
		UserID:       data.UserID,
		DeviceID:     data.DeviceID,
		Name:         data.Name,
		DeviceType:   data.DeviceType,
		Platform:     data.Platform,
		Capabilities: datatypes.NewJSONSlice(data.Capabilities),
		PushToken:    data.PushToken,
		IsOnline:     data.IsOnline,
		LastActive:   data.LastActive,
		Metadata:     datatypes.JSONMap(data.Metadata),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
