package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "nydra/internal/delivery/context"
	"nydra/internal/domain/entity"
	domainerrors "nydra/internal/domain/errors"
	"nydra/internal/domain/repository"
	"nydra/internal/domain/service"
	"nydra/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// deviceService implements the DeviceUsecase interface.
type deviceService struct {
	txManager    repository.TransactionManager
	deviceRepo   repository.DeviceRepository
	tokenService service.TokenService
	logger       *slog.Logger
}

// DeviceServiceParams holds dependencies for DeviceService, injected by Fx.
type DeviceServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	DeviceRepo   repository.DeviceRepository
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewDeviceService is the constructor for deviceService.
func NewDeviceService(params DeviceServiceParams) usecase.DeviceUsecase {
	return &deviceService{
		txManager:    params.TxManager,
		deviceRepo:   params.DeviceRepo,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *deviceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a device for a user or refreshes an existing registration,
// then issues the credential the device authenticates with. The lookup and
// the write run in one transaction so two racing registrations cannot both
// create the same device.
func (srv *deviceService) Register(ctx context.Context, userID uuid.UUID, input *usecase.RegisterDeviceInput) (*usecase.RegisteredDevice, error) {
	if !entity.ValidDeviceType(input.DeviceType) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown device type")
	}

	var device *entity.Device
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		repo := factory.NewDeviceRepository()

		existing, err := repo.FindByUserAndDeviceID(ctx, userID, input.DeviceID)
		switch {
		case err == nil:
			existing.Name = input.Name
			existing.DeviceType = input.DeviceType
			existing.Platform = input.Platform
			existing.Capabilities = input.Capabilities
			existing.Metadata = input.Metadata
			existing.UpdatedAt = time.Now()
			if err := repo.Update(ctx, existing); err != nil {
				return errors.Wrap(err, "failed to update device")
			}
			if input.PushToken != "" {
				if err := repo.UpdatePushToken(ctx, userID, input.DeviceID, input.PushToken); err != nil {
					return errors.Wrap(err, "failed to update push token")
				}
				existing.PushToken = input.PushToken
			}
			device = existing

			return nil

		case errors.Is(err, repository.ErrDeviceNotFound):
			now := time.Now()
			device = &entity.Device{
				ID:           uuid.New(),
				UserID:       userID,
				DeviceID:     input.DeviceID,
				Name:         input.Name,
				DeviceType:   input.DeviceType,
				Platform:     input.Platform,
				Capabilities: input.Capabilities,
				PushToken:    input.PushToken,
				Metadata:     input.Metadata,
				LastActive:   now,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := repo.Create(ctx, device); err != nil {
				if errors.Is(err, repository.ErrDuplicateDevice) {
					return domainerrors.ErrDeviceAlreadyExists
				}

				return errors.Wrap(err, "failed to create device")
			}

			return nil

		default:
			return errors.Wrap(err, "failed to find device")
		}
	})
	if err != nil {
		return nil, err
	}

	token, err := srv.tokenService.GenerateDeviceToken(userID, device.DeviceID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue device token")
	}

	srv.log(ctx).Info("device registered",
		slog.String("device_id", device.DeviceID),
		slog.String("device_type", device.DeviceType),
	)

	return &usecase.RegisteredDevice{
		Device:      device,
		DeviceToken: token,
	}, nil
}

// List retrieves all devices belonging to a user.
func (srv *deviceService) List(ctx context.Context, userID uuid.UUID) ([]*entity.Device, error) {
	devices, err := srv.deviceRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list devices")
	}

	return devices, nil
}

// Get retrieves one device scoped to its owning user.
func (srv *deviceService) Get(ctx context.Context, userID uuid.UUID, deviceID string) (*entity.Device, error) {
	device, err := srv.deviceRepo.FindByUserAndDeviceID(ctx, userID, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return nil, domainerrors.ErrDeviceNotFound
		}

		return nil, errors.Wrap(err, "failed to find device")
	}

	return device, nil
}

// UpdateStatus sets the stored presence flag explicitly. Live connections
// normally drive presence; this is the REST fallback for clients without one.
func (srv *deviceService) UpdateStatus(ctx context.Context, userID uuid.UUID, deviceID string, isOnline bool) (*entity.Device, error) {
	device, err := srv.deviceRepo.FindByUserAndDeviceID(ctx, userID, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return nil, domainerrors.ErrDeviceNotFound
		}

		return nil, errors.Wrap(err, "failed to find device")
	}

	now := time.Now()
	if err := srv.deviceRepo.UpdatePresence(ctx, deviceID, isOnline, now); err != nil {
		return nil, errors.Wrap(err, "failed to update presence")
	}
	device.IsOnline = isOnline
	device.LastActive = now

	return device, nil
}

// UpdatePushToken stores a fresh wake-up push token for a device.
func (srv *deviceService) UpdatePushToken(ctx context.Context, userID uuid.UUID, deviceID string, pushToken string) error {
	if err := srv.deviceRepo.UpdatePushToken(ctx, userID, deviceID, pushToken); err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return domainerrors.ErrDeviceNotFound
		}

		return errors.Wrap(err, "failed to update push token")
	}

	return nil
}
