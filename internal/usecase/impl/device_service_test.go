package impl

import (
	"context"
	"log/slog"
	"testing"

	"nydra/internal/domain/entity"
	domainerrors "nydra/internal/domain/errors"
	"nydra/internal/domain/repository"
	mockRepo "nydra/internal/mocks/repository"
	mockService "nydra/internal/mocks/service"
	"nydra/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// deviceServiceFixtures holds all test dependencies for device service tests.
type deviceServiceFixtures struct {
	service      usecase.DeviceUsecase
	txManager    *mockRepo.MockTransactionManager
	deviceRepo   *mockRepo.MockDeviceRepository
	tokenService *mockService.MockTokenService
}

func createTestDeviceService(t *testing.T) deviceServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	tokenService := mockService.NewMockTokenService(t)

	svc := NewDeviceService(DeviceServiceParams{
		TxManager:    txManager,
		DeviceRepo:   deviceRepo,
		TokenService: tokenService,
		Logger:       slog.Default(),
	})

	return deviceServiceFixtures{
		service:      svc,
		txManager:    txManager,
		deviceRepo:   deviceRepo,
		tokenService: tokenService,
	}
}

// passthroughTx wires the mock transaction manager to run the callback with a
// factory backed by the given repositories.
func passthroughTx(t *testing.T, txManager *mockRepo.MockTransactionManager, deviceRepo *mockRepo.MockDeviceRepository) {
	t.Helper()

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().NewDeviceRepository().Return(deviceRepo).Maybe()

	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func TestDeviceService_Register_NewDevice(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	userID := uuid.New()
	txRepo := mockRepo.NewMockDeviceRepository(t)
	passthroughTx(t, fx.txManager, txRepo)

	input := &usecase.RegisterDeviceInput{
		DeviceID:     "laptop-7f9c",
		Name:         "Work Laptop",
		DeviceType:   entity.DeviceTypeDesktop,
		Platform:     "linux",
		Capabilities: []string{"shell", "file-transfer"},
		PushToken:    "fcm-token-1",
	}

	txRepo.EXPECT().
		FindByUserAndDeviceID(ctx, userID, "laptop-7f9c").
		Return(nil, repository.ErrDeviceNotFound)

	txRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Device")).
		Return(nil)

	fx.tokenService.EXPECT().
		GenerateDeviceToken(userID, "laptop-7f9c").
		Return("device-jwt", nil)

	result, err := fx.service.Register(ctx, userID, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "device-jwt", result.DeviceToken)
	assert.Equal(t, userID, result.Device.UserID)
	assert.Equal(t, "laptop-7f9c", result.Device.DeviceID)
	assert.Equal(t, entity.DeviceTypeDesktop, result.Device.DeviceType)
	assert.Equal(t, "fcm-token-1", result.Device.PushToken)
	assert.NotEqual(t, uuid.Nil, result.Device.ID)
}

func TestDeviceService_Register_ExistingDeviceUpserts(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	userID := uuid.New()
	txRepo := mockRepo.NewMockDeviceRepository(t)
	passthroughTx(t, fx.txManager, txRepo)

	existing := &entity.Device{
		ID:         uuid.New(),
		UserID:     userID,
		DeviceID:   "laptop-7f9c",
		Name:       "Old Name",
		DeviceType: entity.DeviceTypeDesktop,
	}

	input := &usecase.RegisterDeviceInput{
		DeviceID:   "laptop-7f9c",
		Name:       "New Name",
		DeviceType: entity.DeviceTypeDesktop,
		PushToken:  "fresh-token",
	}

	txRepo.EXPECT().
		FindByUserAndDeviceID(ctx, userID, "laptop-7f9c").
		Return(existing, nil)

	txRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(d *entity.Device) bool {
			return d.Name == "New Name"
		})).
		Return(nil)

	txRepo.EXPECT().
		UpdatePushToken(ctx, userID, "laptop-7f9c", "fresh-token").
		Return(nil)

	fx.tokenService.EXPECT().
		GenerateDeviceToken(userID, "laptop-7f9c").
		Return("device-jwt", nil)

	result, err := fx.service.Register(ctx, userID, input)
	require.NoError(t, err)
	assert.Equal(t, "New Name", result.Device.Name)
	assert.Equal(t, "fresh-token", result.Device.PushToken)
	assert.Equal(t, existing.ID, result.Device.ID)
}

func TestDeviceService_Register_UnknownDeviceType(t *testing.T) {
	fx := createTestDeviceService(t)

	result, err := fx.service.Register(context.Background(), uuid.New(), &usecase.RegisterDeviceInput{
		DeviceID:   "laptop-7f9c",
		Name:       "Work Laptop",
		DeviceType: "mainframe",
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestDeviceService_Get_NotFound(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.deviceRepo.EXPECT().
		FindByUserAndDeviceID(ctx, userID, "ghost").
		Return(nil, repository.ErrDeviceNotFound)

	device, err := fx.service.Get(ctx, userID, "ghost")
	require.Error(t, err)
	assert.Nil(t, device)
	assert.ErrorIs(t, err, domainerrors.ErrDeviceNotFound)
}

func TestDeviceService_UpdateStatus(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.deviceRepo.EXPECT().
		FindByUserAndDeviceID(ctx, userID, "laptop-7f9c").
		Return(&entity.Device{UserID: userID, DeviceID: "laptop-7f9c", IsOnline: false}, nil)

	fx.deviceRepo.EXPECT().
		UpdatePresence(ctx, "laptop-7f9c", true, mock.AnythingOfType("time.Time")).
		Return(nil)

	device, err := fx.service.UpdateStatus(ctx, userID, "laptop-7f9c", true)
	require.NoError(t, err)
	assert.True(t, device.IsOnline)
	assert.False(t, device.LastActive.IsZero())
}

func TestDeviceService_UpdatePushToken_NotFound(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.deviceRepo.EXPECT().
		UpdatePushToken(ctx, userID, "ghost", "token").
		Return(repository.ErrDeviceNotFound)

	err := fx.service.UpdatePushToken(ctx, userID, "ghost", "token")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDeviceNotFound)
}
