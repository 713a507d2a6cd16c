package handler

import (
	"log/slog"
	"net/http"

	"nydra/internal/delivery/http/response"
	"nydra/internal/domain/entity"
	"nydra/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DeviceHandlerParams holds dependencies for DeviceHandler, injected by Fx.
type DeviceHandlerParams struct {
	fx.In

	DeviceUC usecase.DeviceUsecase
	Logger   *slog.Logger
}

// DeviceHandler holds dependencies for device-related handlers
type DeviceHandler struct {
	deviceUC usecase.DeviceUsecase
	logger   *slog.Logger
}

// NewDeviceHandler is the constructor for DeviceHandler
func NewDeviceHandler(params DeviceHandlerParams) *DeviceHandler {
	return &DeviceHandler{
		deviceUC: params.DeviceUC,
		logger:   params.Logger,
	}
}

// RegisterDeviceRequest represents the request body for registering a device
type RegisterDeviceRequest struct {
	DeviceID     string       `json:"device_id" validate:"required"`
	Name         string       `json:"name" validate:"required"`
	DeviceType   string       `json:"device_type" validate:"required"`
	Platform     string       `json:"platform"`
	Capabilities []string     `json:"capabilities"`
	PushToken    string       `json:"push_token"`
	Metadata     entity.Attrs `json:"metadata"`
}

// UpdateDeviceStatusRequest represents the request body for the explicit
// presence update
type UpdateDeviceStatusRequest struct {
	IsOnline *bool `json:"is_online" validate:"required"`
}

// UpdatePushTokenRequest represents the request body for rotating the wake-up
// push token
type UpdatePushTokenRequest struct {
	PushToken string `json:"push_token" validate:"required"`
}

// Register handles device registration
func (h *DeviceHandler) Register(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req RegisterDeviceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid device input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.RegisterDeviceInput{
		DeviceID:     req.DeviceID,
		Name:         req.Name,
		DeviceType:   req.DeviceType,
		Platform:     req.Platform,
		Capabilities: req.Capabilities,
		PushToken:    req.PushToken,
		Metadata:     req.Metadata,
	}

	registered, err := h.deviceUC.Register(c.Request().Context(), userID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, registered, "Device registered successfully")
}

// List handles retrieving all of the user's devices
func (h *DeviceHandler) List(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	devices, err := h.deviceUC.List(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, devices, "Devices retrieved successfully")
}

// Get handles retrieving one device
func (h *DeviceHandler) Get(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	deviceID := c.Param("deviceId")
	if deviceID == "" {
		return response.BadRequest(c, "INVALID_ID", "Device ID is required")
	}

	device, err := h.deviceUC.Get(c.Request().Context(), userID, deviceID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, device, "Device retrieved successfully")
}

// UpdateStatus handles the explicit presence update for clients without a
// live connection
func (h *DeviceHandler) UpdateStatus(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	deviceID := c.Param("deviceId")
	if deviceID == "" {
		return response.BadRequest(c, "INVALID_ID", "Device ID is required")
	}

	var req UpdateDeviceStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	device, err := h.deviceUC.UpdateStatus(c.Request().Context(), userID, deviceID, *req.IsOnline)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, device, "Device status updated successfully")
}

// UpdatePushToken handles rotating the wake-up push token for a device
func (h *DeviceHandler) UpdatePushToken(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	deviceID := c.Param("deviceId")
	if deviceID == "" {
		return response.BadRequest(c, "INVALID_ID", "Device ID is required")
	}

	var req UpdatePushTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid push token input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.deviceUC.UpdatePushToken(c.Request().Context(), userID, deviceID, req.PushToken); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Push token updated successfully"}, "Push token updated successfully")
}

// getUserID extracts the user ID from the context
func (h *DeviceHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
