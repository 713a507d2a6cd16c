package handler

import (
	"log/slog"

	"nydra/internal/delivery/http/response"
	"nydra/internal/domain/service"
	"nydra/internal/infra/ws"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// WSHandlerParams holds dependencies for WSHandler, injected by Fx.
type WSHandlerParams struct {
	fx.In

	Hub      *ws.Hub
	TokenSvc service.TokenService
	Logger   *slog.Logger
}

// WSHandler upgrades authenticated requests into live connections.
type WSHandler struct {
	hub      *ws.Hub
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewWSHandler is the constructor for WSHandler
func NewWSHandler(params WSHandlerParams) *WSHandler {
	return &WSHandler{
		hub:      params.Hub,
		tokenSvc: params.TokenSvc,
		logger:   params.Logger,
	}
}

// Serve authenticates the handshake and hands the connection to the hub. The
// user token is required; the device token is optional so dashboards can
// observe without acting as a device.
func (h *WSHandler) Serve(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.Unauthorized(c, "UNAUTHORIZED", "Token query parameter is missing")
	}

	userID, err := h.tokenSvc.VerifyUserToken(token)
	if err != nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
	}

	deviceID := ""
	if deviceToken := c.QueryParam("deviceToken"); deviceToken != "" {
		claims, err := h.tokenSvc.VerifyDeviceToken(deviceToken)
		if err != nil {
			return response.Unauthorized(c, "DEVICE_TOKEN_REQUIRED", "Invalid or expired device token")
		}
		if claims.UserID != userID {
			return response.Forbidden(c, "DEVICE_OWNERSHIP_VIOLATION", "Device credential belongs to another user")
		}
		deviceID = claims.DeviceID
	}

	if err := h.hub.Serve(c.Response(), c.Request(), userID, deviceID); err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))

		return err
	}

	return nil
}
