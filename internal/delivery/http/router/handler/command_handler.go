package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"nydra/internal/delivery/http/middleware"
	"nydra/internal/delivery/http/response"
	"nydra/internal/domain/entity"
	"nydra/internal/domain/service"
	"nydra/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CommandHandlerParams holds dependencies for CommandHandler, injected by Fx.
type CommandHandlerParams struct {
	fx.In

	CommandUC usecase.CommandUsecase
	Logger    *slog.Logger
}

// CommandHandler holds dependencies for command lifecycle handlers
type CommandHandler struct {
	commandUC usecase.CommandUsecase
	logger    *slog.Logger
}

// NewCommandHandler is the constructor for CommandHandler
func NewCommandHandler(params CommandHandlerParams) *CommandHandler {
	return &CommandHandler{
		commandUC: params.CommandUC,
		logger:    params.Logger,
	}
}

// SendCommandRequest represents the request body for dispatching a command
type SendCommandRequest struct {
	TargetDeviceID string       `json:"target_device_id" validate:"required"`
	CommandType    string       `json:"command_type" validate:"required"`
	Command        string       `json:"command" validate:"required"`
	Parameters     entity.Attrs `json:"parameters"`
	Priority       int          `json:"priority" validate:"gte=0,lte=10"`
	ExecuteAt      *time.Time   `json:"execute_at"`
}

// RespondCommandRequest represents a target device reporting its outcome
type RespondCommandRequest struct {
	Status string       `json:"status" validate:"required,oneof=completed failed"`
	Result entity.Attrs `json:"result"`
	Error  string       `json:"error"`
}

// Send handles dispatching a command from the calling device to a target
func (h *CommandHandler) Send(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}
	claims, err := h.getDeviceClaims(c)
	if err != nil {
		return err
	}

	var req SendCommandRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid command input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.SendCommandInput{
		TargetDeviceID: req.TargetDeviceID,
		CommandType:    req.CommandType,
		Command:        req.Command,
		Parameters:     req.Parameters,
		Priority:       req.Priority,
		ExecuteAt:      req.ExecuteAt,
	}

	cmd, err := h.commandUC.Send(c.Request().Context(), userID, claims.DeviceID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, cmd, "Command dispatched successfully")
}

// Status handles retrieving the current state of a command
func (h *CommandHandler) Status(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	commandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid command ID")
	}

	cmd, err := h.commandUC.Status(c.Request().Context(), userID, commandID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cmd, "Command retrieved successfully")
}

// Respond handles the target device reporting a command's outcome
func (h *CommandHandler) Respond(c echo.Context) error {
	if _, err := h.getUserID(c); err != nil {
		return err
	}
	claims, err := h.getDeviceClaims(c)
	if err != nil {
		return err
	}

	commandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid command ID")
	}

	var req RespondCommandRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid response input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.RespondCommandInput{
		Status: req.Status,
		Result: req.Result,
		Error:  req.Error,
	}

	cmd, err := h.commandUC.Respond(c.Request().Context(), claims, commandID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cmd, "Command response recorded successfully")
}

// History handles listing the user's commands
func (h *CommandHandler) History(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	filter := &usecase.HistoryFilter{
		DeviceID: c.QueryParam("device_id"),
		Status:   c.QueryParam("status"),
	}
	if page := c.QueryParam("page"); page != "" {
		filter.Page, _ = strconv.Atoi(page)
	}
	if limit := c.QueryParam("limit"); limit != "" {
		filter.Limit, _ = strconv.Atoi(limit)
	}

	history, err := h.commandUC.History(c.Request().Context(), userID, filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, history, "Command history retrieved successfully")
}

// Cancel handles aborting a command that has not started executing
func (h *CommandHandler) Cancel(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	commandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid command ID")
	}

	cmd, err := h.commandUC.Cancel(c.Request().Context(), userID, commandID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cmd, "Command cancelled successfully")
}

// getUserID extracts the user ID from the context
func (h *CommandHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get(middleware.ContextKeyUserID)
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}

// getDeviceClaims extracts the device claims set by the device middleware
func (h *CommandHandler) getDeviceClaims(c echo.Context) (*service.DeviceClaims, error) {
	claimsVal := c.Get(middleware.ContextKeyDeviceClaims)
	claims, ok := claimsVal.(*service.DeviceClaims)
	if !ok {
		return nil, response.Unauthorized(c, "DEVICE_TOKEN_REQUIRED", "Device credential is missing")
	}

	return claims, nil
}
