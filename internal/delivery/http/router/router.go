// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"nydra/internal/delivery/http/middleware"
	"nydra/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	DeviceHandler  *handler.DeviceHandler
	CommandHandler *handler.CommandHandler
	WSHandler      *handler.WSHandler
	AuthMiddleware *middleware.AuthMiddleware
	Registry       *prometheus.Registry
}

// router holds all the handlers that need to be registered.
type router struct {
	deviceHandler  *handler.DeviceHandler
	commandHandler *handler.CommandHandler
	wsHandler      *handler.WSHandler
	authMiddleware *middleware.AuthMiddleware
	registry       *prometheus.Registry
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		deviceHandler:  params.DeviceHandler,
		commandHandler: params.CommandHandler,
		wsHandler:      params.WSHandler,
		authMiddleware: params.AuthMiddleware,
		registry:       params.Registry,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check and metrics endpoints, unauthenticated
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})))

	// Websocket upgrade authenticates inside the handshake
	e.GET("/ws", r.wsHandler.Serve)

	api := e.Group("/api")
	api.Use(r.authMiddleware.Authenticate)

	deviceGroup := api.Group("/devices")
	{
		deviceGroup.POST("/register", r.deviceHandler.Register)
		deviceGroup.GET("", r.deviceHandler.List)
		deviceGroup.GET("/:deviceId", r.deviceHandler.Get)
		deviceGroup.PATCH("/:deviceId/status", r.deviceHandler.UpdateStatus)
		deviceGroup.PATCH("/:deviceId/push-token", r.deviceHandler.UpdatePushToken)
	}

	commandGroup := api.Group("/commands")
	{
		// Sending and responding act AS a device, so they additionally
		// require the device credential.
		commandGroup.POST("/send", r.commandHandler.Send, r.authMiddleware.RequireDevice)
		commandGroup.POST("/respond/:id", r.commandHandler.Respond, r.authMiddleware.RequireDevice)
		commandGroup.GET("/status/:id", r.commandHandler.Status)
		commandGroup.GET("/history", r.commandHandler.History)
		commandGroup.POST("/cancel/:id", r.commandHandler.Cancel)
	}
}
