package notification

import (
	"context"
	"log/slog"

	"nydra/config"
	"nydra/internal/domain/service"

	"go.uber.org/fx"
)

// Params holds dependencies for the NotificationService, injected by Fx
type Params struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New creates a NotificationService based on configuration. When Firebase is
// not configured it returns nil and wake-up pushes are skipped.
func New(params Params) (service.NotificationService, error) {
	cfg := params.Config.Firebase
	if cfg == nil || cfg.CredentialsPath == "" {
		params.Logger.Info("Firebase not configured, wake-up pushes disabled")

		return nil, nil
	}

	params.Logger.Info("Firebase notification service initialized",
		slog.String("project_id", cfg.ProjectID),
	)

	return NewFirebaseService(params.Ctx, cfg.CredentialsPath)
}

// Module provides the notification FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
