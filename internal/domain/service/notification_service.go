package service

import (
	"context"
)

// NotificationService defines the interface for push notification services
// used to wake up devices that have no live connection.
type NotificationService interface {
	// SendDataNotification sends a data-only push to a single device token.
	SendDataNotification(ctx context.Context, token string, data map[string]string) error
}
