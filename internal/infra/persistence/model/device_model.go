package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DeviceModel is the GORM-specific struct for the 'devices' table.
// The (user_id, device_id) pair is unique; device_id is the stable identifier
// clients address commands to.
type DeviceModel struct {
	ID           uuid.UUID                     `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID       uuid.UUID                     `gorm:"type:uuid;not null;uniqueIndex:idx_devices_user_device"`
	DeviceID     string                        `gorm:"type:varchar(255);not null;uniqueIndex:idx_devices_user_device;uniqueIndex:idx_devices_device_id"`
	Name         string                        `gorm:"type:varchar(255);not null"`
	DeviceType   string                        `gorm:"type:varchar(50);not null"`
	Platform     string                        `gorm:"type:varchar(100);not null"`
	Capabilities datatypes.JSONSlice[string]   `gorm:"type:jsonb"`
	PushToken    string                        `gorm:"type:varchar(512)"`
	IsOnline     bool                          `gorm:"not null;default:false"`
	LastActive   time.Time                     `gorm:"not null"`
	Metadata     datatypes.JSONMap             `gorm:"type:jsonb"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (DeviceModel) TableName() string {
	return "devices"
}
