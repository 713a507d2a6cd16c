package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CommandModel is the GORM-specific struct for the 'commands' table.
type CommandModel struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID         uuid.UUID         `gorm:"type:uuid;not null;index:idx_commands_user_status"`
	SourceDeviceID string            `gorm:"type:varchar(255);not null;index"`
	TargetDeviceID string            `gorm:"type:varchar(255);not null;index:idx_commands_target_status"`
	CommandType    string            `gorm:"type:varchar(100);not null"`
	Command        string            `gorm:"type:text;not null"`
	Parameters     datatypes.JSONMap `gorm:"type:jsonb"`
	Priority       int               `gorm:"not null;default:0"`
	Status         string            `gorm:"type:varchar(20);not null;default:'pending';index:idx_commands_user_status;index:idx_commands_target_status"`
	ExecuteAt      time.Time         `gorm:"not null"`
	StartedAt      *time.Time
	CompletedAt    *time.Time
	Result         datatypes.JSONMap `gorm:"type:jsonb"`
	Error          string            `gorm:"type:text"`
	CreatedAt      time.Time         `gorm:"index"`
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (CommandModel) TableName() string {
	return "commands"
}
