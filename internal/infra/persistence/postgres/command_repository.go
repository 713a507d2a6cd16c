package postgres

import (
	"context"
	"time"

	"nydra/internal/domain/entity"
	domainerrors "nydra/internal/domain/errors"
	"nydra/internal/domain/repository"
	"nydra/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultHistoryLimit = 20

// commandRepository implements the repository.CommandRepository interface.
type commandRepository struct {
	db *gorm.DB
}

// NewCommandRepository is the constructor for commandRepository.
func NewCommandRepository(db *gorm.DB) repository.CommandRepository {
	return &commandRepository{
		db: db,
	}
}

// Create persists a new command record.
func (repo *commandRepository) Create(ctx context.Context, cmd *entity.Command) error {
	cmdM := fromCommandDomain(cmd)

	if err := repo.db.WithContext(ctx).Create(cmdM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid device reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required command information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create command")
	}

	// Update the entity with generated values
	cmd.ID = cmdM.ID
	cmd.CreatedAt = cmdM.CreatedAt
	cmd.UpdatedAt = cmdM.UpdatedAt

	return nil
}

// FindByID retrieves a command by its unique ID.
func (repo *commandRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Command, error) {
	var cmdM model.CommandModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&cmdM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCommandNotFound
		}

		return nil, errors.Wrap(err, "failed to find command by ID")
	}

	return toCommandDomain(&cmdM), nil
}

// FindByUserAndID retrieves a command scoped to its owning user.
func (repo *commandRepository) FindByUserAndID(ctx context.Context, userID, id uuid.UUID) (*entity.Command, error) {
	var cmdM model.CommandModel

	if err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&cmdM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCommandNotFound
		}

		return nil, errors.Wrap(err, "failed to find command by user and ID")
	}

	return toCommandDomain(&cmdM), nil
}

// UpdateStatus atomically transitions a command that is currently in one of
// the expected statuses. The status guard runs inside the UPDATE's WHERE
// clause so concurrent writers cannot both win.
func (repo *commandRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected []entity.CommandStatus, update repository.StatusUpdate) error {
	fields := map[string]any{
		"status": string(update.Status),
	}
	if update.Error != "" {
		fields["error"] = update.Error
	}
	if update.Result != nil {
		fields["result"] = datatypes.JSONMap(update.Result)
	}
	if update.StartedAt != nil {
		fields["started_at"] = *update.StartedAt
	}
	if update.CompletedAt != nil {
		fields["completed_at"] = *update.CompletedAt
	}

	query := repo.db.WithContext(ctx).
		Model(&model.CommandModel{}).
		Where("id = ?", id)
	if len(expected) > 0 {
		statuses := make([]string, 0, len(expected))
		for _, s := range expected {
			statuses = append(statuses, string(s))
		}
		query = query.Where("status IN ?", statuses)
	}

	result := query.Updates(fields)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update command status")
	}

	if result.RowsAffected == 0 {
		// Disambiguate a missing command from a status race.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.CommandModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check command existence")
		}
		if count == 0 {
			return repository.ErrCommandNotFound
		}

		return repository.ErrStatusConflict
	}

	return nil
}

// List returns a page of commands matching the filter plus the total count.
func (repo *commandRepository) List(ctx context.Context, filter repository.CommandFilter) ([]*entity.Command, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.CommandModel{}).
		Where("user_id = ?", filter.UserID)

	if filter.DeviceID != "" {
		query = query.Where("source_device_id = ? OR target_device_id = ?", filter.DeviceID, filter.DeviceID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count commands")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var cmdModels []*model.CommandModel
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&cmdModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list commands")
	}

	cmds := make([]*entity.Command, 0, len(cmdModels))
	for _, cmdM := range cmdModels {
		cmds = append(cmds, toCommandDomain(cmdM))
	}

	return cmds, total, nil
}

// FindByStatus retrieves all commands currently in the given status.
func (repo *commandRepository) FindByStatus(ctx context.Context, status entity.CommandStatus) ([]*entity.Command, error) {
	var cmdModels []*model.CommandModel

	if err := repo.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Find(&cmdModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find commands by status")
	}

	cmds := make([]*entity.Command, 0, len(cmdModels))
	for _, cmdM := range cmdModels {
		cmds = append(cmds, toCommandDomain(cmdM))
	}

	return cmds, nil
}

// FindExecutingBefore retrieves executing commands whose startedAt is older than the cutoff.
func (repo *commandRepository) FindExecutingBefore(ctx context.Context, cutoff time.Time) ([]*entity.Command, error) {
	var cmdModels []*model.CommandModel

	if err := repo.db.WithContext(ctx).
		Where("status = ? AND started_at < ?", string(entity.StatusExecuting), cutoff).
		Find(&cmdModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find stale executing commands")
	}

	cmds := make([]*entity.Command, 0, len(cmdModels))
	for _, cmdM := range cmdModels {
		cmds = append(cmds, toCommandDomain(cmdM))
	}

	return cmds, nil
}

// --- Mapper Functions ---

// toCommandDomain converts a GORM CommandModel to a domain Command entity.
func toCommandDomain(data *model.CommandModel) *entity.Command {
	if data == nil {
		return nil
	}

	return &entity.Command{
		ID:             data.ID,
		UserID:         data.UserID,
		SourceDeviceID: data.SourceDeviceID,
		TargetDeviceID: data.TargetDeviceID,
		CommandType:    data.CommandType,
		Command:        data.Command,
		Parameters:     entity.Attrs(data.Parameters),
		Priority:       data.Priority,
		Status:         entity.CommandStatus(data.Status),
		ExecuteAt:      data.ExecuteAt,
		StartedAt:      data.StartedAt,
		CompletedAt:    data.CompletedAt,
		Result:         entity.Attrs(data.Result),
		Error:          data.Error,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromCommandDomain converts a domain Command entity to a GORM CommandModel.
func fromCommandDomain(data *entity.Command) *model.CommandModel {
	if data == nil {
		return nil
	}

	return &model.CommandModel{
		ID:             data.ID,
		UserID:         data.UserID,
		SourceDeviceID: data.SourceDeviceID,
		TargetDeviceID: data.TargetDeviceID,
		CommandType:    data.CommandType,
		Command:        data.Command,
		Parameters:     datatypes.JSONMap(data.Parameters),
		Priority:       data.Priority,
		Status:         string(data.Status),
		ExecuteAt:      data.ExecuteAt,
		StartedAt:      data.StartedAt,
		CompletedAt:    data.CompletedAt,
		Result:         datatypes.JSONMap(data.Result),
		Error:          data.Error,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
