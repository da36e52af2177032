package implementation

import (
	"context"
	"errors"

	"task-notes-be/internal/entity"
	"task-notes-be/internal/mapper"
	"task-notes-be/internal/model"
	"task-notes-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskSnapshotRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TaskSnapshotMapper
}

func NewTaskSnapshotRepository(db *gorm.DB) contract.TaskSnapshotRepository {
	return &TaskSnapshotRepositoryImpl{
		db:     db,
		mapper: mapper.NewTaskSnapshotMapper(),
	}
}

func (r *TaskSnapshotRepositoryImpl) FindByTaskId(ctx context.Context, taskId uuid.UUID) (*entity.TaskSnapshot, error) {
	var m model.TaskSnapshot
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TaskSnapshotRepositoryImpl) Upsert(ctx context.Context, snapshot *entity.TaskSnapshot) error {
	m := r.mapper.ToModel(snapshot)
	// Concurrent fill of the same task id resolves to last writer wins; both
	// writers carry a fresh copy of the same remote task.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}},
			UpdateAll: true,
		}).
		Create(m).Error
}
