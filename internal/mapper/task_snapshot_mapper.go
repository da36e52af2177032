package mapper

import (
	"task-notes-be/internal/entity"
	"task-notes-be/internal/model"

	"gorm.io/datatypes"
)

type TaskSnapshotMapper struct{}

func NewTaskSnapshotMapper() *TaskSnapshotMapper {
	return &TaskSnapshotMapper{}
}

func (m *TaskSnapshotMapper) ToEntity(s *model.TaskSnapshot) *entity.TaskSnapshot {
	if s == nil {
		return nil
	}

	return &entity.TaskSnapshot{
		TaskId:      s.TaskId,
		Title:       s.Title,
		Description: s.Description,
		Owner:       s.Owner,
		Status:      s.Status,
		Raw:         []byte(s.Raw),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		FetchedAt:   s.FetchedAt,
	}
}

func (m *TaskSnapshotMapper) ToModel(s *entity.TaskSnapshot) *model.TaskSnapshot {
	if s == nil {
		return nil
	}

	return &model.TaskSnapshot{
		TaskId:      s.TaskId,
		Title:       s.Title,
		Description: s.Description,
		Owner:       s.Owner,
		Status:      s.Status,
		Raw:         datatypes.JSON(s.Raw),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		FetchedAt:   s.FetchedAt,
	}
}
