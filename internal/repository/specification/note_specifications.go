package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByTaskID filters notes referencing a given task
type ByTaskID struct {
	TaskID uuid.UUID
}

func (s ByTaskID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("task_id = ?", s.TaskID)
}
