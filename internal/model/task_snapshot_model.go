package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TaskSnapshot is a locally persisted copy of a task owned by the task
// service. Written only as a side effect of a successful remote lookup;
// never authoritative.
type TaskSnapshot struct {
	TaskId      uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title       string         `gorm:"type:varchar(255)"`
	Description string         `gorm:"type:text"`
	Owner       string         `gorm:"type:varchar(255)"`
	Status      string         `gorm:"type:varchar(64)"`
	Raw         datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	FetchedAt   time.Time `gorm:"autoUpdateTime"`
}

func (TaskSnapshot) TableName() string {
	return "task_snapshots"
}
