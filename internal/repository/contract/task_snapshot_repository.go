package contract

import (
	"context"

	"task-notes-be/internal/entity"

	"github.com/google/uuid"
)

type TaskSnapshotRepository interface {
	FindByTaskId(ctx context.Context, taskId uuid.UUID) (*entity.TaskSnapshot, error)
	// Upsert inserts or replaces the snapshot for its task id. Last writer wins.
	Upsert(ctx context.Context, snapshot *entity.TaskSnapshot) error
}
