package service

import (
	"context"
	"errors"

	"task-notes-be/internal/entity"
	"task-notes-be/internal/pkg/logger"
	"task-notes-be/internal/repository/contract"
	"task-notes-be/internal/repository/memory"
	"task-notes-be/pkg/taskservice"

	"github.com/google/uuid"
)

// TaskFetcher is the outbound half of the validator (implemented by
// taskservice.Client).
type TaskFetcher interface {
	GetTask(ctx context.Context, id uuid.UUID) (*taskservice.Task, []byte, error)
}

// ITaskValidatorService resolves a task reference to a snapshot.
// Returns ErrTaskNotFound when the task service authoritatively denies the
// reference, ErrTaskUnavailable when the check could not be completed.
type ITaskValidatorService interface {
	Validate(ctx context.Context, taskId uuid.UUID) (*entity.TaskSnapshot, error)
}

type taskValidatorService struct {
	snapshotCache *memory.SnapshotCache
	snapshotRepo  contract.TaskSnapshotRepository
	fetcher       TaskFetcher
	sysLogger     logger.ILogger
}

func NewTaskValidatorService(
	snapshotCache *memory.SnapshotCache,
	snapshotRepo contract.TaskSnapshotRepository,
	fetcher TaskFetcher,
	sysLogger logger.ILogger,
) ITaskValidatorService {
	return &taskValidatorService{
		snapshotCache: snapshotCache,
		snapshotRepo:  snapshotRepo,
		fetcher:       fetcher,
		sysLogger:     sysLogger,
	}
}

func (s *taskValidatorService) Validate(ctx context.Context, taskId uuid.UUID) (*entity.TaskSnapshot, error) {
	// 1. In-process cache. A hit means no network call at all.
	if snap, found := s.snapshotCache.Get(taskId); found {
		return snap, nil
	}

	// 2. Persisted snapshot. A stale snapshot still counts as Valid;
	// availability beats freshness here.
	snap, err := s.snapshotRepo.FindByTaskId(ctx, taskId)
	if err != nil {
		// Snapshot store trouble must not fail validation; fall through to
		// the remote lookup.
		s.sysLogger.Warn("task_validator", "snapshot lookup failed, falling back to remote", map[string]interface{}{
			"task_id": taskId,
			"error":   err.Error(),
		})
	}
	if snap != nil {
		s.snapshotCache.Set(snap)
		return snap, nil
	}

	// 3. Remote lookup with bounded retries.
	task, raw, err := s.fetcher.GetTask(ctx, taskId)
	if err != nil {
		if errors.Is(err, taskservice.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, ErrTaskUnavailable
	}

	snapshot := &entity.TaskSnapshot{
		TaskId:      task.Id,
		Title:       task.Title,
		Description: task.Description,
		Owner:       task.Owner,
		Status:      task.Status,
		Raw:         raw,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Write-through cache fill. Persistence failure never fails the
	// validation result.
	if err := s.snapshotRepo.Upsert(ctx, snapshot); err != nil {
		s.sysLogger.Error("task_validator", "failed to persist task snapshot", map[string]interface{}{
			"task_id": taskId,
			"error":   err.Error(),
		})
	}
	s.snapshotCache.Set(snapshot)

	return snapshot, nil
}
