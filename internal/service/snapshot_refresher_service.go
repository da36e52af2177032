package service

import (
	"context"
	"errors"

	"task-notes-be/internal/entity"
	"task-notes-be/internal/pkg/logger"
	"task-notes-be/internal/repository/contract"
	"task-notes-be/internal/repository/memory"
	"task-notes-be/pkg/events"
	pktNats "task-notes-be/pkg/nats"
	"task-notes-be/pkg/taskservice"
)

// ISnapshotRefresherService keeps task snapshots loosely in sync by
// consuming TASK_UPDATED events from the task service. Snapshots are only
// ever upserted; this service never deletes one.
type ISnapshotRefresherService interface {
	Start() error
}

type snapshotRefresherService struct {
	subscriber    *pktNats.Subscriber
	fetcher       TaskFetcher
	snapshotRepo  contract.TaskSnapshotRepository
	snapshotCache *memory.SnapshotCache
	sysLogger     logger.ILogger
}

func NewSnapshotRefresherService(
	subscriber *pktNats.Subscriber,
	fetcher TaskFetcher,
	snapshotRepo contract.TaskSnapshotRepository,
	snapshotCache *memory.SnapshotCache,
	sysLogger logger.ILogger,
) ISnapshotRefresherService {
	return &snapshotRefresherService{
		subscriber:    subscriber,
		fetcher:       fetcher,
		snapshotRepo:  snapshotRepo,
		snapshotCache: snapshotCache,
		sysLogger:     sysLogger,
	}
}

func (s *snapshotRefresherService) Start() error {
	if s.subscriber == nil {
		s.sysLogger.Warn("snapshot_refresher", "no NATS subscriber, refresher disabled", nil)
		return nil
	}
	subject := "events." + events.TypeTaskUpdated
	return s.subscriber.Subscribe(subject, "task-notes-snapshot-refresh", s.handle)
}

func (s *snapshotRefresherService) handle(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	rawId, ok := payload["task_id"].(string)
	if !ok {
		rawId, ok = payload["id"].(string)
	}
	if !ok {
		s.sysLogger.Warn("snapshot_refresher", "event without task id, skipping", map[string]interface{}{
			"type": event.EventType(),
		})
		return nil
	}

	taskId, err := ParseReference(rawId)
	if err != nil {
		s.sysLogger.Warn("snapshot_refresher", "event with malformed task id, skipping", map[string]interface{}{
			"task_id": rawId,
		})
		return nil
	}

	// Only refresh tasks we already hold a snapshot for; a snapshot is
	// written on validation, not on every event on the bus.
	existing, err := s.snapshotRepo.FindByTaskId(ctx, taskId)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	task, raw, err := s.fetcher.GetTask(ctx, taskId)
	if err != nil {
		if errors.Is(err, taskservice.ErrTaskNotFound) {
			// The task is gone upstream. The stale snapshot stays; notes
			// referencing it were valid when created.
			return nil
		}
		// Unavailable: let the bus redeliver.
		return err
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
	if err := s.snapshotRepo.Upsert(ctx, snapshot); err != nil {
		return err
	}
	s.snapshotCache.Set(snapshot)

	return nil
}
