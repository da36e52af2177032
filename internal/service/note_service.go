package service

import (
	"context"
	"encoding/json"
	"time"

	"task-notes-be/internal/dto"
	"task-notes-be/internal/entity"
	"task-notes-be/internal/pkg/logger"
	"task-notes-be/internal/repository/contract"
	"task-notes-be/internal/repository/specification"
	"task-notes-be/pkg/events"
	pktNats "task-notes-be/pkg/nats"

	"github.com/google/uuid"
)

// idempotencyCollection scopes idempotency keys to note creation.
const idempotencyCollection = "notes"

type INoteService interface {
	List(ctx context.Context) ([]*dto.NoteResponse, error)
	ListByTask(ctx context.Context, taskId uuid.UUID) ([]*dto.NoteResponse, error)
	Create(ctx context.Context, author string, req *dto.CreateNoteRequest, idempotencyKey string) (*dto.CreateNoteResult, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type noteService struct {
	noteRepo         contract.NoteRepository
	idempotencyRepo  contract.IdempotencyRepository
	taskValidator    ITaskValidatorService
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	sysLogger        logger.ILogger
}

func NewNoteService(
	noteRepo contract.NoteRepository,
	idempotencyRepo contract.IdempotencyRepository,
	taskValidator ITaskValidatorService,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) INoteService {
	return &noteService{
		noteRepo:         noteRepo,
		idempotencyRepo:  idempotencyRepo,
		taskValidator:    taskValidator,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		sysLogger:        sysLogger,
	}
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		TaskId:    note.TaskId,
		Author:    note.Author,
		CreatedAt: note.CreatedAt,
	}
}

func (s *noteService) List(ctx context.Context) ([]*dto.NoteResponse, error) {
	notes, err := s.noteRepo.FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	response := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		response = append(response, toNoteResponse(note))
	}
	return response, nil
}

func (s *noteService) ListByTask(ctx context.Context, taskId uuid.UUID) ([]*dto.NoteResponse, error) {
	// The reference must resolve before we answer; an unknown task is a 404,
	// an unreachable task service a 503, never an empty list.
	if _, err := s.taskValidator.Validate(ctx, taskId); err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.FindAll(ctx,
		specification.ByTaskID{TaskID: taskId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		response = append(response, toNoteResponse(note))
	}
	return response, nil
}

func (s *noteService) Create(ctx context.Context, author string, req *dto.CreateNoteRequest, idempotencyKey string) (*dto.CreateNoteResult, error) {
	// 1. Replay a previous creation if the client retried with the same key.
	// The stored body is returned verbatim; neither repository nor validator
	// runs again.
	if idempotencyKey != "" {
		stored, found, err := s.idempotencyRepo.Get(ctx, idempotencyCollection, idempotencyKey)
		if err != nil {
			s.sysLogger.Warn("note_service", "idempotency lookup failed, treating request as novel", map[string]interface{}{
				"error": err.Error(),
			})
		}
		if found {
			return &dto.CreateNoteResult{Body: stored, Replayed: true}, nil
		}
	}

	// 2. Validate the task reference when one was supplied.
	var taskId *uuid.UUID
	if req.TaskId != "" {
		parsed, err := ParseReference(req.TaskId)
		if err != nil {
			return nil, err
		}
		if _, err := s.taskValidator.Validate(ctx, parsed); err != nil {
			// On ErrTaskUnavailable no idempotency record is written, so a
			// retry with the same key re-attempts the full flow.
			return nil, err
		}
		taskId = &parsed
	}

	// 3. Insert the note, embedding the caller's identity.
	note := entity.Note{
		Title:     req.Title,
		Content:   req.Content,
		TaskId:    taskId,
		CreatedAt: time.Now(),
	}
	if author != "" {
		note.Author = &author
	}
	if err := s.noteRepo.Create(ctx, &note); err != nil {
		return nil, err
	}

	body, err := json.Marshal(toNoteResponse(&note))
	if err != nil {
		return nil, err
	}

	// 4. Record the response for replay. The note exists either way; a
	// failed write only costs dedup on a later retry.
	if idempotencyKey != "" {
		if err := s.idempotencyRepo.Put(ctx, idempotencyCollection, idempotencyKey, body); err != nil {
			s.sysLogger.Error("note_service", "failed to store idempotency record", map[string]interface{}{
				"note_id": note.Id,
				"error":   err.Error(),
			})
		}
	}

	s.publishAudit(ctx, "create", &note)
	s.publishEvent(ctx, events.TypeNoteCreated, &note)

	return &dto.CreateNoteResult{Body: body}, nil
}

func (s *noteService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	// Partial merge: only supplied fields change.
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	fields["updated_at"] = time.Now()

	note, err := s.noteRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	s.publishAudit(ctx, "update", note)
	s.publishEvent(ctx, events.TypeNoteUpdated, note)

	return toNoteResponse(note), nil
}

func (s *noteService) Delete(ctx context.Context, id uuid.UUID) error {
	matched, err := s.noteRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNoteNotFound
	}

	deleted := entity.Note{Id: id}
	s.publishAudit(ctx, "delete", &deleted)
	s.publishEvent(ctx, events.TypeNoteDeleted, &deleted)

	return nil
}

func (s *noteService) publishAudit(ctx context.Context, action string, note *entity.Note) {
	payload, err := json.Marshal(dto.NoteAuditMessage{
		Action: action,
		NoteId: note.Id,
		Author: note.Author,
		TaskId: note.TaskId,
		At:     time.Now(),
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.sysLogger.Warn("note_service", "failed to publish audit message", map[string]interface{}{
			"note_id": note.Id,
			"error":   err.Error(),
		})
	}
}

func (s *noteService) publishEvent(ctx context.Context, eventType string, note *entity.Note) {
	// The bus is auxiliary; a publish failure never fails the request.
	if s.eventPublisher == nil {
		return
	}

	data := map[string]interface{}{
		"note_id": note.Id,
	}
	if note.TaskId != nil {
		data["task_id"] = *note.TaskId
	}

	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.sysLogger.Warn("note_service", "failed to publish event", map[string]interface{}{
			"type":    eventType,
			"note_id": note.Id,
			"error":   err.Error(),
		})
	}
}
