package service

import (
	"context"
	"errors"

	"task-notes-be/internal/entity"
	"task-notes-be/internal/repository/specification"
	"task-notes-be/pkg/taskservice"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeFetcher struct {
	task  *taskservice.Task
	raw   []byte
	err   error
	calls int
}

func (f *fakeFetcher) GetTask(ctx context.Context, id uuid.UUID) (*taskservice.Task, []byte, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.task, f.raw, nil
}

type fakeSnapshotRepo struct {
	stored    map[uuid.UUID]*entity.TaskSnapshot
	findErr   error
	upsertErr error
	upserts   int
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{stored: map[uuid.UUID]*entity.TaskSnapshot{}}
}

func (f *fakeSnapshotRepo) FindByTaskId(ctx context.Context, taskId uuid.UUID) (*entity.TaskSnapshot, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.stored[taskId], nil
}

func (f *fakeSnapshotRepo) Upsert(ctx context.Context, snapshot *entity.TaskSnapshot) error {
	f.upserts++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.stored[snapshot.TaskId] = snapshot
	return nil
}

type fakeNoteRepo struct {
	notes     []*entity.Note
	createErr error
	creates   int
	deleted   map[uuid.UUID]bool
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{deleted: map[uuid.UUID]bool{}}
}

func (f *fakeNoteRepo) Create(ctx context.Context, note *entity.Note) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	note.Id = uuid.New()
	clone := *note
	f.notes = append(f.notes, &clone)
	return nil
}

func (f *fakeNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	if len(f.notes) == 0 {
		return nil, nil
	}
	return f.notes[0], nil
}

func (f *fakeNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	return f.notes, nil
}

func (f *fakeNoteRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Note, error) {
	for _, n := range f.notes {
		if n.Id == id {
			if title, ok := fields["title"].(string); ok {
				n.Title = title
			}
			if content, ok := fields["content"].(string); ok {
				n.Content = content
			}
			return n, nil
		}
	}
	return nil, nil
}

func (f *fakeNoteRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	for i, n := range f.notes {
		if n.Id == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			f.deleted[id] = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.notes)), nil
}

type fakeIdempotencyRepo struct {
	records map[string][]byte
	getErr  error
	putErr  error
	puts    int
}

func newFakeIdempotencyRepo() *fakeIdempotencyRepo {
	return &fakeIdempotencyRepo{records: map[string][]byte{}}
}

func (f *fakeIdempotencyRepo) Get(ctx context.Context, collection, key string) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	body, ok := f.records[collection+"/"+key]
	return body, ok, nil
}

func (f *fakeIdempotencyRepo) Put(ctx context.Context, collection, key string, body []byte) error {
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	f.records[collection+"/"+key] = body
	return nil
}

type fakeTaskValidator struct {
	snapshot *entity.TaskSnapshot
	err      error
	calls    int
}

func (f *fakeTaskValidator) Validate(ctx context.Context, taskId uuid.UUID) (*entity.TaskSnapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.snapshot != nil {
		return f.snapshot, nil
	}
	return &entity.TaskSnapshot{TaskId: taskId}, nil
}

type fakePublisherService struct {
	published [][]byte
	err       error
}

func (f *fakePublisherService) Publish(ctx context.Context, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, payload)
	return nil
}

var errBoom = errors.New("boom")
