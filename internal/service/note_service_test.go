package service

import (
	"context"
	"encoding/json"
	"testing"

	"task-notes-be/internal/dto"
	"task-notes-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoteServiceForTest(noteRepo *fakeNoteRepo, idemRepo *fakeIdempotencyRepo, validator *fakeTaskValidator) (INoteService, *fakePublisherService) {
	pub := &fakePublisherService{}
	svc := NewNoteService(noteRepo, idemRepo, validator, pub, nil, nopLogger{})
	return svc, pub
}

func TestCreateWithoutTaskSkipsValidation(t *testing.T) {
	noteRepo := newFakeNoteRepo()
	validator := &fakeTaskValidator{}
	svc, pub := newNoteServiceForTest(noteRepo, newFakeIdempotencyRepo(), validator)

	res, err := svc.Create(context.Background(), "alice", &dto.CreateNoteRequest{
		Title:   "Standalone",
		Content: "No task here",
	}, "")

	require.NoError(t, err)
	assert.False(t, res.Replayed)
	assert.Equal(t, 0, validator.calls)
	assert.Equal(t, 1, noteRepo.creates)
	assert.Len(t, pub.published, 1)

	var body dto.NoteResponse
	require.NoError(t, json.Unmarshal(res.Body, &body))
	assert.Equal(t, "Standalone", body.Title)
	require.NotNil(t, body.Author)
	assert.Equal(t, "alice", *body.Author)
	assert.Nil(t, body.TaskId)
}

func TestCreateValidatesTaskReference(t *testing.T) {
	taskId := uuid.New()
	noteRepo := newFakeNoteRepo()
	validator := &fakeTaskValidator{}
	svc, _ := newNoteServiceForTest(noteRepo, newFakeIdempotencyRepo(), validator)

	res, err := svc.Create(context.Background(), "alice", &dto.CreateNoteRequest{
		Title:   "Linked",
		Content: "body",
		TaskId:  taskId.String(),
	}, "")

	require.NoError(t, err)
	assert.Equal(t, 1, validator.calls)

	var body dto.NoteResponse
	require.NoError(t, json.Unmarshal(res.Body, &body))
	require.NotNil(t, body.TaskId)
	assert.Equal(t, taskId, *body.TaskId)
}

func TestCreateMalformedTaskId(t *testing.T) {
	noteRepo := newFakeNoteRepo()
	validator := &fakeTaskValidator{}
	svc, _ := newNoteServiceForTest(noteRepo, newFakeIdempotencyRepo(), validator)

	_, err := svc.Create(context.Background(), "alice", &dto.CreateNoteRequest{
		Title:   "Bad ref",
		Content: "body",
		TaskId:  "definitely-not-a-uuid",
	}, "")

	assert.ErrorIs(t, err, ErrInvalidReference)
	// Malformed ids never reach the validator or the repository.
	assert.Equal(t, 0, validator.calls)
	assert.Equal(t, 0, noteRepo.creates)
}

func TestCreateTaskNotFound(t *testing.T) {
	noteRepo := newFakeNoteRepo()
	svc, _ := newNoteServiceForTest(noteRepo, newFakeIdempotencyRepo(), &fakeTaskValidator{err: ErrTaskNotFound})

	_, err := svc.Create(context.Background(), "alice", &dto.CreateNoteRequest{
		Title:   "Ghost",
		Content: "body",
		TaskId:  uuid.NewString(),
	}, "")

	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.Equal(t, 0, noteRepo.creates)
}

func TestCreateIdempotentReplay(t *testing.T) {
	noteRepo := newFakeNoteRepo()
	idemRepo := newFakeIdempotencyRepo()
	validator := &fakeTaskValidator{}
	svc, _ := newNoteServiceForTest(noteRepo, idemRepo, validator)

	req := &dto.CreateNoteRequest{Title: "Once", Content: "body", TaskId: uuid.NewString()}

	first, err := svc.Create(context.Background(), "alice", req, "key-1")
	require.NoError(t, err)
	require.False(t, first.Replayed)

	// The retry replays even though validation would now fail.
	validator.err = ErrTaskUnavailable

	second, err := svc.Create(context.Background(), "alice", req, "key-1")
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.Body, second.Body)
	assert.Equal(t, 1, noteRepo.creates)
	assert.Equal(t, 1, validator.calls)
}

func TestCreateWithoutKeyIsNeverDeduplicated(t *testing.T) {
	noteRepo := newFakeNoteRepo()
	idemRepo := newFakeIdempotencyRepo()
	svc, _ := newNoteServiceForTest(noteRepo, idemRepo, &fakeTaskValidator{})

	req := &dto.CreateNoteRequest{Title: "Twice", Content: "body"}

	first, err := svc.Create(context.Background(), "alice", req, "")
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), "alice", req, "")
	require.NoError(t, err)

	assert.Equal(t, 2, noteRepo.creates)
	assert.Equal(t, 0, idemRepo.puts)
	assert.NotEqual(t, first.Body, second.Body) // Distinct ids.
}

func TestCreateUnavailableWritesNoIdempotencyRecord(t *testing.T) {
	noteRepo := newFakeNoteRepo()
	idemRepo := newFakeIdempotencyRepo()
	svc, _ := newNoteServiceForTest(noteRepo, idemRepo, &fakeTaskValidator{err: ErrTaskUnavailable})

	_, err := svc.Create(context.Background(), "alice", &dto.CreateNoteRequest{
		Title:   "Blocked",
		Content: "body",
		TaskId:  uuid.NewString(),
	}, "key-2")

	assert.ErrorIs(t, err, ErrTaskUnavailable)
	assert.Equal(t, 0, idemRepo.puts)
	assert.Equal(t, 0, noteRepo.creates)
}

func TestCreateIdempotencyLookupFailureTreatedAsNovel(t *testing.T) {
	noteRepo := newFakeNoteRepo()
	idemRepo := newFakeIdempotencyRepo()
	idemRepo.getErr = errBoom
	svc, _ := newNoteServiceForTest(noteRepo, idemRepo, &fakeTaskValidator{})

	res, err := svc.Create(context.Background(), "alice", &dto.CreateNoteRequest{
		Title:   "Degraded",
		Content: "body",
	}, "key-3")

	require.NoError(t, err)
	assert.False(t, res.Replayed)
	assert.Equal(t, 1, noteRepo.creates)
}

func TestUpdatePartialMerge(t *testing.T) {
	noteRepo := newFakeNoteRepo()
	existing := &entity.Note{Id: uuid.New(), Title: "Old", Content: "Keep me"}
	noteRepo.notes = append(noteRepo.notes, existing)

	svc, pub := newNoteServiceForTest(noteRepo, newFakeIdempotencyRepo(), &fakeTaskValidator{})

	newTitle := "New"
	res, err := svc.Update(context.Background(), existing.Id, &dto.UpdateNoteRequest{Title: &newTitle})

	require.NoError(t, err)
	assert.Equal(t, "New", res.Title)
	assert.Equal(t, "Keep me", res.Content)
	assert.Len(t, pub.published, 1)
}

func TestUpdateMissingNote(t *testing.T) {
	svc, _ := newNoteServiceForTest(newFakeNoteRepo(), newFakeIdempotencyRepo(), &fakeTaskValidator{})

	_, err := svc.Update(context.Background(), uuid.New(), &dto.UpdateNoteRequest{})

	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestDelete(t *testing.T) {
	noteRepo := newFakeNoteRepo()
	existing := &entity.Note{Id: uuid.New(), Title: "Doomed", Content: "x"}
	noteRepo.notes = append(noteRepo.notes, existing)

	svc, _ := newNoteServiceForTest(noteRepo, newFakeIdempotencyRepo(), &fakeTaskValidator{})

	require.NoError(t, svc.Delete(context.Background(), existing.Id))
	assert.ErrorIs(t, svc.Delete(context.Background(), existing.Id), ErrNoteNotFound)
}

func TestListByTaskValidatesReference(t *testing.T) {
	validator := &fakeTaskValidator{err: ErrTaskNotFound}
	svc, _ := newNoteServiceForTest(newFakeNoteRepo(), newFakeIdempotencyRepo(), validator)

	_, err := svc.ListByTask(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.Equal(t, 1, validator.calls)
}
