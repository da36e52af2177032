package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateNoteRequest accepts both field spellings: the canonical English ones
// and the Portuguese aliases the legacy frontend still sends.
type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	TaskId  string `json:"task_id"`

	Titulo   string `json:"titulo"`
	Conteudo string `json:"conteudo"`
	TarefaId string `json:"tarefa_id"`
}

// Normalize folds the alias spellings into the canonical fields. Canonical
// fields win when both are present.
func (r *CreateNoteRequest) Normalize() {
	if r.Title == "" {
		r.Title = r.Titulo
	}
	if r.Content == "" {
		r.Content = r.Conteudo
	}
	if r.TaskId == "" {
		r.TaskId = r.TarefaId
	}
}

type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`

	Titulo   *string `json:"titulo"`
	Conteudo *string `json:"conteudo"`
}

func (r *UpdateNoteRequest) Normalize() {
	if r.Title == nil {
		r.Title = r.Titulo
	}
	if r.Content == nil {
		r.Content = r.Conteudo
	}
}

type NoteResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	TaskId    *uuid.UUID `json:"task_id,omitempty"`
	Author    *string    `json:"author,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateNoteResult carries the exact response body so an idempotent replay
// can return it verbatim.
type CreateNoteResult struct {
	Body     []byte
	Replayed bool
}

// NoteAuditMessage is the payload published on the in-process audit topic.
type NoteAuditMessage struct {
	Action string     `json:"action"`
	NoteId uuid.UUID  `json:"note_id"`
	Author *string    `json:"author,omitempty"`
	At     time.Time  `json:"at"`
	TaskId *uuid.UUID `json:"task_id,omitempty"`
}
