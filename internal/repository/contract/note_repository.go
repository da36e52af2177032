package contract

import (
	"context"

	"task-notes-be/internal/entity"
	"task-notes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	// UpdateFields merges the given columns into the row and returns the
	// post-update note, or nil if no row matched.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Note, error)
	// Delete reports whether a row matched the id.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
