package service

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrInvalidReference marks a malformed reference identifier. Always a
	// client error, never conflated with "not found".
	ErrInvalidReference = errors.New("invalid reference identifier")
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskUnavailable  = errors.New("task validation unavailable")
	ErrNoteNotFound     = errors.New("note not found")
)

// ParseReference parses an opaque reference identifier, tagging malformed
// input with ErrInvalidReference so every consumer can branch on it.
func ParseReference(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrInvalidReference
	}
	return id, nil
}
