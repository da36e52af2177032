package entity

import (
	"time"

	"github.com/google/uuid"
)

type TaskSnapshot struct {
	TaskId      uuid.UUID
	Title       string
	Description string
	Owner       string
	Status      string
	Raw         []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
	FetchedAt   time.Time
}
