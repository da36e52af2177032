package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID
	Title     string
	Content   string
	TaskId    *uuid.UUID
	Author    *string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
