package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string     `gorm:"type:varchar(255);not null"`
	Content   string     `gorm:"type:text;not null"`
	TaskId    *uuid.UUID `gorm:"type:uuid;index"`
	Author    *string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
