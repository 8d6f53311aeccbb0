package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultExamDuration = 180

type ExamSession struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CourseName string    `gorm:"size:255;not null" json:"courseName"`
	Date       time.Time `gorm:"not null;index" json:"date"`
	Duration   int       `gorm:"not null;default:180" json:"duration"` // minutes
	CreatedAt  time.Time `json:"createdAt"`
}

func (e *ExamSession) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
