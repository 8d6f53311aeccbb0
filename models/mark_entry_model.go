package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MarkEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ExamID    uuid.UUID `gorm:"type:uuid;not null;index" json:"examId"`
	CodeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"codeId"`
	Score     float64   `gorm:"not null" json:"score"`
	MarkerID  uuid.UUID `gorm:"type:uuid;not null" json:"markerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *MarkEntry) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
