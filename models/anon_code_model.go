package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnonCode is the opaque token a student scans to take part in an exam
// anonymously. AssignedTo moves from nil to a student exactly once.
//
// The composite unique index only bites on claimed rows because NULLs are
// distinct, which limits each student to one code per exam.
type AnonCode struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CodeValue  string     `gorm:"size:64;not null;uniqueIndex" json:"codeValue"`
	ExamID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_anon_codes_exam_student,priority:1" json:"examId"`
	AssignedTo *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_anon_codes_exam_student,priority:2" json:"assignedTo"`
	AssignedAt *time.Time `json:"assignedAt"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (a *AnonCode) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *AnonCode) Claimed() bool {
	return a.AssignedTo != nil
}
