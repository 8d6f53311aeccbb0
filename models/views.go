package models

import (
	"time"

	"github.com/google/uuid"
)

// Read-side shapes assembled from joins. None of these are persisted.

type RevealMapping struct {
	StudentName  string   `gorm:"column:student_name" json:"studentName"`
	StudentEmail string   `gorm:"column:student_email" json:"studentEmail"`
	QRCode       string   `gorm:"column:qr_code" json:"qrCode"`
	Score        *float64 `gorm:"column:score" json:"score"`
}

type ExamWithStats struct {
	ExamSession
	TotalCodes     int64 `json:"totalCodes"`
	ClaimedCodes   int64 `json:"claimedCodes"`
	UnclaimedCodes int64 `json:"unclaimedCodes"`
}

type StudentExam struct {
	ExamSession
	ClaimedCode *AnonCode `json:"claimedCode,omitempty"`
}

type StudentMark struct {
	ExamID     uuid.UUID `gorm:"column:exam_id" json:"examId"`
	CourseName string    `gorm:"column:course_name" json:"courseName"`
	Date       time.Time `gorm:"column:date" json:"date"`
	Duration   int       `gorm:"column:duration" json:"duration"`
	Score      float64   `gorm:"column:score" json:"score"`
}

// MarkView is a mark entry as shown to markers: the code value replaces the
// internal code id.
type MarkView struct {
	ID        uuid.UUID `gorm:"column:id" json:"id"`
	ExamID    uuid.UUID `gorm:"column:exam_id" json:"examId"`
	CodeValue string    `gorm:"column:code_value" json:"codeValue"`
	Score     float64   `gorm:"column:score" json:"score"`
	MarkerID  uuid.UUID `gorm:"column:marker_id" json:"markerId"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

type AdminStats struct {
	TotalExams     int64 `json:"totalExams"`
	ActiveExams    int64 `json:"activeExams"`
	TotalQRCodes   int64 `json:"totalQRCodes"`
	PendingReveals int64 `json:"pendingReveals"`
}
