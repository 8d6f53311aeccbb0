package services

import (
	"context"
	"time"

	"github.com/anjiri1684/exam_qr_masking/models"
	"github.com/google/uuid"
)

// CodeStore is what the grading core needs from persistence. Implementations
// must make ClaimCode a single compare-and-swap on assigned_to and UpsertMark
// a single create-or-update keyed by the unique code id.
type CodeStore interface {
	FindExam(ctx context.Context, examID uuid.UUID) (*models.ExamSession, error)
	// CreateCodes inserts all codes or none. A value collision yields ErrDuplicateCode.
	CreateCodes(ctx context.Context, codes []models.AnonCode) error
	FindCode(ctx context.Context, examID uuid.UUID, codeValue string) (*models.AnonCode, error)
	// FindClaim returns the code a student holds for an exam, or ErrCodeNotFound.
	FindClaim(ctx context.Context, examID, studentID uuid.UUID) (*models.AnonCode, error)
	// ClaimCode reports false when the code was already assigned. A storage-level
	// one-code-per-student violation yields ErrAlreadyHasCode.
	ClaimCode(ctx context.Context, codeID, studentID uuid.UUID, at time.Time) (bool, error)
	UpsertMark(ctx context.Context, mark models.MarkEntry) (*models.MarkEntry, error)
	RevealRows(ctx context.Context, examID uuid.UUID) ([]models.RevealMapping, error)
}

type UserStore interface {
	// CreateUser yields ErrEmailTaken on a duplicate email.
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type ExamStore interface {
	CreateExam(ctx context.Context, exam *models.ExamSession) error
	ListExams(ctx context.Context) ([]models.ExamWithStats, error)
	ListCodes(ctx context.Context, examID uuid.UUID) ([]models.AnonCode, error)
	ListStudentExams(ctx context.Context, studentID uuid.UUID, since time.Time) ([]models.StudentExam, error)
	ListStudentMarks(ctx context.Context, studentID uuid.UUID) ([]models.StudentMark, error)
	// ListMarks filters by marker when markerID is not nil.
	ListMarks(ctx context.Context, examID uuid.UUID, markerID *uuid.UUID) ([]models.MarkView, error)
	Stats(ctx context.Context, activeSince time.Time) (*models.AdminStats, error)
}

type Store interface {
	CodeStore
	UserStore
	ExamStore
}
