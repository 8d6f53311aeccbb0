package services

import (
	"context"
	"time"

	"github.com/anjiri1684/exam_qr_masking/models"
	"github.com/google/uuid"
)

// ActiveWindow is how far back an exam date may lie and still count as
// active on dashboards.
const ActiveWindow = 7 * 24 * time.Hour

type ExamService struct {
	store Store
	now   func() time.Time
}

func NewExamService(store Store) *ExamService {
	return &ExamService{store: store, now: time.Now}
}

type CreateExamInput struct {
	CourseName string
	Date       time.Time
	Duration   int
}

func (s *ExamService) CreateExam(ctx context.Context, admin Admin, in CreateExamInput) (*models.ExamSession, error) {
	duration := in.Duration
	if duration <= 0 {
		duration = models.DefaultExamDuration
	}
	exam := &models.ExamSession{
		CourseName: in.CourseName,
		Date:       in.Date,
		Duration:   duration,
	}
	if err := s.store.CreateExam(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) GetExam(ctx context.Context, id uuid.UUID) (*models.ExamSession, error) {
	return s.store.FindExam(ctx, id)
}

func (s *ExamService) ListExams(ctx context.Context) ([]models.ExamWithStats, error) {
	return s.store.ListExams(ctx)
}

func (s *ExamService) ListCodes(ctx context.Context, examID uuid.UUID) ([]models.AnonCode, error) {
	if _, err := s.store.FindExam(ctx, examID); err != nil {
		return nil, err
	}
	return s.store.ListCodes(ctx, examID)
}

func (s *ExamService) StudentExams(ctx context.Context, student Student) ([]models.StudentExam, error) {
	return s.store.ListStudentExams(ctx, student.ID(), s.now().Add(-ActiveWindow))
}

func (s *ExamService) StudentMarks(ctx context.Context, student Student) ([]models.StudentMark, error) {
	return s.store.ListStudentMarks(ctx, student.ID())
}

// ListMarks shows markers only their own entries; admins see all of them.
func (s *ExamService) ListMarks(ctx context.Context, p Principal, examID uuid.UUID) ([]models.MarkView, error) {
	switch p.Role {
	case models.RoleAdmin:
		return s.store.ListMarks(ctx, examID, nil)
	case models.RoleMarker:
		id := p.UserID
		return s.store.ListMarks(ctx, examID, &id)
	}
	return nil, ErrForbidden
}

func (s *ExamService) Stats(ctx context.Context) (*models.AdminStats, error) {
	return s.store.Stats(ctx, s.now().Add(-ActiveWindow))
}
