package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anjiri1684/exam_qr_masking/models"
	"github.com/anjiri1684/exam_qr_masking/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const codeInsertBatch = 100

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ services.Store = (*GormStore)(nil)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate") || strings.Contains(low, "unique")
}

func (s *GormStore) FindExam(ctx context.Context, examID uuid.UUID) (*models.ExamSession, error) {
	var exam models.ExamSession
	if err := s.db.WithContext(ctx).First(&exam, "id = ?", examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrExamNotFound
		}
		return nil, err
	}
	return &exam, nil
}

func (s *GormStore) CreateCodes(ctx context.Context, codes []models.AnonCode) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&codes, codeInsertBatch).Error
	})
	if err != nil && isUniqueViolation(err) {
		return services.ErrDuplicateCode
	}
	return err
}

func (s *GormStore) FindCode(ctx context.Context, examID uuid.UUID, codeValue string) (*models.AnonCode, error) {
	var code models.AnonCode
	err := s.db.WithContext(ctx).
		Where("exam_id = ? AND code_value = ?", examID, codeValue).
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrCodeNotFound
		}
		return nil, err
	}
	return &code, nil
}

func (s *GormStore) FindClaim(ctx context.Context, examID, studentID uuid.UUID) (*models.AnonCode, error) {
	var code models.AnonCode
	err := s.db.WithContext(ctx).
		Where("exam_id = ? AND assigned_to = ?", examID, studentID).
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrCodeNotFound
		}
		return nil, err
	}
	return &code, nil
}

func (s *GormStore) ClaimCode(ctx context.Context, codeID, studentID uuid.UUID, at time.Time) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.AnonCode{}).
		Where("id = ? AND assigned_to IS NULL", codeID).
		Updates(map[string]interface{}{
			"assigned_to": studentID,
			"assigned_at": at,
		})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return false, services.ErrAlreadyHasCode
		}
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *GormStore) UpsertMark(ctx context.Context, mark models.MarkEntry) (*models.MarkEntry, error) {
	db := s.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":      mark.Score,
			"updated_at": time.Now(),
		}),
	}).Create(&mark).Error
	if err != nil {
		return nil, err
	}

	var out models.MarkEntry
	if err := db.First(&out, "code_id = ?", mark.CodeID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *GormStore) RevealRows(ctx context.Context, examID uuid.UUID) ([]models.RevealMapping, error) {
	var rows []models.RevealMapping
	err := s.db.WithContext(ctx).
		Table("anon_codes").
		Select("COALESCE(users.name, '') AS student_name, COALESCE(users.email, '') AS student_email, anon_codes.code_value AS qr_code, mark_entries.score AS score").
		Joins("LEFT JOIN users ON users.id = anon_codes.assigned_to").
		Joins("LEFT JOIN mark_entries ON mark_entries.code_id = anon_codes.id").
		Where("anon_codes.exam_id = ? AND anon_codes.assigned_to IS NOT NULL", examID).
		Order("anon_codes.assigned_at ASC, anon_codes.code_value ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	var count int64
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return services.ErrEmailTaken
	}
	if err := db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return services.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, "email = ?", email)
}

func (s *GormStore) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.findUser(ctx, "id = ?", id)
}

func (s *GormStore) findUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) CreateExam(ctx context.Context, exam *models.ExamSession) error {
	return s.db.WithContext(ctx).Create(exam).Error
}

type codeCount struct {
	ExamID  uuid.UUID `gorm:"column:exam_id"`
	Total   int64     `gorm:"column:total"`
	Claimed int64     `gorm:"column:claimed"`
}

func (s *GormStore) ListExams(ctx context.Context) ([]models.ExamWithStats, error) {
	db := s.db.WithContext(ctx)

	var exams []models.ExamSession
	if err := db.Order("date DESC").Find(&exams).Error; err != nil {
		return nil, err
	}

	var counts []codeCount
	err := db.Table("anon_codes").
		Select("exam_id, COUNT(*) AS total, COUNT(assigned_to) AS claimed").
		Group("exam_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	byExam := make(map[uuid.UUID]codeCount, len(counts))
	for _, c := range counts {
		byExam[c.ExamID] = c
	}

	out := make([]models.ExamWithStats, 0, len(exams))
	for _, e := range exams {
		c := byExam[e.ID]
		out = append(out, models.ExamWithStats{
			ExamSession:    e,
			TotalCodes:     c.Total,
			ClaimedCodes:   c.Claimed,
			UnclaimedCodes: c.Total - c.Claimed,
		})
	}
	return out, nil
}

func (s *GormStore) ListCodes(ctx context.Context, examID uuid.UUID) ([]models.AnonCode, error) {
	var codes []models.AnonCode
	err := s.db.WithContext(ctx).
		Where("exam_id = ?", examID).
		Order("created_at ASC, code_value ASC").
		Find(&codes).Error
	return codes, err
}

func (s *GormStore) ListStudentExams(ctx context.Context, studentID uuid.UUID, since time.Time) ([]models.StudentExam, error) {
	db := s.db.WithContext(ctx)

	var exams []models.ExamSession
	if err := db.Where("date >= ?", since).Order("date DESC").Find(&exams).Error; err != nil {
		return nil, err
	}

	var claims []models.AnonCode
	if err := db.Where("assigned_to = ?", studentID).Find(&claims).Error; err != nil {
		return nil, err
	}
	byExam := make(map[uuid.UUID]models.AnonCode, len(claims))
	for _, c := range claims {
		byExam[c.ExamID] = c
	}

	out := make([]models.StudentExam, 0, len(exams))
	for _, e := range exams {
		se := models.StudentExam{ExamSession: e}
		if c, ok := byExam[e.ID]; ok {
			c := c
			se.ClaimedCode = &c
		}
		out = append(out, se)
	}
	return out, nil
}

func (s *GormStore) ListStudentMarks(ctx context.Context, studentID uuid.UUID) ([]models.StudentMark, error) {
	var marks []models.StudentMark
	err := s.db.WithContext(ctx).
		Table("mark_entries").
		Select("exam_sessions.id AS exam_id, exam_sessions.course_name AS course_name, exam_sessions.date AS date, exam_sessions.duration AS duration, mark_entries.score AS score").
		Joins("JOIN anon_codes ON anon_codes.id = mark_entries.code_id").
		Joins("JOIN exam_sessions ON exam_sessions.id = mark_entries.exam_id").
		Where("anon_codes.assigned_to = ?", studentID).
		Order("exam_sessions.date DESC").
		Scan(&marks).Error
	if err != nil {
		return nil, err
	}
	return marks, nil
}

func (s *GormStore) ListMarks(ctx context.Context, examID uuid.UUID, markerID *uuid.UUID) ([]models.MarkView, error) {
	q := s.db.WithContext(ctx).
		Table("mark_entries").
		Select("mark_entries.id, mark_entries.exam_id, anon_codes.code_value, mark_entries.score, mark_entries.marker_id, mark_entries.created_at, mark_entries.updated_at").
		Joins("JOIN anon_codes ON anon_codes.id = mark_entries.code_id").
		Where("mark_entries.exam_id = ?", examID)
	if markerID != nil {
		q = q.Where("mark_entries.marker_id = ?", *markerID)
	}

	var marks []models.MarkView
	if err := q.Order("mark_entries.created_at DESC").Scan(&marks).Error; err != nil {
		return nil, err
	}
	return marks, nil
}

func (s *GormStore) Stats(ctx context.Context, activeSince time.Time) (*models.AdminStats, error) {
	db := s.db.WithContext(ctx)
	var stats models.AdminStats

	if err := db.Model(&models.ExamSession{}).Count(&stats.TotalExams).Error; err != nil {
		return nil, fmt.Errorf("count exams: %w", err)
	}
	if err := db.Model(&models.ExamSession{}).Where("date >= ?", activeSince).Count(&stats.ActiveExams).Error; err != nil {
		return nil, fmt.Errorf("count active exams: %w", err)
	}
	if err := db.Model(&models.AnonCode{}).Count(&stats.TotalQRCodes).Error; err != nil {
		return nil, fmt.Errorf("count codes: %w", err)
	}
	err := db.Raw(`SELECT COUNT(*) FROM exam_sessions e
		WHERE (SELECT COUNT(*) FROM anon_codes c WHERE c.exam_id = e.id AND c.assigned_to IS NOT NULL)
		    > (SELECT COUNT(*) FROM mark_entries m WHERE m.exam_id = e.id)`).
		Scan(&stats.PendingReveals).Error
	if err != nil {
		return nil, fmt.Errorf("count pending reveals: %w", err)
	}
	return &stats, nil
}
