package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/anjiri1684/exam_qr_masking/models"
	"github.com/anjiri1684/exam_qr_masking/services"
	"github.com/google/uuid"
)

// MemoryStore keeps everything in maps behind one RWMutex. Writers take the
// exclusive lock, so the claim check-and-set and the mark upsert are atomic.
type MemoryStore struct {
	mu sync.RWMutex

	users     map[uuid.UUID]models.User
	emails    map[string]uuid.UUID
	exams     map[uuid.UUID]models.ExamSession
	codes     []*models.AnonCode
	codeByVal map[string]*models.AnonCode
	marks     map[uuid.UUID]*models.MarkEntry // by code id
	markOrder []uuid.UUID
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[uuid.UUID]models.User),
		emails:    make(map[string]uuid.UUID),
		exams:     make(map[uuid.UUID]models.ExamSession),
		codeByVal: make(map[string]*models.AnonCode),
		marks:     make(map[uuid.UUID]*models.MarkEntry),
		now:       time.Now,
	}
}

var _ services.Store = (*MemoryStore)(nil)

func (s *MemoryStore) FindExam(ctx context.Context, examID uuid.UUID) (*models.ExamSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exam, ok := s.exams[examID]
	if !ok {
		return nil, services.ErrExamNotFound
	}
	return &exam, nil
}

func (s *MemoryStore) CreateCodes(ctx context.Context, codes []models.AnonCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if _, ok := s.codeByVal[c.CodeValue]; ok {
			return services.ErrDuplicateCode
		}
		if _, ok := seen[c.CodeValue]; ok {
			return services.ErrDuplicateCode
		}
		seen[c.CodeValue] = struct{}{}
	}

	now := s.now()
	for i := range codes {
		if codes[i].ID == uuid.Nil {
			codes[i].ID = uuid.New()
		}
		codes[i].CreatedAt = now
		c := codes[i]
		s.codes = append(s.codes, &c)
		s.codeByVal[c.CodeValue] = &c
	}
	return nil
}

func (s *MemoryStore) FindCode(ctx context.Context, examID uuid.UUID, codeValue string) (*models.AnonCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.codeByVal[codeValue]
	if !ok || c.ExamID != examID {
		return nil, services.ErrCodeNotFound
	}
	out := *c
	return &out, nil
}

func (s *MemoryStore) FindClaim(ctx context.Context, examID, studentID uuid.UUID) (*models.AnonCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c := s.claimLocked(examID, studentID); c != nil {
		out := *c
		return &out, nil
	}
	return nil, services.ErrCodeNotFound
}

func (s *MemoryStore) claimLocked(examID, studentID uuid.UUID) *models.AnonCode {
	for _, c := range s.codes {
		if c.ExamID == examID && c.AssignedTo != nil && *c.AssignedTo == studentID {
			return c
		}
	}
	return nil
}

func (s *MemoryStore) ClaimCode(ctx context.Context, codeID, studentID uuid.UUID, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target *models.AnonCode
	for _, c := range s.codes {
		if c.ID == codeID {
			target = c
			break
		}
	}
	if target == nil || target.AssignedTo != nil {
		return false, nil
	}
	if s.claimLocked(target.ExamID, studentID) != nil {
		return false, services.ErrAlreadyHasCode
	}

	id := studentID
	ts := at
	target.AssignedTo = &id
	target.AssignedAt = &ts
	return true, nil
}

func (s *MemoryStore) UpsertMark(ctx context.Context, mark models.MarkEntry) (*models.MarkEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if existing, ok := s.marks[mark.CodeID]; ok {
		existing.Score = mark.Score
		existing.UpdatedAt = now
		out := *existing
		return &out, nil
	}

	if mark.ID == uuid.Nil {
		mark.ID = uuid.New()
	}
	mark.CreatedAt = now
	mark.UpdatedAt = now
	m := mark
	s.marks[mark.CodeID] = &m
	s.markOrder = append(s.markOrder, mark.CodeID)
	return &mark, nil
}

func (s *MemoryStore) RevealRows(ctx context.Context, examID uuid.UUID) ([]models.RevealMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var claimed []*models.AnonCode
	for _, c := range s.codes {
		if c.ExamID == examID && c.AssignedTo != nil {
			claimed = append(claimed, c)
		}
	}
	sort.SliceStable(claimed, func(i, j int) bool {
		a, b := claimed[i], claimed[j]
		if !a.AssignedAt.Equal(*b.AssignedAt) {
			return a.AssignedAt.Before(*b.AssignedAt)
		}
		return a.CodeValue < b.CodeValue
	})

	rows := make([]models.RevealMapping, 0, len(claimed))
	for _, c := range claimed {
		row := models.RevealMapping{QRCode: c.CodeValue}
		if u, ok := s.users[*c.AssignedTo]; ok {
			row.StudentName = u.Name
			row.StudentEmail = u.Email
		}
		if m, ok := s.marks[c.ID]; ok {
			score := m.Score
			row.Score = &score
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.emails[user.Email]; ok {
		return services.ErrEmailTaken
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := s.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	s.emails[user.Email] = user.ID
	return nil
}

func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[email]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *MemoryStore) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	return &u, nil
}

func (s *MemoryStore) CreateExam(ctx context.Context, exam *models.ExamSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if exam.ID == uuid.Nil {
		exam.ID = uuid.New()
	}
	exam.CreatedAt = s.now()
	s.exams[exam.ID] = *exam
	return nil
}

func (s *MemoryStore) sortedExams(keep func(models.ExamSession) bool) []models.ExamSession {
	out := make([]models.ExamSession, 0, len(s.exams))
	for _, e := range s.exams {
		if keep == nil || keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (s *MemoryStore) ListExams(ctx context.Context) ([]models.ExamWithStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ExamWithStats, 0, len(s.exams))
	for _, e := range s.sortedExams(nil) {
		st := models.ExamWithStats{ExamSession: e}
		for _, c := range s.codes {
			if c.ExamID != e.ID {
				continue
			}
			st.TotalCodes++
			if c.AssignedTo != nil {
				st.ClaimedCodes++
			}
		}
		st.UnclaimedCodes = st.TotalCodes - st.ClaimedCodes
		out = append(out, st)
	}
	return out, nil
}

func (s *MemoryStore) ListCodes(ctx context.Context, examID uuid.UUID) ([]models.AnonCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.AnonCode
	for _, c := range s.codes {
		if c.ExamID == examID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListStudentExams(ctx context.Context, studentID uuid.UUID, since time.Time) ([]models.StudentExam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exams := s.sortedExams(func(e models.ExamSession) bool { return !e.Date.Before(since) })
	out := make([]models.StudentExam, 0, len(exams))
	for _, e := range exams {
		se := models.StudentExam{ExamSession: e}
		if c := s.claimLocked(e.ID, studentID); c != nil {
			cp := *c
			se.ClaimedCode = &cp
		}
		out = append(out, se)
	}
	return out, nil
}

func (s *MemoryStore) ListStudentMarks(ctx context.Context, studentID uuid.UUID) ([]models.StudentMark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.StudentMark
	for _, c := range s.codes {
		if c.AssignedTo == nil || *c.AssignedTo != studentID {
			continue
		}
		m, ok := s.marks[c.ID]
		if !ok {
			continue
		}
		e := s.exams[c.ExamID]
		out = append(out, models.StudentMark{
			ExamID:     e.ID,
			CourseName: e.CourseName,
			Date:       e.Date,
			Duration:   e.Duration,
			Score:      m.Score,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *MemoryStore) ListMarks(ctx context.Context, examID uuid.UUID, markerID *uuid.UUID) ([]models.MarkView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make(map[uuid.UUID]string, len(s.codes))
	for _, c := range s.codes {
		values[c.ID] = c.CodeValue
	}

	var out []models.MarkView
	for i := len(s.markOrder) - 1; i >= 0; i-- {
		m := s.marks[s.markOrder[i]]
		if m.ExamID != examID || (markerID != nil && m.MarkerID != *markerID) {
			continue
		}
		out = append(out, models.MarkView{
			ID:        m.ID,
			ExamID:    m.ExamID,
			CodeValue: values[m.CodeID],
			Score:     m.Score,
			MarkerID:  m.MarkerID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return out, nil
}

func (s *MemoryStore) Stats(ctx context.Context, activeSince time.Time) (*models.AdminStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.AdminStats{
		TotalExams:   int64(len(s.exams)),
		TotalQRCodes: int64(len(s.codes)),
	}
	claimed := make(map[uuid.UUID]int)
	graded := make(map[uuid.UUID]int)
	for _, c := range s.codes {
		if c.AssignedTo != nil {
			claimed[c.ExamID]++
		}
	}
	for _, m := range s.marks {
		graded[m.ExamID]++
	}
	for id, e := range s.exams {
		if !e.Date.Before(activeSince) {
			stats.ActiveExams++
		}
		if claimed[id] > graded[id] {
			stats.PendingReveals++
		}
	}
	return stats, nil
}
