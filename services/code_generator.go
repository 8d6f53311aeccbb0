package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/anjiri1684/exam_qr_masking/models"
	"github.com/google/uuid"
)

const maxGenerateAttempts = 3

type GenerateResult struct {
	Count int               `json:"count"`
	Codes []models.AnonCode `json:"codes"`
}

// GenerateCodes creates count unclaimed codes for an exam. A value collision
// fails the insert as a whole, so the batch is regenerated and retried.
func (s *GradingService) GenerateCodes(ctx context.Context, admin Admin, examID uuid.UUID, count int) (*GenerateResult, error) {
	if count < MinCodeBatch || count > MaxCodeBatch {
		return nil, ErrInvalidCount
	}
	if _, err := s.store.FindExam(ctx, examID); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		codes, err := s.newBatch(examID, count)
		if err != nil {
			return nil, err
		}
		err = s.store.CreateCodes(ctx, codes)
		if err == nil {
			log.Printf("✅ Admin %s generated %d code(s) for exam %s", admin.ID(), count, examID)
			return &GenerateResult{Count: len(codes), Codes: codes}, nil
		}
		if !errors.Is(err, ErrDuplicateCode) {
			return nil, fmt.Errorf("store codes: %w", err)
		}
		log.Printf("Code collision on attempt %d for exam %s, regenerating batch", attempt, examID)
	}
	return nil, fmt.Errorf("store codes: %w after %d attempts", ErrDuplicateCode, maxGenerateAttempts)
}

func (s *GradingService) newBatch(examID uuid.UUID, count int) ([]models.AnonCode, error) {
	seen := make(map[string]struct{}, count)
	codes := make([]models.AnonCode, 0, count)
	for draws := 0; len(codes) < count; draws++ {
		if draws >= 2*count+16 {
			return nil, fmt.Errorf("generate code value: %w", ErrDuplicateCode)
		}
		value, err := s.newCode()
		if err != nil {
			return nil, fmt.Errorf("generate code value: %w", err)
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		codes = append(codes, models.AnonCode{
			ID:        uuid.New(),
			CodeValue: value,
			ExamID:    examID,
		})
	}
	return codes, nil
}
