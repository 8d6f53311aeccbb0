package services

import (
	"context"
	"fmt"

	"github.com/anjiri1684/exam_qr_masking/models"
	"github.com/google/uuid"
)

// RevealMapping joins every claimed code of an exam to its student and score.
// Unclaimed codes never appear; ungraded ones carry a nil score.
func (s *GradingService) RevealMapping(ctx context.Context, admin Admin, examID uuid.UUID) ([]models.RevealMapping, error) {
	if _, err := s.store.FindExam(ctx, examID); err != nil {
		return nil, err
	}
	rows, err := s.store.RevealRows(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("reveal rows: %w", err)
	}
	for i := range rows {
		if rows[i].StudentName == "" {
			rows[i].StudentName = "Unknown"
		}
		if rows[i].StudentEmail == "" {
			rows[i].StudentEmail = "Unknown"
		}
	}
	if rows == nil {
		rows = []models.RevealMapping{}
	}
	return rows, nil
}
