package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/anjiri1684/exam_qr_masking/models"
	"github.com/google/uuid"
)

// SubmitMark records a score against a claimed code. Re-grading overwrites
// the score of the existing entry.
func (s *GradingService) SubmitMark(ctx context.Context, marker Marker, examID uuid.UUID, codeValue string, score float64) (*models.MarkEntry, error) {
	codeValue = strings.TrimSpace(codeValue)
	if codeValue == "" {
		return nil, ErrCodeRequired
	}
	if math.IsNaN(score) || score < MinScore || score > MaxScore {
		return nil, ErrScoreOutOfRange
	}

	code, err := s.store.FindCode(ctx, examID, codeValue)
	if err != nil {
		return nil, err
	}
	if !code.Claimed() {
		return nil, ErrCodeNotClaimed
	}

	mark, err := s.store.UpsertMark(ctx, models.MarkEntry{
		ExamID:   examID,
		CodeID:   code.ID,
		Score:    score,
		MarkerID: marker.ID(),
	})
	if err != nil {
		return nil, fmt.Errorf("upsert mark: %w", err)
	}
	return mark, nil
}
