package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anjiri1684/exam_qr_masking/models"
	"github.com/google/uuid"
)

// ClaimCode binds a student to a code. The decisive step is the store's
// conditional update; the reads before it only produce friendlier errors.
func (s *GradingService) ClaimCode(ctx context.Context, student Student, examID uuid.UUID, codeValue string) (*models.AnonCode, error) {
	codeValue = strings.TrimSpace(codeValue)
	if codeValue == "" {
		return nil, ErrCodeRequired
	}

	code, err := s.store.FindCode(ctx, examID, codeValue)
	if err != nil {
		return nil, err
	}
	if code.Claimed() {
		return nil, ErrAlreadyClaimed
	}

	if _, err := s.store.FindClaim(ctx, examID, student.ID()); err == nil {
		return nil, ErrAlreadyHasCode
	} else if !errors.Is(err, ErrCodeNotFound) {
		return nil, fmt.Errorf("look up prior claim: %w", err)
	}

	now := s.now()
	ok, err := s.store.ClaimCode(ctx, code.ID, student.ID(), now)
	if err != nil {
		if errors.Is(err, ErrAlreadyHasCode) {
			return nil, err
		}
		return nil, fmt.Errorf("claim code: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyClaimed
	}

	studentID := student.ID()
	code.AssignedTo = &studentID
	code.AssignedAt = &now
	return code, nil
}
