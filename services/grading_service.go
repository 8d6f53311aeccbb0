package services

import (
	"time"

	"github.com/anjiri1684/exam_qr_masking/utils"
)

const (
	MinCodeBatch = 1
	MaxCodeBatch = 500

	MinScore = 0
	MaxScore = 100
)

// GradingService owns the anonymous code lifecycle: generation, claiming,
// marking and reveal.
type GradingService struct {
	store   CodeStore
	now     func() time.Time
	newCode func() (string, error)
}

type Option func(*GradingService)

func WithClock(now func() time.Time) Option {
	return func(s *GradingService) { s.now = now }
}

func WithCodeSource(fn func() (string, error)) Option {
	return func(s *GradingService) { s.newCode = fn }
}

func NewGradingService(store CodeStore, opts ...Option) *GradingService {
	s := &GradingService{
		store:   store,
		now:     time.Now,
		newCode: utils.GenerateCodeValue,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
