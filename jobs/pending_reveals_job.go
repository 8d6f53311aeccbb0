package jobs

import (
	"context"
	"log"
	"time"

	"github.com/anjiri1684/exam_qr_masking/models"
)

type statsSource interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
}

// ReportPendingReveals logs how many exams still have claimed but ungraded
// scripts.
func ReportPendingReveals(src statsSource) func() {
	return func() {
		log.Println("Running job: ReportPendingReveals...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		stats, err := src.Stats(ctx)
		if err != nil {
			log.Printf("Error computing pending reveals: %v", err)
			return
		}
		if stats.PendingReveals == 0 {
			log.Println("No exams with pending reveals.")
			return
		}
		log.Printf("%d exam(s) have claimed codes awaiting marks.", stats.PendingReveals)
	}
}
