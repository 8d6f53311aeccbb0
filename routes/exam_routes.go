package routes

import (
	"github.com/anjiri1684/exam_qr_masking/handlers"
	"github.com/anjiri1684/exam_qr_masking/middleware"
	"github.com/gofiber/fiber/v2"
)

func ExamRoutes(app *fiber.App, h *handlers.ExamHandler, opts Options) {
	api := app.Group("/api/v1")

	exams := api.Group("/exams", middleware.Protected(opts.JWTSecret))
	exams.Get("", h.ListExams)
	exams.Get("/:id", h.GetExam)

	exams.Post("", middleware.AdminRequired(), h.CreateExam)
	exams.Get("/:id/codes", middleware.AdminRequired(), h.ListCodes)
	exams.Post("/:id/generate-codes", middleware.AdminRequired(), h.GenerateCodes)
	exams.Get("/:id/download-pdf", middleware.AdminRequired(), h.DownloadPDF)
	exams.Post("/:id/archive-pdf", middleware.AdminRequired(), h.ArchivePDF)
	exams.Get("/:id/reveal", middleware.AdminRequired(), h.Reveal)
	exams.Get("/:id/export-csv", middleware.AdminRequired(), h.ExportCSV)
	exams.Post("/:id/archive-csv", middleware.AdminRequired(), h.ArchiveCSV)

	claim := []fiber.Handler{middleware.StudentRequired()}
	if opts.ClaimRateLimit > 0 {
		claim = append(claim, middleware.ClaimLimiter(opts.ClaimRateLimit))
	}
	claim = append(claim, h.ClaimCode)
	exams.Patch("/:id/claim-code", claim...)
}
