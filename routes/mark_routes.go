package routes

import (
	"github.com/anjiri1684/exam_qr_masking/handlers"
	"github.com/anjiri1684/exam_qr_masking/middleware"
	"github.com/anjiri1684/exam_qr_masking/models"
	"github.com/gofiber/fiber/v2"
)

func MarkRoutes(app *fiber.App, h *handlers.MarkHandler, opts Options) {
	api := app.Group("/api/v1")

	marks := api.Group("/marks", middleware.Protected(opts.JWTSecret))
	marks.Post("", middleware.MarkerRequired(), h.SubmitMark)
	marks.Get("/:examId", middleware.RoleRequired(models.RoleMarker, models.RoleAdmin), h.ListMarks)
}
