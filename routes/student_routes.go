package routes

import (
	"github.com/anjiri1684/exam_qr_masking/handlers"
	"github.com/anjiri1684/exam_qr_masking/middleware"
	"github.com/gofiber/fiber/v2"
)

func StudentRoutes(app *fiber.App, h *handlers.StudentHandler, opts Options) {
	api := app.Group("/api/v1")

	student := api.Group("/student", middleware.Protected(opts.JWTSecret), middleware.StudentRequired())
	student.Get("/exams", h.Exams)
	student.Get("/marks", h.Marks)
}
