package routes

import (
	"github.com/anjiri1684/exam_qr_masking/handlers"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Exams     *handlers.ExamHandler
	Marks     *handlers.MarkHandler
	Students  *handlers.StudentHandler
	Admin     *handlers.AdminHandler
	Dashboard *handlers.DashboardHandler
}

type Options struct {
	JWTSecret      []byte
	ClaimRateLimit int
}

func Register(app *fiber.App, h Handlers, opts Options) {
	AuthRoutes(app, h.Auth, opts)
	ExamRoutes(app, h.Exams, opts)
	MarkRoutes(app, h.Marks, opts)
	StudentRoutes(app, h.Students, opts)
	AdminRoutes(app, h.Admin, opts)
	if h.Dashboard != nil {
		DashboardRoutes(app, h.Dashboard, opts)
	}
}
