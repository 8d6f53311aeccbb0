package routes

import (
	"github.com/anjiri1684/exam_qr_masking/handlers"
	"github.com/anjiri1684/exam_qr_masking/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App, h *handlers.AdminHandler, opts Options) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(opts.JWTSecret), middleware.AdminRequired())
	admin.Get("/stats", h.Stats)
}

func DashboardRoutes(app *fiber.App, h *handlers.DashboardHandler, opts Options) {
	ws := app.Group("/ws", middleware.Protected(opts.JWTSecret), middleware.AdminRequired())
	ws.Get("/admin", h.RequireUpgrade, h.Stream())
}
