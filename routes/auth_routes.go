package routes

import (
	"github.com/anjiri1684/exam_qr_masking/handlers"
	"github.com/anjiri1684/exam_qr_masking/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, h *handlers.AuthHandler, opts Options) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)

	api.Get("/user", middleware.Protected(opts.JWTSecret), h.Me)
}
