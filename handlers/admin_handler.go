package handlers

import (
	"github.com/anjiri1684/exam_qr_masking/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	exams *services.ExamService
}

func NewAdminHandler(exams *services.ExamService) *AdminHandler {
	return &AdminHandler{exams: exams}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.exams.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
