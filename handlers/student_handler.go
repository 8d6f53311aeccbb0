package handlers

import (
	"github.com/anjiri1684/exam_qr_masking/models"
	"github.com/anjiri1684/exam_qr_masking/services"
	"github.com/gofiber/fiber/v2"
)

type StudentHandler struct {
	exams *services.ExamService
}

func NewStudentHandler(exams *services.ExamService) *StudentHandler {
	return &StudentHandler{exams: exams}
}

func (h *StudentHandler) student(c *fiber.Ctx) (services.Student, error) {
	p, err := principal(c)
	if err != nil {
		return services.Student{}, err
	}
	return services.AsStudent(p)
}

func (h *StudentHandler) Exams(c *fiber.Ctx) error {
	student, err := h.student(c)
	if err != nil {
		return respondError(c, err)
	}
	exams, err := h.exams.StudentExams(c.UserContext(), student)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(exams)
}

func (h *StudentHandler) Marks(c *fiber.Ctx) error {
	student, err := h.student(c)
	if err != nil {
		return respondError(c, err)
	}
	marks, err := h.exams.StudentMarks(c.UserContext(), student)
	if err != nil {
		return respondError(c, err)
	}
	if marks == nil {
		marks = []models.StudentMark{}
	}
	return c.JSON(marks)
}
