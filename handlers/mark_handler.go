package handlers

import (
	"github.com/anjiri1684/exam_qr_masking/models"
	"github.com/anjiri1684/exam_qr_masking/services"
	hub "github.com/anjiri1684/exam_qr_masking/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MarkHandler struct {
	exams   *services.ExamService
	grading *services.GradingService
	hub     *hub.Hub
}

func NewMarkHandler(exams *services.ExamService, grading *services.GradingService, h *hub.Hub) *MarkHandler {
	return &MarkHandler{exams: exams, grading: grading, hub: h}
}

type SubmitMarkRequest struct {
	ExamID string   `json:"examId" validate:"required,uuid"`
	QRCode string   `json:"qrCode" validate:"required"`
	Score  *float64 `json:"score" validate:"required"`
}

func (h *MarkHandler) SubmitMark(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	marker, err := services.AsMarker(p)
	if err != nil {
		return respondError(c, err)
	}

	var req SubmitMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Missing required fields")
	}
	examID := uuid.MustParse(req.ExamID)

	mark, err := h.grading.SubmitMark(c.UserContext(), marker, examID, req.QRCode, *req.Score)
	if err != nil {
		return respondError(c, err)
	}

	h.hub.Publish(hub.Event{Type: hub.EventMarkRecorded, ExamID: examID})
	return c.JSON(mark)
}

func (h *MarkHandler) ListMarks(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	examID, ok := uuidParam(c, "examId")
	if !ok {
		return respondError(c, services.ErrExamNotFound)
	}

	marks, err := h.exams.ListMarks(c.UserContext(), p, examID)
	if err != nil {
		return respondError(c, err)
	}
	if marks == nil {
		marks = []models.MarkView{}
	}
	return c.JSON(marks)
}
