package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/exam_qr_masking/models"
	"github.com/anjiri1684/exam_qr_masking/notifications"
	"github.com/anjiri1684/exam_qr_masking/reports"
	"github.com/anjiri1684/exam_qr_masking/services"
	hub "github.com/anjiri1684/exam_qr_masking/websocket"
	"github.com/gofiber/fiber/v2"
)

type ExamHandler struct {
	exams    *services.ExamService
	grading  *services.GradingService
	hub      *hub.Hub
	renderer reports.PDFRenderer
	archiver *services.Archiver
}

func NewExamHandler(exams *services.ExamService, grading *services.GradingService, h *hub.Hub, renderer reports.PDFRenderer, archiver *services.Archiver) *ExamHandler {
	return &ExamHandler{exams: exams, grading: grading, hub: h, renderer: renderer, archiver: archiver}
}

type CreateExamRequest struct {
	CourseName string `json:"courseName" validate:"required"`
	Date       string `json:"date" validate:"required"`
	Duration   int    `json:"duration" validate:"omitempty,gt=0"`
}

type GenerateCodesRequest struct {
	Count int `json:"count"`
}

type ClaimCodeRequest struct {
	CodeValue string `json:"codeValue"`
}

var examDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func parseExamDate(s string) (time.Time, error) {
	for _, layout := range examDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func (h *ExamHandler) CreateExam(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	admin, err := services.AsAdmin(p)
	if err != nil {
		return respondError(c, err)
	}

	var req CreateExamRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	date, err := parseExamDate(req.Date)
	if err != nil {
		return badRequest(c, err.Error())
	}

	exam, err := h.exams.CreateExam(c.UserContext(), admin, services.CreateExamInput{
		CourseName: req.CourseName,
		Date:       date,
		Duration:   req.Duration,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(exam)
}

func (h *ExamHandler) ListExams(c *fiber.Ctx) error {
	exams, err := h.exams.ListExams(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(exams)
}

func (h *ExamHandler) GetExam(c *fiber.Ctx) error {
	id, ok := uuidParam(c, "id")
	if !ok {
		return respondError(c, services.ErrExamNotFound)
	}
	exam, err := h.exams.GetExam(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(exam)
}

func (h *ExamHandler) ListCodes(c *fiber.Ctx) error {
	id, ok := uuidParam(c, "id")
	if !ok {
		return respondError(c, services.ErrExamNotFound)
	}
	codes, err := h.exams.ListCodes(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if codes == nil {
		codes = []models.AnonCode{}
	}
	return c.JSON(codes)
}

func (h *ExamHandler) GenerateCodes(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	admin, err := services.AsAdmin(p)
	if err != nil {
		return respondError(c, err)
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return respondError(c, services.ErrExamNotFound)
	}

	var req GenerateCodesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}

	res, err := h.grading.GenerateCodes(c.UserContext(), admin, id, req.Count)
	if err != nil {
		return respondError(c, err)
	}

	h.hub.Publish(hub.Event{Type: hub.EventCodesGenerated, ExamID: id, Count: res.Count})
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%d QR codes generated", res.Count),
		"count":   res.Count,
		"codes":   res.Codes,
	})
}

func (h *ExamHandler) ClaimCode(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	student, err := services.AsStudent(p)
	if err != nil {
		return respondError(c, err)
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return respondError(c, services.ErrCodeNotFound)
	}

	var req ClaimCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}

	code, err := h.grading.ClaimCode(c.UserContext(), student, id, req.CodeValue)
	if err != nil {
		return respondError(c, err)
	}

	h.hub.Publish(hub.Event{Type: hub.EventCodeClaimed, ExamID: id})
	if exam, err := h.exams.GetExam(c.UserContext(), id); err == nil {
		subject, body, err := notifications.ClaimReceipt(p.Name, exam.CourseName, exam.Date)
		if err == nil {
			go notifications.SendEmail(p.Name, p.Email, subject, body)
		}
	}
	return c.JSON(code)
}

func (h *ExamHandler) Reveal(c *fiber.Ctx) error {
	rows, _, err := h.reveal(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

func (h *ExamHandler) reveal(c *fiber.Ctx) ([]models.RevealMapping, *models.ExamSession, error) {
	p, err := principal(c)
	if err != nil {
		return nil, nil, err
	}
	admin, err := services.AsAdmin(p)
	if err != nil {
		return nil, nil, err
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return nil, nil, services.ErrExamNotFound
	}
	exam, err := h.exams.GetExam(c.UserContext(), id)
	if err != nil {
		return nil, nil, err
	}
	rows, err := h.grading.RevealMapping(c.UserContext(), admin, id)
	if err != nil {
		return nil, nil, err
	}
	return rows, exam, nil
}

func (h *ExamHandler) ExportCSV(c *fiber.Ctx) error {
	rows, exam, err := h.reveal(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := reports.RevealCSV(rows)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, attachmentName(exam.CourseName, "-results.csv"))
	return c.Send(data)
}

func (h *ExamHandler) sheet(c *fiber.Ctx) ([]byte, *models.ExamSession, error) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return nil, nil, services.ErrExamNotFound
	}
	exam, err := h.exams.GetExam(c.UserContext(), id)
	if err != nil {
		return nil, nil, err
	}
	codes, err := h.exams.ListCodes(c.UserContext(), id)
	if err != nil {
		return nil, nil, err
	}
	if len(codes) == 0 {
		return nil, exam, errNoCodes
	}
	values := make([]string, len(codes))
	for i, code := range codes {
		values[i] = code.CodeValue
	}
	pdf, err := reports.QRSheetPDF(c.UserContext(), h.renderer, exam.CourseName, values)
	if err != nil {
		return nil, nil, fmt.Errorf("render QR sheet: %w", err)
	}
	return pdf, exam, nil
}

var errNoCodes = errors.New("no QR codes generated for this exam")

func (h *ExamHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, exam, err := h.sheet(c)
	if errors.Is(err, errNoCodes) {
		return badRequest(c, "No QR codes generated for this exam")
	}
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, attachmentName(exam.CourseName, "-qr-codes.pdf"))
	return c.Send(pdf)
}

func (h *ExamHandler) ArchivePDF(c *fiber.Ctx) error {
	if h.archiver == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Archive storage not configured"})
	}
	pdf, exam, err := h.sheet(c)
	if errors.Is(err, errNoCodes) {
		return badRequest(c, "No QR codes generated for this exam")
	}
	if err != nil {
		return respondError(c, err)
	}
	url, err := h.archiver.Upload(c.UserContext(), pdf, exam.ID, "qr-sheets")
	if err != nil {
		return respondError(c, err)
	}
	log.Printf("✅ Archived QR sheet for exam %s", exam.ID)
	return c.JSON(fiber.Map{"url": url})
}

func (h *ExamHandler) ArchiveCSV(c *fiber.Ctx) error {
	if h.archiver == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Archive storage not configured"})
	}
	rows, exam, err := h.reveal(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := reports.RevealCSV(rows)
	if err != nil {
		return respondError(c, err)
	}
	url, err := h.archiver.Upload(c.UserContext(), data, exam.ID, "results")
	if err != nil {
		return respondError(c, err)
	}
	log.Printf("✅ Archived results for exam %s", exam.ID)
	return c.JSON(fiber.Map{"url": url})
}
