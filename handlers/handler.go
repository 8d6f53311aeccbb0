package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/anjiri1684/exam_qr_masking/middleware"
	"github.com/anjiri1684/exam_qr_masking/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidCount),
		errors.Is(err, services.ErrScoreOutOfRange),
		errors.Is(err, services.ErrCodeRequired),
		errors.Is(err, services.ErrCodeNotClaimed):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrExamNotFound),
		errors.Is(err, services.ErrCodeNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrAlreadyClaimed),
		errors.Is(err, services.ErrAlreadyHasCode),
		errors.Is(err, services.ErrEmailTaken):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
		return c.Status(status).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}

func principal(c *fiber.Ctx) (services.Principal, error) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		return p, services.ErrForbidden
	}
	return p, nil
}

func attachmentName(courseName, suffix string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', '\r', '\n':
			return '_'
		}
		return r
	}, strings.TrimSpace(courseName))
	if name == "" {
		name = "exam"
	}
	return `attachment; filename="` + name + suffix + `"`
}
