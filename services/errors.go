package services

import "errors"

var (
	ErrInvalidCount    = errors.New("invalid code count (1-500)")
	ErrCodeRequired    = errors.New("QR code value is required")
	ErrScoreOutOfRange = errors.New("score must be between 0 and 100")

	ErrExamNotFound = errors.New("exam not found")
	ErrCodeNotFound = errors.New("QR code not found for this exam")
	ErrUserNotFound = errors.New("user not found")

	ErrAlreadyClaimed = errors.New("QR code already claimed")
	ErrAlreadyHasCode = errors.New("student already holds a code for this exam")
	ErrDuplicateCode  = errors.New("duplicate code value")
	ErrEmailTaken     = errors.New("email already registered")

	ErrCodeNotClaimed = errors.New("QR code not claimed by any student")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("insufficient permissions")
)
