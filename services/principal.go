package services

import (
	"github.com/anjiri1684/exam_qr_masking/models"
	"github.com/google/uuid"
)

// Principal is an authenticated caller as decoded from its token.
type Principal struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Role   models.Role
}

// Admin, Student and Marker are capabilities. They can only be minted from a
// Principal holding the matching role, so each grading operation states the
// role it needs in its signature.
type Admin struct{ p Principal }

type Student struct{ p Principal }

type Marker struct{ p Principal }

func (a Admin) ID() uuid.UUID   { return a.p.UserID }
func (s Student) ID() uuid.UUID { return s.p.UserID }
func (m Marker) ID() uuid.UUID  { return m.p.UserID }

func AsAdmin(p Principal) (Admin, error) {
	if p.Role != models.RoleAdmin || p.UserID == uuid.Nil {
		return Admin{}, ErrForbidden
	}
	return Admin{p: p}, nil
}

func AsStudent(p Principal) (Student, error) {
	if p.Role != models.RoleStudent || p.UserID == uuid.Nil {
		return Student{}, ErrForbidden
	}
	return Student{p: p}, nil
}

func AsMarker(p Principal) (Marker, error) {
	if p.Role != models.RoleMarker || p.UserID == uuid.Nil {
		return Marker{}, ErrForbidden
	}
	return Marker{p: p}, nil
}
