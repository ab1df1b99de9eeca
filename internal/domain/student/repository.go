package student

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/models"
)

type ListFilter struct {
	Search    string
	Tag       string
	ProgramID *uuid.UUID
	Page      int
	PerPage   int
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.PerPage
}

type ListItem struct {
	Student       models.Student
	ProgramCount  int
	LastBookingAt *time.Time
}

type Repository interface {
	List(
		ctx context.Context,
		teacherID uuid.UUID,
		f ListFilter,
	) ([]ListItem, int64, error)

	Get(
		ctx context.Context,
		teacherID uuid.UUID,
		studentID uuid.UUID,
	) (*models.Student, error)

	// ListBookings returns the student's bookings newest first, with
	// program and health form preloaded.
	ListBookings(
		ctx context.Context,
		teacherID uuid.UUID,
		studentID uuid.UUID,
	) ([]models.Booking, error)

	// Update returns domain.ErrDuplicate when the new email is already used
	// by another student of the same teacher.
	Update(
		ctx context.Context,
		s *models.Student,
	) error

	AllTags(
		ctx context.Context,
		teacherID uuid.UUID,
	) ([]string, error)
}
