package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/models"
)

// Repository reports a missing row as domain.ErrNotFound and a lost
// conditional update as domain.ErrStale.
type Repository interface {
	// Transaction runs fn against a repository bound to one database
	// transaction. Returning an error rolls everything back.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Registration --------
	// LockProgram loads the program and holds a row lock on it until the
	// surrounding transaction ends, serialising registrations per program.
	LockProgram(
		ctx context.Context,
		programID uuid.UUID,
	) (*models.Program, error)

	CountActiveBookings(
		ctx context.Context,
		programID uuid.UUID,
	) (int64, error)

	UpsertStudent(
		ctx context.Context,
		s *models.Student,
	) (*models.Student, error)

	FindBooking(
		ctx context.Context,
		studentID uuid.UUID,
		programID uuid.UUID,
	) (*models.Booking, error)

	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	CreateHealthForm(
		ctx context.Context,
		hf *models.HealthForm,
	) error

	// -------- State change --------
	GetBooking(
		ctx context.Context,
		bookingID uuid.UUID,
	) (*models.Booking, error)

	GetBookingForTeacher(
		ctx context.Context,
		teacherID uuid.UUID,
		bookingID uuid.UUID,
	) (*models.Booking, error)

	// UpdateBooking persists b only if its stored status still equals
	// expected.
	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
		expected Status,
	) error

	// -------- Reads --------
	// GetBookingDetails preloads the student, the program with its teacher
	// and venue, and the health form.
	GetBookingDetails(
		ctx context.Context,
		bookingID uuid.UUID,
	) (*models.Booking, error)

	// ListProgramBookings returns domain.ErrNotFound when the program is not
	// owned by teacherID.
	ListProgramBookings(
		ctx context.Context,
		teacherID uuid.UUID,
		programID uuid.UUID,
		status *Status,
	) ([]models.Booking, error)
}
