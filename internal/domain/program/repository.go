package program

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/models"
)

// Summary is a dashboard row: the program plus its seat usage.
type Summary struct {
	Program            models.Program
	ActiveBookings     int64
	WaitlistedBookings int64
}

type Repository interface {
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Program --------
	GetForTeacher(
		ctx context.Context,
		teacherID uuid.UUID,
		programID uuid.UUID,
	) (*models.Program, error)

	ListForTeacher(
		ctx context.Context,
		teacherID uuid.UUID,
		status *Status,
	) ([]Summary, error)

	// Create returns domain.ErrDuplicate when (teacher, slug) is taken.
	Create(
		ctx context.Context,
		p *models.Program,
	) error

	// UpdateStatus writes p.Status only if the stored status still equals
	// expected; otherwise domain.ErrStale.
	UpdateStatus(
		ctx context.Context,
		p *models.Program,
		expected Status,
	) error

	Delete(
		ctx context.Context,
		programID uuid.UUID,
	) error

	CountBookings(
		ctx context.Context,
		programID uuid.UUID,
	) (int64, error)

	SlugExists(
		ctx context.Context,
		teacherID uuid.UUID,
		slug string,
	) (bool, error)

	// -------- Templates --------
	// GetTemplate returns platform templates and those owned by teacherID.
	GetTemplate(
		ctx context.Context,
		teacherID uuid.UUID,
		templateID uuid.UUID,
	) (*models.ScheduleTemplate, error)

	ListTemplates(
		ctx context.Context,
		teacherID uuid.UUID,
	) ([]models.ScheduleTemplate, error)

	CreateTemplate(
		ctx context.Context,
		t *models.ScheduleTemplate,
	) error

	// -------- Venue --------
	// GetVenue returns venues owned by teacherID or shared ones.
	GetVenue(
		ctx context.Context,
		teacherID uuid.UUID,
		venueID uuid.UUID,
	) (*models.Venue, error)

	CreateVenue(
		ctx context.Context,
		v *models.Venue,
	) error
}
