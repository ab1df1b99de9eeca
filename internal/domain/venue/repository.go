package venue

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/models"
)

type Repository interface {
	// List returns the teacher's venues plus shared ones, by name.
	List(ctx context.Context, teacherID uuid.UUID) ([]models.Venue, error)

	GetOwned(ctx context.Context, teacherID, venueID uuid.UUID) (*models.Venue, error)
	Create(ctx context.Context, v *models.Venue) error
	Update(ctx context.Context, v *models.Venue) error
	Delete(ctx context.Context, venueID uuid.UUID) error

	// CountActivePrograms counts DRAFT and PUBLISHED programs at the venue.
	CountActivePrograms(ctx context.Context, venueID uuid.UUID) (int64, error)
}
