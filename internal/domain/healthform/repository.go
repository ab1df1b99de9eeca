package healthform

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/models"
)

type Repository interface {
	// ListForProgram returns domain.ErrNotFound when the program is not
	// owned by teacherID. Students are preloaded.
	ListForProgram(
		ctx context.Context,
		teacherID uuid.UUID,
		programID uuid.UUID,
	) ([]models.HealthForm, error)

	// FindOwned returns the subset of ids whose booking belongs to teacherID.
	FindOwned(
		ctx context.Context,
		teacherID uuid.UUID,
		ids []uuid.UUID,
	) ([]models.HealthForm, error)

	// MarkReviewed only touches forms that are not reviewed yet.
	MarkReviewed(
		ctx context.Context,
		ids []uuid.UUID,
		reviewer uuid.UUID,
		at time.Time,
	) (int64, error)
}
