package teacher

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/models"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error)
	GetByEmail(ctx context.Context, email string) (*models.Teacher, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Create returns domain.ErrDuplicate when the id, email or slug is taken.
	Create(ctx context.Context, t *models.Teacher) error
}
