package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/models"
)

// Listing is a published program with the number of seats taken.
type Listing struct {
	Program        models.Program
	ActiveBookings int64
}

// Repository serves the unauthenticated catalog. Only PUBLISHED programs are
// ever returned.
type Repository interface {
	GetTeacherBySlug(ctx context.Context, slug string) (*models.Teacher, error)
	ListPublished(ctx context.Context, teacherID uuid.UUID) ([]Listing, error)
	GetPublished(ctx context.Context, teacherID uuid.UUID, programSlug string) (*Listing, error)
}
