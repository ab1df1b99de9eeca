package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainBooking "github.com/BruksfildServices01/shala-api/internal/domain/booking"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/usecase"
)

type GetBooking struct {
	Deps
}

func NewGetBooking(d Deps) *GetBooking {
	return &GetBooking{Deps: d}
}

func (uc *GetBooking) Execute(ctx context.Context, teacherID, bookingID uuid.UUID) (*models.Booking, error) {
	return uc.loadForTeacher(ctx, "get_booking", teacherID, bookingID)
}

type ListProgramBookings struct {
	Deps
}

func NewListProgramBookings(d Deps) *ListProgramBookings {
	return &ListProgramBookings{Deps: d}
}

// Execute lists a program's bookings in registration order. An empty status means
// every status.
func (uc *ListProgramBookings) Execute(
	ctx context.Context,
	teacherID uuid.UUID,
	programID uuid.UUID,
	status string,
) ([]models.Booking, error) {

	var filter *domainBooking.Status
	if status != "" {
		s, err := domainBooking.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		filter = &s
	}

	items, err := uc.Repo.ListProgramBookings(ctx, teacherID, programID, filter)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("program_not_found", "Program not found")
	}
	if err != nil {
		return nil, usecase.StorageFailure(uc.Log, "list_program_bookings", err, zap.Stringer("program_id", programID))
	}
	return items, nil
}
