package registration

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/domain"
	"github.com/BruksfildServices01/shala-api/internal/domain/booking"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/usecase"
)

// GetBookingDetails serves the student-facing confirmation page. The booking
// id is the only credential, so nothing teacher-private is loaded here.
type GetBookingDetails struct {
	repo booking.Repository
	log  *zap.Logger
}

func NewGetBookingDetails(repo booking.Repository, log *zap.Logger) *GetBookingDetails {
	return &GetBookingDetails{repo: repo, log: log}
}

func (uc *GetBookingDetails) Execute(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	b, err := uc.repo.GetBookingDetails(ctx, bookingID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("booking_not_found", "Booking not found")
	}
	if err != nil {
		return nil, usecase.StorageFailure(uc.log, "get_booking_details", err, zap.Stringer("booking_id", bookingID))
	}
	return b, nil
}
