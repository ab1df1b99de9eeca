package booking

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainBooking "github.com/BruksfildServices01/shala-api/internal/domain/booking"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/usecase"
	"github.com/BruksfildServices01/shala-api/internal/validators"
)

const maxReasonLength = 1000

// RequestCancellation is the student's side: the booking id in their
// confirmation link is all they have.
type RequestCancellation struct {
	Deps
}

func NewRequestCancellation(d Deps) *RequestCancellation {
	return &RequestCancellation{Deps: d}
}

func (uc *RequestCancellation) Execute(
	ctx context.Context,
	bookingID uuid.UUID,
	reason string,
) (*models.Booking, error) {

	reason = validators.SanitizeText(reason)
	if utf8.RuneCountInString(reason) > maxReasonLength {
		return nil, httperr.ErrValidation("reason", "reason must be at most 1000 characters")
	}

	b, err := uc.Repo.GetBooking(ctx, bookingID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errBookingNotFound
	}
	if err != nil {
		return nil, usecase.StorageFailure(uc.Log, "request_cancellation", err, zap.Stringer("booking_id", bookingID))
	}

	from := domainBooking.Status(b.Status)
	if err := domainBooking.RequestCancellation(b, reason); err != nil {
		return nil, err
	}

	if err := uc.save(ctx, "request_cancellation", b, from); err != nil {
		return nil, err
	}

	uc.settle(ctx, b, nil, audit.ActionCancellationRequested, from)
	return b, nil
}
