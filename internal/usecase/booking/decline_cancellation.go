package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	domainBooking "github.com/BruksfildServices01/shala-api/internal/domain/booking"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type DeclineCancellation struct {
	Deps
}

func NewDeclineCancellation(d Deps) *DeclineCancellation {
	return &DeclineCancellation{Deps: d}
}

func (uc *DeclineCancellation) Execute(
	ctx context.Context,
	teacherID uuid.UUID,
	bookingID uuid.UUID,
) (*models.Booking, error) {

	b, err := uc.loadForTeacher(ctx, "decline_cancellation", teacherID, bookingID)
	if err != nil {
		return nil, err
	}

	from := domainBooking.Status(b.Status)
	if err := domainBooking.DeclineCancellation(b); err != nil {
		return nil, err
	}

	if err := uc.save(ctx, "decline_cancellation", b, from); err != nil {
		return nil, err
	}

	uc.settle(ctx, b, &teacherID, audit.ActionCancellationDeclined, from)
	return b, nil
}
