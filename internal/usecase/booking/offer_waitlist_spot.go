package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	domainBooking "github.com/BruksfildServices01/shala-api/internal/domain/booking"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

// OfferWaitlistSpot does not re-check capacity: the teacher decides when a
// seat is free, usually right after approving a cancellation.
type OfferWaitlistSpot struct {
	Deps
}

func NewOfferWaitlistSpot(d Deps) *OfferWaitlistSpot {
	return &OfferWaitlistSpot{Deps: d}
}

func (uc *OfferWaitlistSpot) Execute(
	ctx context.Context,
	teacherID uuid.UUID,
	bookingID uuid.UUID,
) (*models.Booking, error) {

	b, err := uc.loadForTeacher(ctx, "offer_waitlist_spot", teacherID, bookingID)
	if err != nil {
		return nil, err
	}

	from := domainBooking.Status(b.Status)
	if err := domainBooking.OfferWaitlistSpot(b); err != nil {
		return nil, err
	}

	if err := uc.save(ctx, "offer_waitlist_spot", b, from); err != nil {
		return nil, err
	}

	uc.settle(ctx, b, &teacherID, audit.ActionWaitlistOffered, from)
	return b, nil
}
