package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	domainBooking "github.com/BruksfildServices01/shala-api/internal/domain/booking"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/validators"
)

type ApproveCancellation struct {
	Deps
	now func() time.Time
}

func NewApproveCancellation(d Deps) *ApproveCancellation {
	return &ApproveCancellation{
		Deps: d,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (uc *ApproveCancellation) Execute(
	ctx context.Context,
	teacherID uuid.UUID,
	bookingID uuid.UUID,
	refundNotes string,
) (*models.Booking, error) {

	b, err := uc.loadForTeacher(ctx, "approve_cancellation", teacherID, bookingID)
	if err != nil {
		return nil, err
	}

	from := domainBooking.Status(b.Status)
	if err := domainBooking.ApproveCancellation(b, uc.now(), validators.SanitizeText(refundNotes)); err != nil {
		return nil, err
	}

	if err := uc.save(ctx, "approve_cancellation", b, from); err != nil {
		return nil, err
	}

	uc.settle(ctx, b, &teacherID, audit.ActionCancellationApproved, from)
	return b, nil
}
