package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	domainBooking "github.com/BruksfildServices01/shala-api/internal/domain/booking"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type UpdatePaymentStatus struct {
	Deps
}

func NewUpdatePaymentStatus(d Deps) *UpdatePaymentStatus {
	return &UpdatePaymentStatus{Deps: d}
}

func (uc *UpdatePaymentStatus) Execute(
	ctx context.Context,
	teacherID uuid.UUID,
	bookingID uuid.UUID,
	paymentStatus string,
) (*models.Booking, error) {

	ps, err := domainBooking.ParsePaymentStatus(paymentStatus)
	if err != nil {
		return nil, err
	}

	b, err := uc.loadForTeacher(ctx, "update_payment_status", teacherID, bookingID)
	if err != nil {
		return nil, err
	}

	from := domainBooking.Status(b.Status)
	domainBooking.ApplyPaymentStatus(b, ps)

	if err := uc.save(ctx, "update_payment_status", b, from); err != nil {
		return nil, err
	}

	uc.settle(ctx, b, &teacherID, audit.ActionPaymentStatusUpdated, from)
	return b, nil
}
