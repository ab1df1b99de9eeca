package booking

import (
	"time"

	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func RequestCancellation(b *models.Booking, reason string) error {
	switch Status(b.Status) {
	case StatusCancelled:
		return httperr.ErrConflict("already_cancelled", "This booking is already cancelled.")
	case StatusCancellationRequested:
		return httperr.ErrConflict("cancellation_already_requested", "A cancellation has already been requested for this booking.")
	}

	b.Status = string(StatusCancellationRequested)
	b.CancelledReason = optional(reason)
	return nil
}

func ApproveCancellation(b *models.Booking, now time.Time, refundNotes string) error {
	if Status(b.Status) != StatusCancellationRequested {
		return invalidState(b.Status, StatusCancelled)
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	b.RefundNotes = optional(refundNotes)
	return nil
}

func DeclineCancellation(b *models.Booking) error {
	if Status(b.Status) != StatusCancellationRequested {
		return invalidState(b.Status, RestoredStatus(PaymentStatus(b.PaymentStatus)))
	}

	b.Status = string(RestoredStatus(PaymentStatus(b.PaymentStatus)))
	b.CancelledReason = nil
	return nil
}

func OfferWaitlistSpot(b *models.Booking) error {
	if Status(b.Status) != StatusWaitlisted {
		return invalidState(b.Status, StatusWaitlistOffered)
	}

	b.Status = string(StatusWaitlistOffered)
	return nil
}

// ApplyPaymentStatus always records ps. A payment receipt also confirms a
// booking that was waiting on it.
func ApplyPaymentStatus(b *models.Booking, ps PaymentStatus) {
	b.PaymentStatus = string(ps)

	if ps != PaymentPaid {
		return
	}
	switch Status(b.Status) {
	case StatusPendingPayment, StatusWaitlistOffered:
		b.Status = string(StatusConfirmed)
	}
}

func invalidState(from string, to Status) error {
	return httperr.ErrConflict("invalid_state", "Cannot change booking from "+from+" to "+string(to)+".")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
