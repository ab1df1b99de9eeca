package booking

import "github.com/BruksfildServices01/shala-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPendingPayment        Status = "PENDING_PAYMENT"
	StatusConfirmed             Status = "CONFIRMED"
	StatusWaitlisted            Status = "WAITLISTED"
	StatusWaitlistOffered       Status = "WAITLIST_OFFERED"
	StatusCancellationRequested Status = "CANCELLATION_REQUESTED"
	StatusCancelled             Status = "CANCELLED"
	StatusCompleted             Status = "COMPLETED"
	StatusNoShow                Status = "NO_SHOW"
)

var allStatuses = []Status{
	StatusPendingPayment,
	StatusConfirmed,
	StatusWaitlisted,
	StatusWaitlistOffered,
	StatusCancellationRequested,
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}

// IsTerminal reports whether no operation may move a booking out of s.
// COMPLETED and NO_SHOW are only ever set by an administrative process.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

func ParseStatus(v string) (Status, error) {
	for _, s := range allStatuses {
		if string(s) == v {
			return s, nil
		}
	}
	return "", httperr.ErrValidation("status", "status must be one of PENDING_PAYMENT CONFIRMED WAITLISTED WAITLIST_OFFERED CANCELLATION_REQUESTED CANCELLED COMPLETED NO_SHOW")
}

// ===============================
// Payment
// ===============================

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
	PaymentWaived   PaymentStatus = "WAIVED"
)

func ParsePaymentStatus(v string) (PaymentStatus, error) {
	switch PaymentStatus(v) {
	case PaymentPending, PaymentPaid, PaymentRefunded, PaymentWaived:
		return PaymentStatus(v), nil
	}
	return "", httperr.ErrValidation("payment_status", "payment_status must be one of PENDING PAID REFUNDED WAIVED")
}

type PaymentMethod string

const (
	MethodOnline       PaymentMethod = "ONLINE"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCash         PaymentMethod = "CASH"
	MethodFree         PaymentMethod = "FREE"
)

// ===============================
// Initial state
// ===============================

func InitialStatus(waitlisted, isFree bool, method PaymentMethod) Status {
	switch {
	case waitlisted:
		return StatusWaitlisted
	case isFree || method != MethodOnline:
		return StatusConfirmed
	default:
		return StatusPendingPayment
	}
}

func InitialPaymentStatus(isFree bool) PaymentStatus {
	if isFree {
		return PaymentWaived
	}
	return PaymentPending
}

// RestoredStatus is where a declined cancellation request lands.
func RestoredStatus(ps PaymentStatus) Status {
	if ps == PaymentPaid || ps == PaymentWaived {
		return StatusConfirmed
	}
	return StatusPendingPayment
}
