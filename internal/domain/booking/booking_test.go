package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

func intPtr(v int) *int { return &v }

func TestInitialStatus(t *testing.T) {
	tests := []struct {
		name       string
		waitlisted bool
		isFree     bool
		method     PaymentMethod
		want       Status
	}{
		{"full program", true, false, MethodOnline, StatusWaitlisted},
		{"full free program", true, true, MethodFree, StatusWaitlisted},
		{"free", false, true, MethodFree, StatusConfirmed},
		{"cash", false, false, MethodCash, StatusConfirmed},
		{"bank transfer", false, false, MethodBankTransfer, StatusConfirmed},
		{"online", false, false, MethodOnline, StatusPendingPayment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InitialStatus(tt.waitlisted, tt.isFree, tt.method))
		})
	}
}

func TestInitialPaymentStatus(t *testing.T) {
	assert.Equal(t, PaymentWaived, InitialPaymentStatus(true))
	assert.Equal(t, PaymentPending, InitialPaymentStatus(false))
}

func TestCapacity(t *testing.T) {
	assert.True(t, HasRoom(nil, 1000))
	assert.True(t, HasRoom(intPtr(1), 0))
	assert.False(t, HasRoom(intPtr(1), 1))
	assert.False(t, HasRoom(intPtr(2), 5))

	assert.Nil(t, RemainingCapacity(nil, 3))
	assert.Equal(t, 2, *RemainingCapacity(intPtr(5), 3))
	assert.Equal(t, 0, *RemainingCapacity(intPtr(2), 5))

	assert.False(t, HoldsSeat(StatusCancelled))
	assert.False(t, HoldsSeat(StatusWaitlisted))
	assert.True(t, HoldsSeat(StatusWaitlistOffered))
	assert.True(t, HoldsSeat(StatusCancellationRequested))
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, MsgWaitlisted, StatusMessage(true, true, MethodFree))
	assert.Equal(t, MsgFree, StatusMessage(false, true, MethodFree))
	assert.Equal(t, MsgOnlinePayment, StatusMessage(false, false, MethodOnline))
	assert.Equal(t, MsgPayAsInstructed, StatusMessage(false, false, MethodCash))
	assert.Equal(t, MsgPayAsInstructed, StatusMessage(false, false, MethodBankTransfer))
}

func TestRequestCancellation(t *testing.T) {
	b := &models.Booking{Status: string(StatusWaitlisted)}
	require.NoError(t, RequestCancellation(b, "moving away"))
	assert.Equal(t, string(StatusCancellationRequested), b.Status)
	require.NotNil(t, b.CancelledReason)
	assert.Equal(t, "moving away", *b.CancelledReason)

	err := RequestCancellation(b, "again")
	assert.True(t, httperr.IsBusiness(err, "cancellation_already_requested"))
	assert.Equal(t, "moving away", *b.CancelledReason)

	cancelled := &models.Booking{Status: string(StatusCancelled)}
	assert.True(t, httperr.IsBusiness(RequestCancellation(cancelled, ""), "already_cancelled"))
}

func TestApproveCancellation(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusCancellationRequested)}

	require.NoError(t, ApproveCancellation(b, now, "refunded in cash"))
	assert.Equal(t, string(StatusCancelled), b.Status)
	assert.Equal(t, now, *b.CancelledAt)
	assert.Equal(t, "refunded in cash", *b.RefundNotes)

	// a second approval is a stable conflict and leaves the row as it was
	err := ApproveCancellation(b, now.Add(time.Hour), "other")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, now, *b.CancelledAt)
	assert.Equal(t, "refunded in cash", *b.RefundNotes)
}

func TestDeclineCancellation(t *testing.T) {
	tests := []struct {
		payment PaymentStatus
		want    Status
	}{
		{PaymentPaid, StatusConfirmed},
		{PaymentWaived, StatusConfirmed},
		{PaymentPending, StatusPendingPayment},
		{PaymentRefunded, StatusPendingPayment},
	}

	for _, tt := range tests {
		t.Run(string(tt.payment), func(t *testing.T) {
			reason := "sick"
			b := &models.Booking{
				Status:          string(StatusCancellationRequested),
				PaymentStatus:   string(tt.payment),
				CancelledReason: &reason,
			}
			require.NoError(t, DeclineCancellation(b))
			assert.Equal(t, string(tt.want), b.Status)
			assert.Nil(t, b.CancelledReason)
		})
	}

	b := &models.Booking{Status: string(StatusConfirmed)}
	assert.True(t, httperr.IsBusiness(DeclineCancellation(b), "invalid_state"))
}

func TestOfferWaitlistSpot(t *testing.T) {
	b := &models.Booking{Status: string(StatusWaitlisted)}
	require.NoError(t, OfferWaitlistSpot(b))
	assert.Equal(t, string(StatusWaitlistOffered), b.Status)

	err := OfferWaitlistSpot(b)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, string(StatusWaitlistOffered), b.Status)
}

func TestApplyPaymentStatus(t *testing.T) {
	tests := []struct {
		from    Status
		payment PaymentStatus
		want    Status
	}{
		{StatusPendingPayment, PaymentPaid, StatusConfirmed},
		{StatusWaitlistOffered, PaymentPaid, StatusConfirmed},
		{StatusWaitlisted, PaymentPaid, StatusWaitlisted},
		{StatusCancellationRequested, PaymentPaid, StatusCancellationRequested},
		{StatusPendingPayment, PaymentWaived, StatusPendingPayment},
		{StatusConfirmed, PaymentRefunded, StatusConfirmed},
		{StatusCancelled, PaymentRefunded, StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.payment), func(t *testing.T) {
			b := &models.Booking{Status: string(tt.from), PaymentStatus: string(PaymentPending)}
			ApplyPaymentStatus(b, tt.payment)
			assert.Equal(t, string(tt.payment), b.PaymentStatus)
			assert.Equal(t, string(tt.want), b.Status)
		})
	}
}

func TestParse(t *testing.T) {
	ps, err := ParsePaymentStatus("PAID")
	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, ps)

	_, err = ParsePaymentStatus("paid")
	kind, _ := httperr.KindOf(err)
	assert.Equal(t, httperr.KindValidation, kind)

	s, err := ParseStatus("NO_SHOW")
	require.NoError(t, err)
	assert.True(t, s.IsTerminal())
	assert.False(t, StatusWaitlisted.IsTerminal())

	_, err = ParseStatus("BOGUS")
	assert.Error(t, err)
}
