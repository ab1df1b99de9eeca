package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/shala-api/internal/dto"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/httpresp"
	"github.com/BruksfildServices01/shala-api/internal/middleware"
	ucBooking "github.com/BruksfildServices01/shala-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	get                 *ucBooking.GetBooking
	listForProgram      *ucBooking.ListProgramBookings
	approveCancellation *ucBooking.ApproveCancellation
	declineCancellation *ucBooking.DeclineCancellation
	offerWaitlistSpot   *ucBooking.OfferWaitlistSpot
	updatePayment       *ucBooking.UpdatePaymentStatus
}

func NewBookingHandler(
	get *ucBooking.GetBooking,
	listForProgram *ucBooking.ListProgramBookings,
	approveCancellation *ucBooking.ApproveCancellation,
	declineCancellation *ucBooking.DeclineCancellation,
	offerWaitlistSpot *ucBooking.OfferWaitlistSpot,
	updatePayment *ucBooking.UpdatePaymentStatus,
) *BookingHandler {
	return &BookingHandler{
		get:                 get,
		listForProgram:      listForProgram,
		approveCancellation: approveCancellation,
		declineCancellation: declineCancellation,
		offerWaitlistSpot:   offerWaitlistSpot,
		updatePayment:       updatePayment,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ApproveCancellationRequest struct {
	RefundNotes string `json:"refund_notes"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

// ======================================================
// READS
// ======================================================

func (h *BookingHandler) ListForProgram(c *gin.Context) {
	programID, ok := pathID(c, "id", "program_not_found", "Program not found")
	if !ok {
		return
	}

	items, err := h.listForProgram.Execute(
		c.Request.Context(),
		middleware.TeacherID(c),
		programID,
		c.Query("status"),
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, dto.NewBookingListDTO(items))
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "booking_not_found", "Booking not found")
	if !ok {
		return
	}

	b, err := h.get.Execute(c.Request.Context(), middleware.TeacherID(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, b)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *BookingHandler) ApproveCancellation(c *gin.Context) {
	id, ok := pathID(c, "id", "booking_not_found", "Booking not found")
	if !ok {
		return
	}

	var req ApproveCancellationRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	b, err := h.approveCancellation.Execute(c.Request.Context(), middleware.TeacherID(c), id, req.RefundNotes)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BookingHandler) DeclineCancellation(c *gin.Context) {
	id, ok := pathID(c, "id", "booking_not_found", "Booking not found")
	if !ok {
		return
	}

	b, err := h.declineCancellation.Execute(c.Request.Context(), middleware.TeacherID(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BookingHandler) OfferWaitlistSpot(c *gin.Context) {
	id, ok := pathID(c, "id", "booking_not_found", "Booking not found")
	if !ok {
		return
	}

	b, err := h.offerWaitlistSpot.Execute(c.Request.Context(), middleware.TeacherID(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BookingHandler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := pathID(c, "id", "booking_not_found", "Booking not found")
	if !ok {
		return
	}

	var req UpdatePaymentStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.updatePayment.Execute(c.Request.Context(), middleware.TeacherID(c), id, req.PaymentStatus)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, b)
}
