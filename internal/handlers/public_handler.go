package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/shala-api/internal/dto"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/shala-api/internal/usecase/booking"
	ucCatalog "github.com/BruksfildServices01/shala-api/internal/usecase/catalog"
	"github.com/BruksfildServices01/shala-api/internal/usecase/registration"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves students. Nothing here is authenticated; the booking
// id doubles as the student's credential for their own booking.
type PublicHandler struct {
	listPrograms        *ucCatalog.ListPrograms
	getProgram          *ucCatalog.GetProgram
	register            *registration.Register
	bookingDetails      *registration.GetBookingDetails
	requestCancellation *ucBooking.RequestCancellation
}

func NewPublicHandler(
	listPrograms *ucCatalog.ListPrograms,
	getProgram *ucCatalog.GetProgram,
	register *registration.Register,
	bookingDetails *registration.GetBookingDetails,
	requestCancellation *ucBooking.RequestCancellation,
) *PublicHandler {
	return &PublicHandler{
		listPrograms:        listPrograms,
		getProgram:          getProgram,
		register:            register,
		bookingDetails:      bookingDetails,
		requestCancellation: requestCancellation,
	}
}

////////////////////////////////////////////////////////
// REQUESTS
////////////////////////////////////////////////////////

type CancellationRequest struct {
	Reason string `json:"reason"`
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListPrograms(c *gin.Context) {
	out, err := h.listPrograms.Execute(c.Request.Context(), c.Param("teacherSlug"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *PublicHandler) GetProgram(c *gin.Context) {
	out, err := h.getProgram.Execute(c.Request.Context(), c.Param("teacherSlug"), c.Param("programSlug"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

////////////////////////////////////////////////////////
// REGISTRATION
////////////////////////////////////////////////////////

func (h *PublicHandler) Register(c *gin.Context) {
	var req registration.Input
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.register.Execute(c.Request.Context(), req)
	if err != nil {
		var already registration.AlreadyRegisteredError
		if errors.As(err, &already) {
			c.JSON(http.StatusConflict, gin.H{
				"error_code": "already_registered",
				"message":    "You are already registered for this program.",
				"booking_id": already.BookingID,
			})
			return
		}
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, res)
}

////////////////////////////////////////////////////////
// BOOKINGS
////////////////////////////////////////////////////////

func (h *PublicHandler) GetBooking(c *gin.Context) {
	id, ok := pathID(c, "bookingId", "booking_not_found", "Booking not found")
	if !ok {
		return
	}

	b, err := h.bookingDetails.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.NewPublicBookingDTO(b))
}

func (h *PublicHandler) RequestCancellation(c *gin.Context) {
	id, ok := pathID(c, "bookingId", "booking_not_found", "Booking not found")
	if !ok {
		return
	}

	var req CancellationRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	b, err := h.requestCancellation.Execute(c.Request.Context(), id, req.Reason)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, gin.H{
		"id":     b.ID,
		"status": b.Status,
	})
}
