package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	"github.com/BruksfildServices01/shala-api/internal/cache"
	"github.com/BruksfildServices01/shala-api/internal/infra/memory"
	"github.com/BruksfildServices01/shala-api/internal/middleware"
	"github.com/BruksfildServices01/shala-api/internal/models"
	ucBooking "github.com/BruksfildServices01/shala-api/internal/usecase/booking"
	ucCatalog "github.com/BruksfildServices01/shala-api/internal/usecase/catalog"
	"github.com/BruksfildServices01/shala-api/internal/usecase/registration"
	ucVenue "github.com/BruksfildServices01/shala-api/internal/usecase/venue"
)

type fixture struct {
	store   *memory.Store
	audit   *audit.Dispatcher
	router  *gin.Engine
	teacher models.Teacher
	program models.Program
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := memory.NewStore()
	log := zap.NewNop()
	c := cache.NewMemory()
	auditStore := memory.NewAuditStore(s)
	d := audit.NewDispatcher(auditStore, log)
	t.Cleanup(d.Close)

	teacher := s.PutTeacher(models.Teacher{Email: "maya@example.com", Slug: "maya", Name: "Maya"})
	program := s.PutProgram(models.Program{
		TeacherID:        teacher.ID,
		Name:             "Morning Mysore",
		Slug:             "morning-mysore",
		Status:           "PUBLISHED",
		VenueType:        "ONLINE",
		OnlineMeetingURL: "https://zoom.example.com/j/123",
		PriceAmount:      decimal.NewNullDecimal(decimal.RequireFromString("120.00")),
		PriceCurrency:    "EUR",
		Sessions: datatypes.JSONSlice[models.Session]{
			{Date: "2026-11-02", StartTime: "07:00", EndTime: "09:00", Title: "Day 1"},
		},
	})

	bookingRepo := memory.NewBookingRepository(s)
	bookingDeps := ucBooking.Deps{Repo: bookingRepo, Cache: c, Audit: d, Log: log}
	catalogDeps := ucCatalog.Deps{Repo: memory.NewCatalogRepository(s), Cache: c, TTL: time.Minute, Log: log}
	venueDeps := ucVenue.Deps{Repo: memory.NewVenueRepository(s), Cache: c, Audit: d, Log: log}

	public := NewPublicHandler(
		ucCatalog.NewListPrograms(catalogDeps),
		ucCatalog.NewGetProgram(catalogDeps),
		registration.NewRegister(bookingRepo, c, d, log, nil),
		registration.NewGetBookingDetails(bookingRepo, log),
		ucBooking.NewRequestCancellation(bookingDeps),
	)
	bookings := NewBookingHandler(
		ucBooking.NewGetBooking(bookingDeps),
		ucBooking.NewListProgramBookings(bookingDeps),
		ucBooking.NewApproveCancellation(bookingDeps),
		ucBooking.NewDeclineCancellation(bookingDeps),
		ucBooking.NewOfferWaitlistSpot(bookingDeps),
		ucBooking.NewUpdatePaymentStatus(bookingDeps),
	)
	venues := NewVenueHandler(
		ucVenue.NewListVenues(venueDeps),
		ucVenue.NewCreateVenue(venueDeps),
		ucVenue.NewUpdateVenue(venueDeps),
		ucVenue.NewDeleteVenue(venueDeps),
	)
	auditLogs := NewAuditLogsHandler(auditStore, log)

	r := gin.New()
	r.GET("/api/public/teachers/:teacherSlug/programs", public.ListPrograms)
	r.POST("/api/public/registrations", public.Register)
	r.GET("/api/public/bookings/:bookingId", public.GetBooking)
	r.POST("/api/public/bookings/:bookingId/cancellation", public.RequestCancellation)

	me := r.Group("/api/me", func(c *gin.Context) {
		c.Set(middleware.ContextTeacherID, teacher.ID)
		c.Next()
	})
	me.GET("/programs/:id/bookings", bookings.ListForProgram)
	me.POST("/bookings/:id/cancellation/approve", bookings.ApproveCancellation)
	me.PATCH("/bookings/:id/payment-status", bookings.UpdatePaymentStatus)
	me.POST("/venues", venues.Create)
	me.DELETE("/venues/:id", venues.Delete)
	me.GET("/audit-logs", auditLogs.List)

	return &fixture{store: s, audit: d, router: r, teacher: teacher, program: program}
}

func (f *fixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func registrationBody(programID uuid.UUID) gin.H {
	return gin.H{
		"program_id":     programID.String(),
		"payment_method": "ONLINE",
		"student": gin.H{
			"first_name":                 "Ana",
			"last_name":                  "Silva",
			"email":                      "Ana@Example.com",
			"phone":                      "+351912345678",
			"emergency_contact_name":     "Rui Silva",
			"emergency_contact_relation": "Brother",
			"emergency_contact_phone":    "+351912345679",
		},
	}
}

func (f *fixture) register(t *testing.T) uuid.UUID {
	t.Helper()
	w := f.do(http.MethodPost, "/api/public/registrations", registrationBody(f.program.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	id, err := uuid.Parse(decode(t, w)["booking_id"].(string))
	require.NoError(t, err)
	return id
}

func TestPublic_RegisterThenDuplicate(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/public/registrations", registrationBody(f.program.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "PENDING_PAYMENT", body["status"])
	assert.Equal(t, true, body["requires_payment"])

	w = f.do(http.MethodPost, "/api/public/registrations", registrationBody(f.program.ID))
	require.Equal(t, http.StatusConflict, w.Code)
	dup := decode(t, w)
	assert.Equal(t, "already_registered", dup["error_code"])
	assert.Equal(t, body["booking_id"], dup["booking_id"])
}

func TestPublic_RegisterValidation(t *testing.T) {
	f := newFixture(t)

	req := registrationBody(f.program.ID)
	req["student"].(gin.H)["phone"] = "123"

	w := f.do(http.MethodPost, "/api/public/registrations", req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "validation_failed", body["error_code"])
	assert.Equal(t, "student.phone", body["field"])
}

func TestPublic_RegisterBadJSON(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/public/registrations", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decode(t, w)["error_code"])
}

func TestPublic_BookingDetailsHidesMeetingLinkUntilConfirmed(t *testing.T) {
	f := newFixture(t)
	id := f.register(t)

	w := f.do(http.MethodGet, "/api/public/bookings/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "PENDING_PAYMENT", body["status"])
	assert.NotContains(t, body, "online_meeting_url")
	assert.Equal(t, "Morning Mysore", body["program"].(map[string]any)["name"])
	assert.Equal(t, "maya", body["teacher"].(map[string]any)["slug"])

	w = f.do(http.MethodPatch, "/api/me/bookings/"+id.String()+"/payment-status", gin.H{"payment_status": "PAID"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "CONFIRMED", decode(t, w)["status"])

	w = f.do(http.MethodGet, "/api/public/bookings/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://zoom.example.com/j/123", decode(t, w)["online_meeting_url"])
}

func TestPublic_BookingNotFound(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/public/bookings/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "booking_not_found", decode(t, w)["error_code"])

	w = f.do(http.MethodGet, "/api/public/bookings/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancellationFlow(t *testing.T) {
	f := newFixture(t)
	id := f.register(t)

	// Empty body is allowed.
	req := httptest.NewRequest(http.MethodPost, "/api/public/bookings/"+id.String()+"/cancellation", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "CANCELLATION_REQUESTED", decode(t, w)["status"])

	w = f.do(http.MethodPost, "/api/public/bookings/"+id.String()+"/cancellation", gin.H{"reason": "sick"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "cancellation_already_requested", decode(t, w)["error_code"])

	w = f.do(http.MethodPost, "/api/me/bookings/"+id.String()+"/cancellation/approve", gin.H{"refund_notes": "refunded in full"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "CANCELLED", body["status"])
	assert.Equal(t, "refunded in full", body["refund_notes"])
}

func TestCatalog_List(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/public/teachers/maya/programs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "maya", body["teacher"].(map[string]any)["slug"])
	programs := body["programs"].([]any)
	require.Len(t, programs, 1)
	assert.NotContains(t, programs[0].(map[string]any), "online_meeting_url")

	w = f.do(http.MethodGet, "/api/public/teachers/nobody/programs", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "teacher_not_found", decode(t, w)["error_code"])
}

func TestDashboard_ProgramBookings(t *testing.T) {
	f := newFixture(t)
	f.register(t)

	w := f.do(http.MethodGet, "/api/me/programs/"+f.program.ID.String()+"/bookings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["total"])
	row := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "ana@example.com", row["student_email"])

	w = f.do(http.MethodGet, "/api/me/programs/"+f.program.ID.String()+"/bookings?status=BOGUS", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodGet, "/api/me/programs/"+uuid.NewString()+"/bookings", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboard_VenueCreateDelete(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/me/venues", gin.H{"name": "Shala Lisboa", "address": "Rua das Flores 12"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["id"].(string)

	w = f.do(http.MethodDelete, "/api/me/venues/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(http.MethodDelete, "/api/me/venues/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboard_AuditLogs(t *testing.T) {
	f := newFixture(t)
	f.register(t)
	w := f.do(http.MethodPost, "/api/public/registrations", registrationBody(f.program.ID))
	require.Equal(t, http.StatusConflict, w.Code)
	f.audit.Close()

	w = f.do(http.MethodGet, "/api/me/audit-logs?action=booking_created", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["total"])
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, 50, body["per_page"])

	w = f.do(http.MethodGet, "/api/me/audit-logs?from=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "from", decode(t, w)["field"])
}
