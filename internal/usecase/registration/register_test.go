package registration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	"github.com/BruksfildServices01/shala-api/internal/cache"
	"github.com/BruksfildServices01/shala-api/internal/domain/booking"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/infra/memory"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type fixture struct {
	store   *memory.Store
	cache   *cache.Memory
	teacher models.Teacher
	uc      *Register
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := memory.NewStore()
	c := cache.NewMemory()
	d := audit.NewDispatcher(memory.NewAuditStore(s), zap.NewNop())
	t.Cleanup(d.Close)

	return &fixture{
		store:   s,
		cache:   c,
		teacher: s.PutTeacher(models.Teacher{Email: "maya@example.com", Slug: "maya", Name: "Maya"}),
		uc:      NewRegister(memory.NewBookingRepository(s), c, d, zap.NewNop(), nil),
	}
}

func (f *fixture) program(mut func(*models.Program)) models.Program {
	p := models.Program{
		TeacherID:     f.teacher.ID,
		Name:          "Morning Mysore",
		Slug:          "morning-mysore",
		Status:        "PUBLISHED",
		VenueType:     "ONLINE",
		PriceAmount:   decimal.NewNullDecimal(decimal.RequireFromString("120.00")),
		PriceCurrency: "EUR",
		Sessions: datatypes.JSONSlice[models.Session]{
			{Date: "2026-11-02", StartTime: "07:00", EndTime: "09:00", Title: "Day 1"},
		},
	}
	if mut != nil {
		mut(&p)
	}
	return f.store.PutProgram(p)
}

func (f *fixture) seat(programID uuid.UUID, status booking.Status) {
	st := f.store.PutStudent(models.Student{TeacherID: f.teacher.ID, Email: uuid.NewString() + "@example.com"})
	f.store.PutBooking(models.Booking{
		TeacherID: f.teacher.ID,
		StudentID: st.ID,
		ProgramID: programID,
		Status:    string(status),
	})
}

func input(programID uuid.UUID, method string) Input {
	return Input{
		ProgramID: programID.String(),
		Student: StudentInput{
			FirstName:                "Ana",
			LastName:                 "Silva",
			Email:                    "Ana.Silva@Example.com ",
			Phone:                    "+351912345678",
			EmergencyContactName:     "Rui Silva",
			EmergencyContactRelation: "Brother",
			EmergencyContactPhone:    "+351912345679",
		},
		PaymentMethod: method,
	}
}

func intp(n int) *int { return &n }

func TestRegister_WaitlistsWhenFull(t *testing.T) {
	f := newFixture(t)
	p := f.program(func(p *models.Program) { p.Capacity = intp(2) })
	f.seat(p.ID, booking.StatusConfirmed)
	f.seat(p.ID, booking.StatusPendingPayment)
	f.seat(p.ID, booking.StatusCancelled)
	f.seat(p.ID, booking.StatusWaitlisted)

	res, err := f.uc.Execute(context.Background(), input(p.ID, "BANK_TRANSFER"))
	require.NoError(t, err)

	assert.Equal(t, booking.StatusWaitlisted, res.Status)
	assert.True(t, res.IsWaitlisted)
	assert.False(t, res.RequiresPayment)
	assert.Equal(t, booking.MsgWaitlisted, res.Message)
}

func TestRegister_PaidOnlinePendsPayment(t *testing.T) {
	f := newFixture(t)
	p := f.program(func(p *models.Program) { p.Capacity = intp(10) })

	res, err := f.uc.Execute(context.Background(), input(p.ID, "ONLINE"))
	require.NoError(t, err)

	assert.Equal(t, booking.StatusPendingPayment, res.Status)
	assert.Equal(t, booking.PaymentPending, res.PaymentStatus)
	assert.True(t, res.RequiresPayment)
	assert.Equal(t, booking.MsgOnlinePayment, res.Message)

	stored, ok := f.store.Booking(res.BookingID)
	require.True(t, ok)
	assert.True(t, stored.PaymentAmount.Valid)
	assert.Equal(t, "120", stored.PaymentAmount.Decimal.String())
	assert.Equal(t, "EUR", stored.PaymentCurrency)
	assert.Equal(t, f.teacher.ID, stored.TeacherID)
}

func TestRegister_PaidOfflineConfirms(t *testing.T) {
	f := newFixture(t)
	p := f.program(nil)

	res, err := f.uc.Execute(context.Background(), input(p.ID, "CASH"))
	require.NoError(t, err)

	assert.Equal(t, booking.StatusConfirmed, res.Status)
	assert.Equal(t, booking.PaymentPending, res.PaymentStatus)
	assert.Equal(t, booking.MsgPayAsInstructed, res.Message)
}

func TestRegister_FreeProgramRecordsFree(t *testing.T) {
	f := newFixture(t)
	p := f.program(func(p *models.Program) {
		p.IsFree = true
		p.PriceAmount = decimal.NullDecimal{}
	})

	res, err := f.uc.Execute(context.Background(), input(p.ID, "ONLINE"))
	require.NoError(t, err)

	assert.Equal(t, booking.StatusConfirmed, res.Status)
	assert.Equal(t, booking.PaymentWaived, res.PaymentStatus)
	assert.Equal(t, booking.MethodFree, res.PaymentMethod)
	assert.Equal(t, booking.MsgFree, res.Message)

	stored, _ := f.store.Booking(res.BookingID)
	assert.Equal(t, "FREE", stored.PaymentMethod)
	assert.False(t, stored.PaymentAmount.Valid)
}

func TestRegister_FreeMethodOnPaidProgram(t *testing.T) {
	f := newFixture(t)
	p := f.program(nil)

	_, err := f.uc.Execute(context.Background(), input(p.ID, "FREE"))

	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, httperr.KindValidation, be.Kind)
	assert.Equal(t, "payment_method", be.Field)
	assert.Empty(t, f.store.Bookings())
}

func TestRegister_DuplicateReturnsExistingBooking(t *testing.T) {
	f := newFixture(t)
	p := f.program(nil)
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, input(p.ID, "ONLINE"))
	require.NoError(t, err)

	again := input(p.ID, "ONLINE")
	again.Student.Phone = "+351900000000"
	_, err = f.uc.Execute(ctx, again)

	var dup AlreadyRegisteredError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, first.BookingID, dup.BookingID)
	assert.True(t, httperr.IsBusiness(err, "already_registered"))

	assert.Len(t, f.store.Bookings(), 1)
	students := f.store.Students()
	require.Len(t, students, 1)
	assert.Equal(t, "+351900000000", students[0].Phone)
}

func TestRegister_ReusesStudentAcrossPrograms(t *testing.T) {
	f := newFixture(t)
	a := f.program(nil)
	b := f.program(func(p *models.Program) { p.Slug = "evening-flow" })
	ctx := context.Background()

	r1, err := f.uc.Execute(ctx, input(a.ID, "ONLINE"))
	require.NoError(t, err)
	in := input(b.ID, "ONLINE")
	in.Student.Email = "ana.silva@example.com"
	r2, err := f.uc.Execute(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, r1.StudentID, r2.StudentID)
	students := f.store.Students()
	require.Len(t, students, 1)
	assert.Equal(t, "ana.silva@example.com", students[0].Email)
	assert.Equal(t, "Ana Silva", students[0].Name)
}

func TestRegister_HealthForm(t *testing.T) {
	f := newFixture(t)
	p := f.program(func(p *models.Program) { p.RequiresHealthForm = true })
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, input(p.ID, "ONLINE"))
	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "health_form", be.Field)
	assert.Empty(t, f.store.Students())

	in := input(p.ID, "ONLINE")
	in.HealthForm = &HealthFormInput{ConsentGiven: false}
	_, err = f.uc.Execute(ctx, in)
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "health_form.consent_given", be.Field)

	in.HealthForm = &HealthFormInput{
		HealthConditions: []string{"<b>back pain</b>"},
		IsPregnant:       true,
		ConsentGiven:     true,
	}
	res, err := f.uc.Execute(ctx, in)
	require.NoError(t, err)

	forms := f.store.HealthForms()
	require.Len(t, forms, 1)
	assert.Equal(t, res.BookingID, forms[0].BookingID)
	assert.Equal(t, res.StudentID, forms[0].StudentID)
	assert.Equal(t, []string{"back pain"}, []string(forms[0].HealthConditions))
	assert.NotNil(t, forms[0].ConsentTimestamp)
	assert.False(t, forms[0].IsReviewed)
}

func TestRegister_ProgramNotOpen(t *testing.T) {
	f := newFixture(t)
	draft := f.program(func(p *models.Program) { p.Status = "DRAFT" })

	_, err := f.uc.Execute(context.Background(), input(draft.ID, "ONLINE"))
	assert.True(t, httperr.IsBusiness(err, "program_not_open"))

	_, err = f.uc.Execute(context.Background(), input(uuid.New(), "ONLINE"))
	assert.True(t, httperr.IsBusiness(err, "program_not_found"))
}

func TestRegister_DeadlinePassed(t *testing.T) {
	f := newFixture(t)
	p := f.program(nil)
	deadline := f.uc.now().AddDate(0, 0, -1)
	p.RegistrationDeadline = &deadline
	f.store.PutProgram(p)

	_, err := f.uc.Execute(context.Background(), input(p.ID, "ONLINE"))
	assert.True(t, httperr.IsBusiness(err, "registration_closed"))
}

func TestRegister_ValidationNamesField(t *testing.T) {
	f := newFixture(t)
	p := f.program(nil)

	in := input(p.ID, "ONLINE")
	in.Student.Phone = "123"
	_, err := f.uc.Execute(context.Background(), in)

	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, httperr.KindValidation, be.Kind)
	assert.Equal(t, "student.phone", be.Field)
}

func TestRegister_TrimsEmailBeforeValidating(t *testing.T) {
	f := newFixture(t)
	p := f.program(nil)

	in := input(p.ID, "ONLINE")
	in.Student.Email = "  Ana.Silva@Example.com \t"
	_, err := f.uc.Execute(context.Background(), in)
	require.NoError(t, err)

	students := f.store.Students()
	require.Len(t, students, 1)
	assert.Equal(t, "ana.silva@example.com", students[0].Email)

	in.Student.Email = " not an email "
	_, err = f.uc.Execute(context.Background(), in)
	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "student.email", be.Field)
}

func TestRegister_RejectedEmailDomain(t *testing.T) {
	f := newFixture(t)
	p := f.program(nil)
	f.uc.verifyEmail = func(context.Context, string) bool { return false }

	_, err := f.uc.Execute(context.Background(), input(p.ID, "ONLINE"))

	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "student.email", be.Field)
}

func TestRegister_StorageFailureIsHidden(t *testing.T) {
	f := newFixture(t)
	p := f.program(nil)
	f.store.Fail(errors.New("connection reset"))

	_, err := f.uc.Execute(context.Background(), input(p.ID, "ONLINE"))

	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, httperr.KindInternal, be.Kind)
	assert.NotContains(t, err.Error(), "connection reset")
}

func TestRegister_InvalidatesCatalog(t *testing.T) {
	f := newFixture(t)
	p := f.program(nil)
	ctx := context.Background()
	require.NoError(t, f.cache.SetJSON(ctx, f.teacher.ID, "programs", []string{"x"}, 0))

	_, err := f.uc.Execute(ctx, input(p.ID, "ONLINE"))
	require.NoError(t, err)
	assert.Zero(t, f.cache.Len())
}

func TestRegister_ConcurrentNeverOverbooks(t *testing.T) {
	f := newFixture(t)
	p := f.program(func(p *models.Program) { p.Capacity = intp(3) })

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in := input(p.ID, "CASH")
			in.Student.Email = uuid.NewString() + "@example.com"
			_, err := f.uc.Execute(context.Background(), in)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var seated, waitlisted int
	for _, b := range f.store.Bookings() {
		if b.Status == string(booking.StatusWaitlisted) {
			waitlisted++
		} else {
			seated++
		}
	}
	assert.Equal(t, 3, seated)
	assert.Equal(t, 7, waitlisted)
}

func TestRegister_LastSeatThenWaitlist(t *testing.T) {
	f := newFixture(t)
	p := f.program(func(p *models.Program) { p.Capacity = intp(1) })
	ctx := context.Background()

	x, err := f.uc.Execute(ctx, input(p.ID, "CASH"))
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, x.Status)
	assert.Equal(t, booking.PaymentPending, x.PaymentStatus)

	in := input(p.ID, "CASH")
	in.Student.Email = "yuki@example.com"
	y, err := f.uc.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusWaitlisted, y.Status)
}
