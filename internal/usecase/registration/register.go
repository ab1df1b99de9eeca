package registration

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	"github.com/BruksfildServices01/shala-api/internal/cache"
	"github.com/BruksfildServices01/shala-api/internal/domain"
	"github.com/BruksfildServices01/shala-api/internal/domain/booking"
	"github.com/BruksfildServices01/shala-api/internal/domain/program"
	"github.com/BruksfildServices01/shala-api/internal/domain/student"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/usecase"
	"github.com/BruksfildServices01/shala-api/internal/validators"
)

type StudentInput struct {
	FirstName                string `json:"first_name" validate:"required,min=2,max=100"`
	LastName                 string `json:"last_name" validate:"required,min=2,max=100"`
	Email                    string `json:"email" validate:"required,email,max=255"`
	DateOfBirth              string `json:"date_of_birth" validate:"omitempty,isodate"`
	Gender                   string `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Phone                    string `json:"phone" validate:"required,min=10,max=30"`
	EmergencyContactName     string `json:"emergency_contact_name" validate:"required,min=2,max=100"`
	EmergencyContactRelation string `json:"emergency_contact_relation" validate:"required,min=2,max=100"`
	EmergencyContactPhone    string `json:"emergency_contact_phone" validate:"required,min=10,max=30"`
}

type HealthFormInput struct {
	HowDidYouHear     string   `json:"how_did_you_hear" validate:"max=200"`
	PreviousPractice  string   `json:"previous_practice" validate:"max=5000"`
	HasLearnedBefore  bool     `json:"has_learned_before"`
	PreviousPractices string   `json:"previous_practices" validate:"max=5000"`
	HealthConditions  []string `json:"health_conditions" validate:"max=50,dive,min=1,max=100"`
	ConditionDetails  string   `json:"condition_details" validate:"max=5000"`
	IsPregnant        bool     `json:"is_pregnant"`
	HadRecentSurgery  bool     `json:"had_recent_surgery"`
	ConsentGiven      bool     `json:"consent_given" validate:"accepted"`
}

type Input struct {
	ProgramID     string           `json:"program_id" validate:"required,uuid"`
	Student       StudentInput     `json:"student"`
	HealthForm    *HealthFormInput `json:"health_form"`
	PaymentMethod string           `json:"payment_method" validate:"required,oneof=ONLINE BANK_TRANSFER CASH FREE"`
}

type Result struct {
	BookingID       uuid.UUID             `json:"booking_id"`
	StudentID       uuid.UUID             `json:"student_id"`
	Status          booking.Status        `json:"status"`
	PaymentStatus   booking.PaymentStatus `json:"payment_status"`
	PaymentMethod   booking.PaymentMethod `json:"payment_method"`
	IsWaitlisted    bool                  `json:"is_waitlisted"`
	RequiresPayment bool                  `json:"requires_payment"`
	Message         string                `json:"message"`
}

// AlreadyRegisteredError carries the booking the student already holds for
// the program so the caller can send them to it.
type AlreadyRegisteredError struct {
	BookingID uuid.UUID
}

func (e AlreadyRegisteredError) Error() string {
	return "already registered: booking " + e.BookingID.String()
}

func (e AlreadyRegisteredError) Unwrap() error {
	return httperr.ErrConflict("already_registered", "You are already registered for this program.")
}

type Register struct {
	repo        booking.Repository
	cache       cache.Cache
	audit       *audit.Dispatcher
	log         *zap.Logger
	verifyEmail validators.EmailDomainCheck
	now         func() time.Time
}

// NewRegister builds the registration intake. verifyEmail may be nil to
// skip the mail-domain lookup.
func NewRegister(
	repo booking.Repository,
	cache cache.Cache,
	audit *audit.Dispatcher,
	log *zap.Logger,
	verifyEmail validators.EmailDomainCheck,
) *Register {
	return &Register{
		repo:        repo,
		cache:       cache,
		audit:       audit,
		log:         log,
		verifyEmail: verifyEmail,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (uc *Register) Execute(ctx context.Context, in Input) (*Result, error) {
	in.Student.Email = strings.TrimSpace(in.Student.Email)
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	programID := uuid.MustParse(in.ProgramID)
	method := booking.PaymentMethod(in.PaymentMethod)
	email := student.NormalizeEmail(in.Student.Email)

	if uc.verifyEmail != nil && !uc.verifyEmail(ctx, email) {
		return nil, httperr.ErrValidation("student.email", "email domain cannot receive mail")
	}

	profile, err := studentFromInput(in.Student, email)
	if err != nil {
		return nil, err
	}

	now := uc.now()

	var (
		res       Result
		teacherID uuid.UUID
		existing  *uuid.UUID
	)

	err = uc.repo.Transaction(ctx, func(tx booking.Repository) error {
		p, err := tx.LockProgram(ctx, programID)
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("program_not_found", "Program not found")
		}
		if err != nil {
			return err
		}
		if program.Status(p.Status) != program.StatusPublished {
			return httperr.ErrConflict("program_not_open", "This program is not accepting registrations.")
		}
		if p.RegistrationDeadline != nil && now.After(*p.RegistrationDeadline) {
			return httperr.ErrConflict("registration_closed", "Registration for this program has closed.")
		}
		if method == booking.MethodFree && !p.IsFree {
			return httperr.ErrValidation("payment_method", "payment_method FREE is only available for free programs")
		}

		active, err := tx.CountActiveBookings(ctx, p.ID)
		if err != nil {
			return err
		}
		waitlisted := !booking.HasRoom(p.Capacity, active)

		if p.RequiresHealthForm && in.HealthForm == nil {
			return httperr.ErrValidation("health_form", "A health form is required for this program")
		}

		profile.TeacherID = p.TeacherID
		st, err := tx.UpsertStudent(ctx, profile)
		if err != nil {
			return err
		}

		prev, err := tx.FindBooking(ctx, st.ID, p.ID)
		if err == nil {
			// Keep the refreshed contact data and report the duplicate after commit.
			existing = &prev.ID
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if p.IsFree {
			method = booking.MethodFree
		}

		b := &models.Booking{
			TeacherID:       p.TeacherID,
			StudentID:       st.ID,
			ProgramID:       p.ID,
			Status:          string(booking.InitialStatus(waitlisted, p.IsFree, method)),
			PaymentStatus:   string(booking.InitialPaymentStatus(p.IsFree)),
			PaymentMethod:   string(method),
			PaymentCurrency: p.PriceCurrency,
		}
		if !p.IsFree {
			b.PaymentAmount = p.PriceAmount
		}

		if err := tx.CreateBooking(ctx, b); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return httperr.ErrConflict("already_registered", "You are already registered for this program.")
			}
			return err
		}

		if in.HealthForm != nil {
			if err := tx.CreateHealthForm(ctx, healthFormFromInput(in.HealthForm, b.ID, st.ID, now)); err != nil {
				return err
			}
		}

		teacherID = p.TeacherID
		res = Result{
			BookingID:       b.ID,
			StudentID:       st.ID,
			Status:          booking.Status(b.Status),
			PaymentStatus:   booking.PaymentStatus(b.PaymentStatus),
			PaymentMethod:   method,
			IsWaitlisted:    waitlisted,
			RequiresPayment: booking.Status(b.Status) == booking.StatusPendingPayment,
			Message:         booking.StatusMessage(waitlisted, p.IsFree, method),
		}
		return nil
	})
	if err != nil {
		return nil, usecase.Settle(uc.log, "register", err, zap.Stringer("program_id", programID))
	}

	if existing != nil {
		return nil, AlreadyRegisteredError{BookingID: *existing}
	}

	usecase.InvalidateCatalog(ctx, uc.cache, uc.log, teacherID)

	action := audit.ActionBookingCreated
	if res.IsWaitlisted {
		action = audit.ActionBookingWaitlisted
	}
	uc.audit.Dispatch(audit.Event{
		TeacherID: teacherID,
		Action:    action,
		Entity:    audit.EntityBooking,
		EntityID:  audit.Ref(res.BookingID),
		Metadata: map[string]string{
			"program_id":     programID.String(),
			"status":         string(res.Status),
			"payment_method": string(res.PaymentMethod),
		},
	})

	uc.log.Info("registration accepted",
		zap.Stringer("booking_id", res.BookingID),
		zap.Stringer("program_id", programID),
		zap.String("status", string(res.Status)),
	)

	return &res, nil
}

func studentFromInput(in StudentInput, email string) (*models.Student, error) {
	s := &models.Student{
		Email:                    email,
		FirstName:                validators.SanitizeText(in.FirstName),
		LastName:                 validators.SanitizeText(in.LastName),
		Phone:                    in.Phone,
		EmergencyContactName:     validators.SanitizeText(in.EmergencyContactName),
		EmergencyContactRelation: validators.SanitizeText(in.EmergencyContactRelation),
		EmergencyContactPhone:    in.EmergencyContactPhone,
	}
	s.Name = student.FullName(s.FirstName, s.LastName)

	if in.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", in.DateOfBirth)
		if err != nil {
			return nil, httperr.ErrValidation("student.date_of_birth", "date_of_birth must be a date in YYYY-MM-DD format")
		}
		s.DateOfBirth = &dob
	}
	if in.Gender != "" {
		g := in.Gender
		s.Gender = &g
	}
	return s, nil
}

func healthFormFromInput(in *HealthFormInput, bookingID, studentID uuid.UUID, now time.Time) *models.HealthForm {
	conditions := make([]string, 0, len(in.HealthConditions))
	for _, c := range in.HealthConditions {
		conditions = append(conditions, validators.SanitizeText(c))
	}

	return &models.HealthForm{
		BookingID:         bookingID,
		StudentID:         studentID,
		HowDidYouHear:     validators.SanitizeText(in.HowDidYouHear),
		PreviousPractice:  validators.SanitizeText(in.PreviousPractice),
		HasLearnedBefore:  in.HasLearnedBefore,
		PreviousPractices: validators.SanitizeText(in.PreviousPractices),
		HealthConditions:  conditions,
		ConditionDetails:  validators.SanitizeText(in.ConditionDetails),
		IsPregnant:        in.IsPregnant,
		HadRecentSurgery:  in.HadRecentSurgery,
		ConsentGiven:      in.ConsentGiven,
		ConsentTimestamp:  &now,
	}
}
