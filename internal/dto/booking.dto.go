package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainBooking "github.com/BruksfildServices01/shala-api/internal/domain/booking"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type PublicStudentDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// PublicBookingDTO is what a student sees behind their confirmation link.
// The meeting link is only handed out for confirmed bookings.
type PublicBookingDTO struct {
	ID               uuid.UUID         `json:"id"`
	Status           string            `json:"status"`
	PaymentStatus    string            `json:"payment_status"`
	PaymentMethod    string            `json:"payment_method"`
	PaymentAmount    *decimal.Decimal  `json:"payment_amount"`
	PaymentCurrency  string            `json:"payment_currency"`
	CancelledAt      *time.Time        `json:"cancelled_at"`
	HasHealthForm    bool              `json:"has_health_form"`
	OnlineMeetingURL string            `json:"online_meeting_url,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	Student          *PublicStudentDTO `json:"student"`
	Teacher          *PublicTeacherDTO `json:"teacher"`
	Program          *PublicProgramDTO `json:"program"`
}

func NewPublicBookingDTO(b *models.Booking) PublicBookingDTO {
	out := PublicBookingDTO{
		ID:              b.ID,
		Status:          b.Status,
		PaymentStatus:   b.PaymentStatus,
		PaymentMethod:   b.PaymentMethod,
		PaymentCurrency: b.PaymentCurrency,
		CancelledAt:     b.CancelledAt,
		HasHealthForm:   b.HealthForm != nil,
		CreatedAt:       b.CreatedAt,
	}
	if b.PaymentAmount.Valid {
		amount := b.PaymentAmount.Decimal
		out.PaymentAmount = &amount
	}
	if b.Student != nil {
		out.Student = &PublicStudentDTO{
			FirstName: b.Student.FirstName,
			LastName:  b.Student.LastName,
			Email:     b.Student.Email,
		}
	}
	if p := b.Program; p != nil {
		program := NewPublicProgramDTO(p, nil)
		out.Program = &program
		if p.Teacher != nil {
			teacher := NewPublicTeacherDTO(p.Teacher)
			out.Teacher = &teacher
		}
		if domainBooking.Status(b.Status) == domainBooking.StatusConfirmed {
			out.OnlineMeetingURL = p.OnlineMeetingURL
		}
	}
	return out
}
