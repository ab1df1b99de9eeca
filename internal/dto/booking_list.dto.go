package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/shala-api/internal/models"
)

// BookingListDTO is one row of a program's roster on the dashboard.
type BookingListDTO struct {
	ID              uuid.UUID           `json:"id"`
	StudentID       uuid.UUID           `json:"student_id"`
	StudentName     string              `json:"student_name"`
	StudentEmail    string              `json:"student_email"`
	StudentPhone    string              `json:"student_phone"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	PaymentMethod   string              `json:"payment_method"`
	PaymentAmount   decimal.NullDecimal `json:"payment_amount"`
	PaymentCurrency string              `json:"payment_currency"`
	CancelledReason *string             `json:"cancelled_reason"`
	CreatedAt       time.Time           `json:"created_at"`
}

func NewBookingListDTO(bookings []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		row := BookingListDTO{
			ID:              b.ID,
			StudentID:       b.StudentID,
			Status:          b.Status,
			PaymentStatus:   b.PaymentStatus,
			PaymentMethod:   b.PaymentMethod,
			PaymentAmount:   b.PaymentAmount,
			PaymentCurrency: b.PaymentCurrency,
			CancelledReason: b.CancelledReason,
			CreatedAt:       b.CreatedAt,
		}
		if b.Student != nil {
			row.StudentName = b.Student.Name
			row.StudentEmail = b.Student.Email
			row.StudentPhone = b.Student.Phone
		}
		out = append(out, row)
	}
	return out
}
