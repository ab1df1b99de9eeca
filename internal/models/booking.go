package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null;index" json:"teacher_id"`

	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_student_program,priority:1" json:"student_id"`
	Student   *Student  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"student,omitempty"`
	ProgramID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_bookings_student_program,priority:2" json:"program_id"`
	Program   *Program  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"program,omitempty"`

	Status          string              `gorm:"size:30;not null;index" json:"status"`
	PaymentStatus   string              `gorm:"size:20;not null" json:"payment_status"`
	PaymentMethod   string              `gorm:"size:20;not null" json:"payment_method"`
	PaymentAmount   decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"payment_amount"`
	PaymentCurrency string              `gorm:"size:3" json:"payment_currency"`

	CancelledReason *string    `gorm:"type:text" json:"cancelled_reason"`
	CancelledAt     *time.Time `json:"cancelled_at"`
	RefundNotes     *string    `gorm:"type:text" json:"refund_notes"`

	HealthForm *HealthForm `gorm:"foreignKey:BookingID" json:"health_form,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(*gorm.DB) error {
	ensureID(&b.ID)
	return nil
}
