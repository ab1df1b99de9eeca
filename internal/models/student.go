package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Student belongs to exactly one teacher and is identified by email within it.
type Student struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_students_teacher_email,priority:1" json:"teacher_id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:idx_students_teacher_email,priority:2" json:"email"`

	FirstName   string     `gorm:"size:100" json:"first_name"`
	LastName    string     `gorm:"size:100" json:"last_name"`
	Name        string     `gorm:"size:200" json:"name"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth"`
	Gender      *string    `gorm:"size:10" json:"gender"`

	Phone                    string `gorm:"size:30" json:"phone"`
	WhatsappPhone            string `gorm:"size:30" json:"whatsapp_phone"`
	EmergencyContactName     string `gorm:"size:100" json:"emergency_contact_name"`
	EmergencyContactRelation string `gorm:"size:100" json:"emergency_contact_relation"`
	EmergencyContactPhone    string `gorm:"size:30" json:"emergency_contact_phone"`

	Tags         pq.StringArray `gorm:"type:text[]" json:"tags"`
	TeacherNotes string         `gorm:"type:text" json:"teacher_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Student) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
