package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type HealthForm struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"booking_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	Student   *Student  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"student,omitempty"`

	HowDidYouHear     string         `gorm:"size:200" json:"how_did_you_hear"`
	PreviousPractice  string         `gorm:"type:text" json:"previous_practice"`
	HasLearnedBefore  bool           `json:"has_learned_before"`
	PreviousPractices string         `gorm:"type:text" json:"previous_practices"`
	HealthConditions  pq.StringArray `gorm:"type:text[]" json:"health_conditions"`
	ConditionDetails  string         `gorm:"type:text" json:"condition_details"`
	IsPregnant        bool           `json:"is_pregnant"`
	HadRecentSurgery  bool           `json:"had_recent_surgery"`

	ConsentGiven     bool       `gorm:"not null" json:"consent_given"`
	ConsentTimestamp *time.Time `json:"consent_timestamp"`

	IsReviewed bool       `gorm:"default:false;index" json:"is_reviewed"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	ReviewedBy *uuid.UUID `gorm:"type:uuid" json:"reviewed_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *HealthForm) BeforeCreate(*gorm.DB) error {
	ensureID(&h.ID)
	return nil
}
