package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Session struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Title     string `json:"title"`
}

type Program struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	TeacherID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_programs_teacher_slug,priority:1" json:"teacher_id"`
	Teacher    *Teacher   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"teacher,omitempty"`
	TemplateID *uuid.UUID `gorm:"type:uuid" json:"template_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:100;not null;uniqueIndex:idx_programs_teacher_slug,priority:2" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"size:20;not null;default:'DRAFT';index" json:"status"`

	VenueType             string     `gorm:"size:20;not null" json:"venue_type"`
	VenueID               *uuid.UUID `gorm:"type:uuid;index" json:"venue_id"`
	Venue                 *Venue     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"venue,omitempty"`
	OnlineMeetingProvider *string    `gorm:"size:20" json:"online_meeting_provider"`
	OnlineMeetingURL      string     `gorm:"size:500" json:"online_meeting_url"`

	Sessions             datatypes.JSONSlice[Session] `gorm:"type:jsonb" json:"sessions"`
	RegistrationDeadline *time.Time                   `json:"registration_deadline"`
	Capacity             *int                         `json:"capacity"`

	IsFree          bool                `gorm:"default:false" json:"is_free"`
	PriceAmount     decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"price_amount"`
	PriceCurrency   string              `gorm:"size:3;default:'USD'" json:"price_currency"`
	AllowPayAtVenue bool                `gorm:"default:false" json:"allow_pay_at_venue"`

	Notes                   string `gorm:"type:text" json:"notes"`
	WhatToBring             string `gorm:"type:text" json:"what_to_bring"`
	PreparationInstructions string `gorm:"type:text" json:"preparation_instructions"`
	CancellationPolicyText  string `gorm:"type:text" json:"cancellation_policy_text"`
	RequiresHealthForm      bool   `gorm:"default:false" json:"requires_health_form"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Program) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

type ScheduleTemplate struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	TeacherID  *uuid.UUID `gorm:"type:uuid;index" json:"teacher_id"`
	Name       string     `gorm:"size:100;not null" json:"name"`
	FormatType string     `gorm:"size:20;not null;default:'CUSTOM'" json:"format_type"`

	DefaultSessions    datatypes.JSONSlice[Session] `gorm:"type:jsonb" json:"default_sessions"`
	DefaultCapacity    *int                         `json:"default_capacity"`
	DefaultPrice       decimal.NullDecimal          `gorm:"type:numeric(10,2)" json:"default_price"`
	DefaultCurrency    string                       `gorm:"size:3;default:'USD'" json:"default_currency"`
	DefaultNotes       string                       `gorm:"type:text" json:"default_notes"`
	DefaultWhatToBring string                       `gorm:"type:text" json:"default_what_to_bring"`
	DefaultPreparation string                       `gorm:"type:text" json:"default_preparation"`

	IsPlatformTemplate bool `gorm:"default:false" json:"is_platform_template"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *ScheduleTemplate) BeforeCreate(*gorm.DB) error {
	ensureID(&t.ID)
	return nil
}
