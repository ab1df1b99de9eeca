package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/shala-api/internal/models"
)

type PublicTeacherDTO struct {
	Slug      string   `json:"slug"`
	Name      string   `json:"name"`
	PhotoURL  string   `json:"photo_url"`
	Bio       string   `json:"bio"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
	Languages []string `json:"languages"`
	Timezone  string   `json:"timezone"`
}

type PublicVenueDTO struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// PublicProgramDTO leaves out the meeting link, which students only get
// once registered.
type PublicProgramDTO struct {
	ID                      uuid.UUID        `json:"id"`
	Slug                    string           `json:"slug"`
	Name                    string           `json:"name"`
	Description             string           `json:"description"`
	VenueType               string           `json:"venue_type"`
	Venue                   *PublicVenueDTO  `json:"venue"`
	OnlineMeetingProvider   *string          `json:"online_meeting_provider"`
	Sessions                []models.Session `json:"sessions"`
	RegistrationDeadline    *time.Time       `json:"registration_deadline"`
	Capacity                *int             `json:"capacity"`
	RemainingCapacity       *int             `json:"remaining_capacity"`
	IsFull                  bool             `json:"is_full"`
	IsFree                  bool             `json:"is_free"`
	PriceAmount             *decimal.Decimal `json:"price_amount"`
	PriceCurrency           string           `json:"price_currency"`
	AllowPayAtVenue         bool             `json:"allow_pay_at_venue"`
	WhatToBring             string           `json:"what_to_bring"`
	PreparationInstructions string           `json:"preparation_instructions"`
	CancellationPolicyText  string           `json:"cancellation_policy_text"`
	RequiresHealthForm      bool             `json:"requires_health_form"`
}

type PublicCatalogDTO struct {
	Teacher  PublicTeacherDTO   `json:"teacher"`
	Programs []PublicProgramDTO `json:"programs"`
}

type PublicProgramPageDTO struct {
	Teacher PublicTeacherDTO `json:"teacher"`
	Program PublicProgramDTO `json:"program"`
}

func NewPublicTeacherDTO(t *models.Teacher) PublicTeacherDTO {
	langs := []string(t.Languages)
	if langs == nil {
		langs = []string{}
	}
	return PublicTeacherDTO{
		Slug:      t.Slug,
		Name:      t.Name,
		PhotoURL:  t.PhotoURL,
		Bio:       t.Bio,
		City:      t.City,
		Country:   t.Country,
		Languages: langs,
		Timezone:  t.Timezone,
	}
}

// NewPublicProgramDTO needs remaining to be nil for unlimited programs.
func NewPublicProgramDTO(p *models.Program, remaining *int) PublicProgramDTO {
	out := PublicProgramDTO{
		ID:                      p.ID,
		Slug:                    p.Slug,
		Name:                    p.Name,
		Description:             p.Description,
		VenueType:               p.VenueType,
		OnlineMeetingProvider:   p.OnlineMeetingProvider,
		Sessions:                []models.Session(p.Sessions),
		RegistrationDeadline:    p.RegistrationDeadline,
		Capacity:                p.Capacity,
		RemainingCapacity:       remaining,
		IsFull:                  remaining != nil && *remaining == 0,
		IsFree:                  p.IsFree,
		PriceCurrency:           p.PriceCurrency,
		AllowPayAtVenue:         p.AllowPayAtVenue,
		WhatToBring:             p.WhatToBring,
		PreparationInstructions: p.PreparationInstructions,
		CancellationPolicyText:  p.CancellationPolicyText,
		RequiresHealthForm:      p.RequiresHealthForm,
	}
	if out.Sessions == nil {
		out.Sessions = []models.Session{}
	}
	if p.PriceAmount.Valid {
		price := p.PriceAmount.Decimal
		out.PriceAmount = &price
	}
	if p.Venue != nil {
		out.Venue = &PublicVenueDTO{
			Name:    p.Venue.Name,
			Address: p.Venue.Address,
			City:    p.Venue.City,
			Country: p.Venue.Country,
		}
	}
	return out
}
