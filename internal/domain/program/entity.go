package program

import (
	"strings"
	"unicode/utf8"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type VenueType string

const (
	VenueInPerson VenueType = "IN_PERSON"
	VenueOnline   VenueType = "ONLINE"
	VenueHybrid   VenueType = "HYBRID"
)

func (v VenueType) NeedsVenue() bool { return v == VenueInPerson || v == VenueHybrid }

func (v VenueType) NeedsMeeting() bool { return v == VenueOnline || v == VenueHybrid }

const (
	FormatMultiDay  = "MULTI_DAY"
	FormatSingleDay = "SINGLE_DAY"
	FormatHalfDay   = "HALF_DAY"
	FormatCustom    = "CUSTOM"
)

func NormalizeMeetingURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" || strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "http://") {
		return u
	}
	return "https://" + u
}

// ===============================
// Domain Actions
// ===============================

// Transition moves p to the requested status. Publishing needs at least one
// session so a duplicated draft cannot go live without dates.
func Transition(p *models.Program, to Status) error {
	if err := ValidateTransition(Status(p.Status), to); err != nil {
		return err
	}
	if to == StatusPublished && len(p.Sessions) == 0 {
		return httperr.ErrConflict("program_without_sessions", "Add at least one session before publishing.")
	}

	p.Status = string(to)
	return nil
}

// Duplicate builds a new DRAFT from src with its dates cleared. The caller
// assigns the slug.
func Duplicate(src *models.Program) *models.Program {
	return &models.Program{
		TeacherID:               src.TeacherID,
		TemplateID:              src.TemplateID,
		Name:                    copyName(src.Name),
		Description:             src.Description,
		Status:                  string(StatusDraft),
		VenueType:               src.VenueType,
		VenueID:                 src.VenueID,
		OnlineMeetingProvider:   src.OnlineMeetingProvider,
		OnlineMeetingURL:        src.OnlineMeetingURL,
		Sessions:                datatypes.JSONSlice[models.Session]{},
		Capacity:                src.Capacity,
		IsFree:                  src.IsFree,
		PriceAmount:             src.PriceAmount,
		PriceCurrency:           src.PriceCurrency,
		AllowPayAtVenue:         src.AllowPayAtVenue,
		Notes:                   src.Notes,
		WhatToBring:             src.WhatToBring,
		PreparationInstructions: src.PreparationInstructions,
		CancellationPolicyText:  src.CancellationPolicyText,
		RequiresHealthForm:      src.RequiresHealthForm,
	}
}

// copyName stays within the 100-character name column, counting runes.
func copyName(name string) string {
	const (
		suffix   = " (Copy)"
		maxRunes = 100
	)
	room := maxRunes - utf8.RuneCountInString(suffix)
	if r := []rune(name); len(r) > room {
		name = strings.TrimRight(string(r[:room]), " ")
	}
	return name + suffix
}

func CanDelete(p *models.Program, bookings int64) error {
	if Status(p.Status) != StatusDraft {
		return httperr.ErrConflict("program_not_draft", "Only draft programs can be deleted")
	}
	if bookings > 0 {
		return httperr.ErrConflict("program_has_bookings", "Cannot delete a program with bookings")
	}
	return nil
}

// SnapshotTemplate copies the reusable parts of p into a teacher-owned
// template. p is not modified.
func SnapshotTemplate(p *models.Program, name, formatType string) *models.ScheduleTemplate {
	if formatType == "" {
		formatType = FormatCustom
	}
	sessions := make(datatypes.JSONSlice[models.Session], len(p.Sessions))
	copy(sessions, p.Sessions)

	teacherID := p.TeacherID
	return &models.ScheduleTemplate{
		TeacherID:          &teacherID,
		Name:               name,
		FormatType:         formatType,
		DefaultSessions:    sessions,
		DefaultCapacity:    p.Capacity,
		DefaultPrice:       p.PriceAmount,
		DefaultCurrency:    p.PriceCurrency,
		DefaultNotes:       p.Notes,
		DefaultWhatToBring: p.WhatToBring,
		DefaultPreparation: p.PreparationInstructions,
		IsPlatformTemplate: false,
	}
}
