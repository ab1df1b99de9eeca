package program

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainProgram "github.com/BruksfildServices01/shala-api/internal/domain/program"
	domainTeacher "github.com/BruksfildServices01/shala-api/internal/domain/teacher"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/timezone"
	"github.com/BruksfildServices01/shala-api/internal/usecase"
	"github.com/BruksfildServices01/shala-api/internal/usecase/venue"
	"github.com/BruksfildServices01/shala-api/internal/validators"
)

type SessionInput struct {
	Date      string `json:"date" validate:"required,isodate"`
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm"`
	Title     string `json:"title" validate:"required,notblank,max=100"`
}

type CreateInput struct {
	Name        string `json:"name" validate:"required,notblank,min=3,max=100"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description" validate:"max=10000"`
	TemplateID  string `json:"template_id" validate:"omitempty,uuid"`
	Status      string `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`

	VenueType             string       `json:"venue_type" validate:"required,oneof=IN_PERSON ONLINE HYBRID"`
	VenueID               string       `json:"venue_id" validate:"omitempty,uuid"`
	NewVenue              *venue.Input `json:"new_venue"`
	OnlineMeetingProvider string       `json:"online_meeting_provider" validate:"omitempty,oneof=ZOOM GOOGLE_MEET CUSTOM"`
	OnlineMeetingURL      string       `json:"online_meeting_url" validate:"max=500"`

	Sessions             []SessionInput `json:"sessions" validate:"required,min=1,dive"`
	RegistrationDeadline *time.Time     `json:"registration_deadline"`
	Capacity             *int           `json:"capacity" validate:"omitempty,gt=0"`

	IsFree          bool             `json:"is_free"`
	PriceAmount     *decimal.Decimal `json:"price_amount"`
	PriceCurrency   string           `json:"price_currency" validate:"omitempty,currency"`
	AllowPayAtVenue bool             `json:"allow_pay_at_venue"`

	Notes                   string `json:"notes" validate:"max=5000"`
	WhatToBring             string `json:"what_to_bring" validate:"max=5000"`
	PreparationInstructions string `json:"preparation_instructions" validate:"max=5000"`
	CancellationPolicyText  string `json:"cancellation_policy_text" validate:"max=5000"`
	RequiresHealthForm      bool   `json:"requires_health_form"`
}

const defaultCurrency = "USD"

type CreateProgram struct {
	Deps
	teachers domainTeacher.Repository
}

// NewCreateProgram needs the teacher repository to read the teacher's time
// zone when checking session times.
func NewCreateProgram(d Deps, teachers domainTeacher.Repository) *CreateProgram {
	return &CreateProgram{Deps: d, teachers: teachers}
}

func (uc *CreateProgram) Execute(ctx context.Context, teacherID uuid.UUID, in CreateInput) (*models.Program, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}
	if err := domainProgram.ValidateSlug(in.Slug); err != nil {
		return nil, err
	}

	t, err := uc.teachers.GetByID(ctx, teacherID)
	if err != nil {
		return nil, usecase.Settle(uc.Log, "create_program", mapTeacherErr(err), zap.Stringer("teacher_id", teacherID))
	}

	sessions, err := buildSessions(in.Sessions, t.Timezone)
	if err != nil {
		return nil, err
	}

	p := &models.Program{
		TeacherID:               teacherID,
		Name:                    validators.SanitizeText(in.Name),
		Slug:                    in.Slug,
		Description:             validators.SanitizeText(in.Description),
		Status:                  string(domainProgram.StatusDraft),
		VenueType:               in.VenueType,
		Sessions:                sessions,
		RegistrationDeadline:    in.RegistrationDeadline,
		Capacity:                in.Capacity,
		IsFree:                  in.IsFree,
		PriceCurrency:           in.PriceCurrency,
		AllowPayAtVenue:         in.AllowPayAtVenue,
		Notes:                   validators.SanitizeText(in.Notes),
		WhatToBring:             validators.SanitizeText(in.WhatToBring),
		PreparationInstructions: validators.SanitizeText(in.PreparationInstructions),
		CancellationPolicyText:  validators.SanitizeText(in.CancellationPolicyText),
		RequiresHealthForm:      in.RequiresHealthForm,
	}
	if in.Status != "" {
		p.Status = in.Status
	}
	if p.PriceCurrency == "" {
		p.PriceCurrency = defaultCurrency
	}
	if err := applyPrice(p, in); err != nil {
		return nil, err
	}
	if err := applyMeeting(p, in); err != nil {
		return nil, err
	}

	venueType := domainProgram.VenueType(in.VenueType)
	if venueType.NeedsVenue() && in.VenueID == "" && in.NewVenue == nil {
		return nil, httperr.ErrValidation("venue_id", "A venue is required for in-person and hybrid programs")
	}

	err = uc.Repo.Transaction(ctx, func(tx domainProgram.Repository) error {
		if in.TemplateID != "" {
			tpl, err := tx.GetTemplate(ctx, teacherID, uuid.MustParse(in.TemplateID))
			if errors.Is(err, domain.ErrNotFound) {
				return httperr.ErrNotFound("template_not_found", "Template not found")
			}
			if err != nil {
				return err
			}
			p.TemplateID = &tpl.ID
		}

		if venueType.NeedsVenue() {
			if in.VenueID != "" {
				v, err := tx.GetVenue(ctx, teacherID, uuid.MustParse(in.VenueID))
				if errors.Is(err, domain.ErrNotFound) {
					return httperr.ErrNotFound("venue_not_found", "Venue not found")
				}
				if err != nil {
					return err
				}
				p.VenueID = &v.ID
			} else {
				v := in.NewVenue.Model(teacherID)
				if err := tx.CreateVenue(ctx, v); err != nil {
					return err
				}
				p.VenueID = &v.ID
			}
		}

		if err := tx.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return httperr.ErrConflict("slug_taken", "You already have a program with this URL slug.")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, usecase.Settle(uc.Log, "create_program", err, zap.Stringer("teacher_id", teacherID))
	}

	if domainProgram.Status(p.Status) == domainProgram.StatusPublished {
		usecase.InvalidateCatalog(ctx, uc.Cache, uc.Log, teacherID)
	}
	uc.record(teacherID, audit.ActionProgramCreated, audit.EntityProgram, p.ID, map[string]string{
		"slug":   p.Slug,
		"status": p.Status,
	})
	uc.Log.Info("program created",
		zap.Stringer("program_id", p.ID),
		zap.String("slug", p.Slug),
	)

	return p, nil
}

func buildSessions(in []SessionInput, tz string) (datatypes.JSONSlice[models.Session], error) {
	out := make(datatypes.JSONSlice[models.Session], 0, len(in))
	for i, s := range in {
		if _, _, err := timezone.SessionBounds(s.Date, s.StartTime, s.EndTime, tz); err != nil {
			return nil, httperr.ErrValidation(
				"sessions["+strconv.Itoa(i)+"].end_time",
				"end_time must be after start_time",
			)
		}
		out = append(out, models.Session{
			Date:      s.Date,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Title:     validators.SanitizeText(s.Title),
		})
	}
	return out, nil
}

func applyPrice(p *models.Program, in CreateInput) error {
	if in.IsFree {
		p.PriceAmount = decimal.NullDecimal{}
		return nil
	}
	if in.PriceAmount == nil || !in.PriceAmount.IsPositive() {
		return httperr.ErrValidation("price_amount", "price_amount must be greater than 0 for paid programs")
	}
	p.PriceAmount = decimal.NewNullDecimal(in.PriceAmount.Round(2))
	return nil
}

func applyMeeting(p *models.Program, in CreateInput) error {
	if !domainProgram.VenueType(in.VenueType).NeedsMeeting() {
		return nil
	}
	if in.OnlineMeetingProvider == "" {
		return httperr.ErrValidation("online_meeting_provider", "online_meeting_provider is required for online and hybrid programs")
	}
	url := domainProgram.NormalizeMeetingURL(in.OnlineMeetingURL)
	if url == "" {
		return httperr.ErrValidation("online_meeting_url", "online_meeting_url is required for online and hybrid programs")
	}

	provider := in.OnlineMeetingProvider
	p.OnlineMeetingProvider = &provider
	p.OnlineMeetingURL = url
	return nil
}

func mapTeacherErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound("teacher_not_found", "Teacher not found")
	}
	return err
}
