package student

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domainStudent "github.com/BruksfildServices01/shala-api/internal/domain/student"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/validators"
)

type ContactInput struct {
	FirstName                string `json:"first_name" validate:"required,notblank,min=2,max=100"`
	LastName                 string `json:"last_name" validate:"required,notblank,min=2,max=100"`
	Email                    string `json:"email" validate:"required,email,max=255"`
	DateOfBirth              string `json:"date_of_birth" validate:"omitempty,isodate"`
	Gender                   string `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Phone                    string `json:"phone" validate:"omitempty,min=10,max=30"`
	WhatsappPhone            string `json:"whatsapp_phone" validate:"omitempty,min=10,max=30"`
	EmergencyContactName     string `json:"emergency_contact_name" validate:"omitempty,min=2,max=100"`
	EmergencyContactRelation string `json:"emergency_contact_relation" validate:"omitempty,min=2,max=100"`
	EmergencyContactPhone    string `json:"emergency_contact_phone" validate:"omitempty,min=10,max=30"`
}

type UpdateStudent struct{ Deps }

func NewUpdateStudent(d Deps) *UpdateStudent { return &UpdateStudent{Deps: d} }

func (uc *UpdateStudent) Execute(ctx context.Context, teacherID, studentID uuid.UUID, in ContactInput) (*models.Student, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	s, err := uc.owned(ctx, "update_student", teacherID, studentID)
	if err != nil {
		return nil, err
	}

	s.FirstName = validators.SanitizeText(in.FirstName)
	s.LastName = validators.SanitizeText(in.LastName)
	s.Name = domainStudent.FullName(s.FirstName, s.LastName)
	s.Email = domainStudent.NormalizeEmail(in.Email)
	s.Phone = in.Phone
	s.WhatsappPhone = in.WhatsappPhone
	s.EmergencyContactName = validators.SanitizeText(in.EmergencyContactName)
	s.EmergencyContactRelation = validators.SanitizeText(in.EmergencyContactRelation)
	s.EmergencyContactPhone = in.EmergencyContactPhone

	s.DateOfBirth = nil
	if in.DateOfBirth != "" {
		dob, _ := time.Parse("2006-01-02", in.DateOfBirth)
		s.DateOfBirth = &dob
	}
	s.Gender = nil
	if in.Gender != "" {
		g := in.Gender
		s.Gender = &g
	}

	if err := uc.save(ctx, "update_student", teacherID, s, "contact"); err != nil {
		return nil, err
	}
	return s, nil
}

// ------------------------------------------------------------

type UpdateTags struct{ Deps }

func NewUpdateTags(d Deps) *UpdateTags { return &UpdateTags{Deps: d} }

// Execute replaces the student's tags with the normalised set.
func (uc *UpdateTags) Execute(ctx context.Context, teacherID, studentID uuid.UUID, tags []string) (*models.Student, error) {
	normalized, err := domainStudent.NormalizeTags(tags)
	if err != nil {
		return nil, err
	}

	s, err := uc.owned(ctx, "update_tags", teacherID, studentID)
	if err != nil {
		return nil, err
	}

	s.Tags = normalized
	if err := uc.save(ctx, "update_tags", teacherID, s, "tags"); err != nil {
		return nil, err
	}
	return s, nil
}

// ------------------------------------------------------------

type UpdateNotes struct{ Deps }

func NewUpdateNotes(d Deps) *UpdateNotes { return &UpdateNotes{Deps: d} }

func (uc *UpdateNotes) Execute(ctx context.Context, teacherID, studentID uuid.UUID, notes string) (*models.Student, error) {
	notes = validators.SanitizeText(notes)
	if utf8.RuneCountInString(notes) > domainStudent.MaxNotesLength {
		return nil, httperr.ErrValidation("notes", "notes must be at most 5000 characters")
	}

	s, err := uc.owned(ctx, "update_notes", teacherID, studentID)
	if err != nil {
		return nil, err
	}

	s.TeacherNotes = notes
	if err := uc.save(ctx, "update_notes", teacherID, s, "notes"); err != nil {
		return nil, err
	}
	return s, nil
}
