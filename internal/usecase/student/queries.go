package student

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainStudent "github.com/BruksfildServices01/shala-api/internal/domain/student"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/usecase"
	"github.com/BruksfildServices01/shala-api/internal/validators"
)

type ListInput struct {
	Search    string `form:"search" json:"search" validate:"max=100"`
	Tag       string `form:"tag" json:"tag" validate:"max=50"`
	ProgramID string `form:"program_id" json:"program_id" validate:"omitempty,uuid"`
	Page      int    `form:"page" json:"page" validate:"omitempty,min=1"`
	PerPage   int    `form:"per_page" json:"per_page" validate:"omitempty,min=1,max=100"`
}

type ListResult struct {
	Items   []domainStudent.ListItem
	Total   int64
	Page    int
	PerPage int
}

type ListStudents struct{ Deps }

func NewListStudents(d Deps) *ListStudents { return &ListStudents{Deps: d} }

func (uc *ListStudents) Execute(ctx context.Context, teacherID uuid.UUID, in ListInput) (*ListResult, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	f := domainStudent.ListFilter{
		Search:  in.Search,
		Tag:     in.Tag,
		Page:    in.Page,
		PerPage: in.PerPage,
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.PerPage == 0 {
		f.PerPage = domainStudent.DefaultPerPage
	}
	if in.ProgramID != "" {
		id := uuid.MustParse(in.ProgramID)
		f.ProgramID = &id
	}

	items, total, err := uc.Repo.List(ctx, teacherID, f)
	if err != nil {
		return nil, usecase.StorageFailure(uc.Log, "list_students", err, zap.Stringer("teacher_id", teacherID))
	}

	return &ListResult{Items: items, Total: total, Page: f.Page, PerPage: f.PerPage}, nil
}

// ------------------------------------------------------------

type Detail struct {
	Student  *models.Student
	Bookings []models.Booking
}

type GetStudent struct{ Deps }

func NewGetStudent(d Deps) *GetStudent { return &GetStudent{Deps: d} }

func (uc *GetStudent) Execute(ctx context.Context, teacherID, studentID uuid.UUID) (*Detail, error) {
	s, err := uc.owned(ctx, "get_student", teacherID, studentID)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.Repo.ListBookings(ctx, teacherID, studentID)
	if err != nil {
		return nil, usecase.StorageFailure(uc.Log, "get_student", err, zap.Stringer("student_id", studentID))
	}

	return &Detail{Student: s, Bookings: bookings}, nil
}

// ------------------------------------------------------------

type ListTags struct{ Deps }

func NewListTags(d Deps) *ListTags { return &ListTags{Deps: d} }

// Execute returns every tag the teacher has used, sorted.
func (uc *ListTags) Execute(ctx context.Context, teacherID uuid.UUID) ([]string, error) {
	tags, err := uc.Repo.AllTags(ctx, teacherID)
	if err != nil {
		return nil, usecase.StorageFailure(uc.Log, "list_tags", err, zap.Stringer("teacher_id", teacherID))
	}
	return tags, nil
}
