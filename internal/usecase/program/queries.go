package program

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainProgram "github.com/BruksfildServices01/shala-api/internal/domain/program"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/usecase"
)

type ListPrograms struct {
	Deps
}

func NewListPrograms(d Deps) *ListPrograms {
	return &ListPrograms{Deps: d}
}

// Execute returns the teacher's programs, newest first, with their seat
// usage. An empty status lists every program.
func (uc *ListPrograms) Execute(ctx context.Context, teacherID uuid.UUID, status string) ([]domainProgram.Summary, error) {
	var filter *domainProgram.Status
	if status != "" {
		s, err := domainProgram.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		filter = &s
	}

	items, err := uc.Repo.ListForTeacher(ctx, teacherID, filter)
	if err != nil {
		return nil, usecase.StorageFailure(uc.Log, "list_programs", err, zap.Stringer("teacher_id", teacherID))
	}
	return items, nil
}

type GetProgram struct {
	Deps
}

func NewGetProgram(d Deps) *GetProgram {
	return &GetProgram{Deps: d}
}

func (uc *GetProgram) Execute(ctx context.Context, teacherID, programID uuid.UUID) (*models.Program, error) {
	return uc.owned(ctx, "get_program", teacherID, programID)
}

type ListTemplates struct {
	Deps
}

func NewListTemplates(d Deps) *ListTemplates {
	return &ListTemplates{Deps: d}
}

// Execute returns platform templates first, then the teacher's own.
func (uc *ListTemplates) Execute(ctx context.Context, teacherID uuid.UUID) ([]models.ScheduleTemplate, error) {
	items, err := uc.Repo.ListTemplates(ctx, teacherID)
	if err != nil {
		return nil, usecase.StorageFailure(uc.Log, "list_templates", err, zap.Stringer("teacher_id", teacherID))
	}
	return items, nil
}
