package program

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainProgram "github.com/BruksfildServices01/shala-api/internal/domain/program"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/usecase"
	"github.com/BruksfildServices01/shala-api/internal/validators"
)

type SaveTemplateInput struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

type SaveAsTemplate struct {
	Deps
}

func NewSaveAsTemplate(d Deps) *SaveAsTemplate {
	return &SaveAsTemplate{Deps: d}
}

func (uc *SaveAsTemplate) Execute(
	ctx context.Context,
	teacherID uuid.UUID,
	programID uuid.UUID,
	in SaveTemplateInput,
) (*models.ScheduleTemplate, error) {

	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	p, err := uc.owned(ctx, "save_as_template", teacherID, programID)
	if err != nil {
		return nil, err
	}

	formatType := domainProgram.FormatCustom
	if p.TemplateID != nil {
		src, err := uc.Repo.GetTemplate(ctx, teacherID, *p.TemplateID)
		switch {
		case err == nil:
			formatType = src.FormatType
		case errors.Is(err, domain.ErrNotFound):
			// source template is gone or no longer visible
		default:
			return nil, usecase.StorageFailure(uc.Log, "save_as_template", err, zap.Stringer("program_id", programID))
		}
	}

	tpl := domainProgram.SnapshotTemplate(p, validators.SanitizeText(in.Name), formatType)
	if err := uc.Repo.CreateTemplate(ctx, tpl); err != nil {
		return nil, usecase.StorageFailure(uc.Log, "save_as_template", err, zap.Stringer("program_id", programID))
	}

	uc.record(teacherID, audit.ActionTemplateSaved, audit.EntityTemplate, tpl.ID, map[string]string{
		"program_id": programID.String(),
	})
	uc.Log.Info("template saved",
		zap.Stringer("template_id", tpl.ID),
		zap.Stringer("program_id", programID),
	)

	return tpl, nil
}
