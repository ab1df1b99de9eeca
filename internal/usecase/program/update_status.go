package program

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainProgram "github.com/BruksfildServices01/shala-api/internal/domain/program"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/usecase"
)

type UpdateProgramStatus struct {
	Deps
}

func NewUpdateProgramStatus(d Deps) *UpdateProgramStatus {
	return &UpdateProgramStatus{Deps: d}
}

func (uc *UpdateProgramStatus) Execute(
	ctx context.Context,
	teacherID uuid.UUID,
	programID uuid.UUID,
	status string,
) (*models.Program, error) {

	to, err := domainProgram.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	p, err := uc.owned(ctx, "update_program_status", teacherID, programID)
	if err != nil {
		return nil, err
	}

	from := domainProgram.Status(p.Status)
	if err := domainProgram.Transition(p, to); err != nil {
		return nil, err
	}

	err = uc.Repo.UpdateStatus(ctx, p, from)
	if errors.Is(err, domain.ErrStale) {
		return nil, httperr.ErrConflict("program_changed", "This program was changed by someone else. Reload and try again.")
	}
	if err != nil {
		return nil, usecase.StorageFailure(uc.Log, "update_program_status", err, zap.Stringer("program_id", programID))
	}

	usecase.InvalidateCatalog(ctx, uc.Cache, uc.Log, teacherID)
	uc.record(teacherID, audit.ActionProgramStatusChanged, audit.EntityProgram, p.ID, map[string]string{
		"from": string(from),
		"to":   p.Status,
	})
	uc.Log.Info("program status changed",
		zap.Stringer("program_id", p.ID),
		zap.String("from", string(from)),
		zap.String("to", p.Status),
	)

	return p, nil
}
