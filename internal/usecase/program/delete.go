package program

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	domainProgram "github.com/BruksfildServices01/shala-api/internal/domain/program"
	"github.com/BruksfildServices01/shala-api/internal/usecase"
)

type DeleteProgram struct {
	Deps
}

func NewDeleteProgram(d Deps) *DeleteProgram {
	return &DeleteProgram{Deps: d}
}

func (uc *DeleteProgram) Execute(ctx context.Context, teacherID, programID uuid.UUID) error {
	var slug string

	err := uc.Repo.Transaction(ctx, func(tx domainProgram.Repository) error {
		p, err := Deps{Repo: tx, Log: uc.Log}.owned(ctx, "delete_program", teacherID, programID)
		if err != nil {
			return err
		}

		bookings, err := tx.CountBookings(ctx, p.ID)
		if err != nil {
			return err
		}
		if err := domainProgram.CanDelete(p, bookings); err != nil {
			return err
		}

		slug = p.Slug
		return tx.Delete(ctx, p.ID)
	})
	if err != nil {
		return usecase.Settle(uc.Log, "delete_program", err, zap.Stringer("program_id", programID))
	}

	uc.record(teacherID, audit.ActionProgramDeleted, audit.EntityProgram, programID, map[string]string{
		"slug": slug,
	})
	uc.Log.Info("program deleted", zap.Stringer("program_id", programID))
	return nil
}
