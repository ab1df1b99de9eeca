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

type DuplicateProgram struct {
	Deps
}

func NewDuplicateProgram(d Deps) *DuplicateProgram {
	return &DuplicateProgram{Deps: d}
}

// Execute copies the program into a new DRAFT with its sessions cleared.
// Slug candidates run base-copy, base-copy-2 ... and a candidate taken by a
// concurrent insert just moves on to the next one.
func (uc *DuplicateProgram) Execute(ctx context.Context, teacherID, programID uuid.UUID) (*models.Program, error) {
	src, err := uc.owned(ctx, "duplicate_program", teacherID, programID)
	if err != nil {
		return nil, err
	}

	dup := domainProgram.Duplicate(src)

	created := false
	for n := 1; n <= domainProgram.MaxCopyAttempts && !created; n++ {
		slug := domainProgram.CopySlug(src.Slug, n)

		taken, err := uc.Repo.SlugExists(ctx, teacherID, slug)
		if err != nil {
			return nil, usecase.StorageFailure(uc.Log, "duplicate_program", err, zap.Stringer("program_id", programID))
		}
		if taken {
			continue
		}

		dup.Slug = slug
		err = uc.Repo.Create(ctx, dup)
		switch {
		case err == nil:
			created = true
		case errors.Is(err, domain.ErrDuplicate):
			dup.ID = uuid.Nil
		default:
			return nil, usecase.StorageFailure(uc.Log, "duplicate_program", err, zap.Stringer("program_id", programID))
		}
	}
	if !created {
		return nil, httperr.ErrConflict("slug_unavailable", "Could not find a free URL slug for the copy. Rename some earlier copies and try again.")
	}

	uc.record(teacherID, audit.ActionProgramDuplicated, audit.EntityProgram, dup.ID, map[string]string{
		"source_id": src.ID.String(),
		"slug":      dup.Slug,
	})
	uc.Log.Info("program duplicated",
		zap.Stringer("source_id", src.ID),
		zap.Stringer("program_id", dup.ID),
		zap.String("slug", dup.Slug),
	)

	return dup, nil
}
