package program

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	"github.com/BruksfildServices01/shala-api/internal/cache"
	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainProgram "github.com/BruksfildServices01/shala-api/internal/domain/program"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/usecase"
)

var errProgramNotFound = httperr.ErrNotFound("program_not_found", "Program not found")

type Deps struct {
	Repo  domainProgram.Repository
	Cache cache.Cache
	Audit *audit.Dispatcher
	Log   *zap.Logger
}

func (d Deps) owned(ctx context.Context, op string, teacherID, programID uuid.UUID) (*models.Program, error) {
	p, err := d.Repo.GetForTeacher(ctx, teacherID, programID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errProgramNotFound
	}
	if err != nil {
		return nil, usecase.StorageFailure(d.Log, op, err, zap.Stringer("program_id", programID))
	}
	return p, nil
}

func (d Deps) record(teacherID uuid.UUID, action, entity string, entityID uuid.UUID, metadata any) {
	d.Audit.Dispatch(audit.Event{
		TeacherID: teacherID,
		ActorID:   audit.Ref(teacherID),
		Action:    action,
		Entity:    entity,
		EntityID:  audit.Ref(entityID),
		Metadata:  metadata,
	})
}
