package student

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainStudent "github.com/BruksfildServices01/shala-api/internal/domain/student"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/usecase"
)

var errStudentNotFound = httperr.ErrNotFound("student_not_found", "Student not found")

type Deps struct {
	Repo  domainStudent.Repository
	Audit *audit.Dispatcher
	Log   *zap.Logger
}

func (d Deps) owned(ctx context.Context, op string, teacherID, studentID uuid.UUID) (*models.Student, error) {
	s, err := d.Repo.Get(ctx, teacherID, studentID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errStudentNotFound
	}
	if err != nil {
		return nil, usecase.StorageFailure(d.Log, op, err, zap.Stringer("student_id", studentID))
	}
	return s, nil
}

// save persists s and records which part of the record changed.
func (d Deps) save(ctx context.Context, op string, teacherID uuid.UUID, s *models.Student, part string) error {
	err := d.Repo.Update(ctx, s)
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return httperr.ErrConflict("email_taken", "Another student already uses this email.")
	case errors.Is(err, domain.ErrNotFound):
		return errStudentNotFound
	case err != nil:
		return usecase.StorageFailure(d.Log, op, err, zap.Stringer("student_id", s.ID))
	}

	d.Audit.Dispatch(audit.Event{
		TeacherID: teacherID,
		ActorID:   audit.Ref(teacherID),
		Action:    audit.ActionStudentUpdated,
		Entity:    audit.EntityStudent,
		EntityID:  audit.Ref(s.ID),
		Metadata:  map[string]string{"part": part},
	})
	d.Log.Info("student updated", zap.Stringer("student_id", s.ID), zap.String("part", part))
	return nil
}
