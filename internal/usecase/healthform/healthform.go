package healthform

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainHealthForm "github.com/BruksfildServices01/shala-api/internal/domain/healthform"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/usecase"
)

type Deps struct {
	Repo  domainHealthForm.Repository
	Audit *audit.Dispatcher
	Log   *zap.Logger
}

// ------------------------------------------------------------

type ListForProgram struct{ Deps }

func NewListForProgram(d Deps) *ListForProgram { return &ListForProgram{Deps: d} }

func (uc *ListForProgram) Execute(ctx context.Context, teacherID, programID uuid.UUID) ([]models.HealthForm, error) {
	forms, err := uc.Repo.ListForProgram(ctx, teacherID, programID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("program_not_found", "Program not found")
	}
	if err != nil {
		return nil, usecase.StorageFailure(uc.Log, "list_health_forms", err, zap.Stringer("program_id", programID))
	}
	return forms, nil
}

// ------------------------------------------------------------

type ReviewInput struct {
	IDs []string `json:"ids" validate:"required,min=1,max=200,dive,uuid"`
}

type ReviewResult struct {
	// Reviewed counts forms that changed state; already-reviewed ones are
	// left untouched.
	Reviewed int64 `json:"reviewed"`
}

type Review struct {
	Deps
	now func() time.Time
}

func NewReview(d Deps) *Review {
	return &Review{
		Deps: d,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Execute marks every form in ids as reviewed by the teacher. One id the
// teacher does not own fails the whole call.
func (uc *Review) Execute(ctx context.Context, teacherID uuid.UUID, ids []uuid.UUID) (*ReviewResult, error) {
	if len(ids) == 0 {
		return nil, httperr.ErrValidation("ids", "ids must contain at least 1 item")
	}

	owned, err := uc.Repo.FindOwned(ctx, teacherID, ids)
	if err != nil {
		return nil, usecase.StorageFailure(uc.Log, "review_health_forms", err, zap.Int("count", len(ids)))
	}
	if err := domainHealthForm.EnsureAllOwned(ids, owned); err != nil {
		return nil, err
	}

	pending := domainHealthForm.Unreviewed(owned)
	if len(pending) == 0 {
		return &ReviewResult{}, nil
	}

	n, err := uc.Repo.MarkReviewed(ctx, pending, teacherID, uc.now())
	if err != nil {
		return nil, usecase.StorageFailure(uc.Log, "review_health_forms", err, zap.Int("count", len(pending)))
	}

	for _, id := range pending {
		uc.Audit.Dispatch(audit.Event{
			TeacherID: teacherID,
			ActorID:   audit.Ref(teacherID),
			Action:    audit.ActionHealthFormReviewed,
			Entity:    audit.EntityHealthForm,
			EntityID:  audit.Ref(id),
		})
	}
	uc.Log.Info("health forms reviewed", zap.Int64("count", n))

	return &ReviewResult{Reviewed: n}, nil
}
