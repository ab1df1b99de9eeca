package teacher

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainStudent "github.com/BruksfildServices01/shala-api/internal/domain/student"
	domainTeacher "github.com/BruksfildServices01/shala-api/internal/domain/teacher"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/timezone"
	"github.com/BruksfildServices01/shala-api/internal/usecase"
	"github.com/BruksfildServices01/shala-api/internal/validators"
)

const (
	slugBaseLength = 50
	maxSlugTries   = 50
)

// EnsureTeacher maps a verified identity onto exactly one Teacher row,
// creating it on first sight.
type EnsureTeacher struct {
	repo       domainTeacher.Repository
	log        *zap.Logger
	timezoneID string
}

func NewEnsureTeacher(repo domainTeacher.Repository, log *zap.Logger, defaultTimezone string) *EnsureTeacher {
	if !timezone.IsValid(defaultTimezone) {
		defaultTimezone = timezone.DefaultTimezone
	}
	return &EnsureTeacher{repo: repo, log: log, timezoneID: defaultTimezone}
}

func (uc *EnsureTeacher) Execute(ctx context.Context, id uuid.UUID, ident domainTeacher.Identity) (*models.Teacher, error) {
	if t, err := uc.lookup(ctx, id, ident.Email); t != nil || err != nil {
		return t, err
	}

	t := &models.Teacher{
		ID:       id,
		Email:    domainStudent.NormalizeEmail(ident.Email),
		Name:     ident.DisplayName(),
		PhotoURL: ident.AvatarURL,
		Timezone: uc.timezoneID,
	}
	base := validators.Slugify(t.Name, slugBaseLength)

	for n := 0; n < maxSlugTries; n++ {
		t.Slug = domainTeacher.SlugCandidate(base, n)

		taken, err := uc.repo.SlugExists(ctx, t.Slug)
		if err != nil {
			return nil, usecase.StorageFailure(uc.log, "ensure_teacher", err, zap.Stringer("teacher_id", id))
		}
		if taken {
			continue
		}

		err = uc.repo.Create(ctx, t)
		if err == nil {
			uc.log.Info("teacher provisioned",
				zap.Stringer("teacher_id", t.ID),
				zap.String("slug", t.Slug),
			)
			return t, nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, usecase.StorageFailure(uc.log, "ensure_teacher", err, zap.Stringer("teacher_id", id))
		}

		// Lost a race: either the same identity was provisioned by a
		// parallel request or the slug was just taken.
		if existing, err := uc.lookup(ctx, id, ident.Email); existing != nil || err != nil {
			return existing, err
		}
	}

	return nil, usecase.StorageFailure(uc.log, "ensure_teacher",
		errors.New("no free teacher slug"), zap.String("base", base))
}

// lookup finds the teacher by id, then by email for accounts that switched
// sign-in provider. Both nil means no such teacher.
func (uc *EnsureTeacher) lookup(ctx context.Context, id uuid.UUID, email string) (*models.Teacher, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, usecase.StorageFailure(uc.log, "ensure_teacher", err, zap.Stringer("teacher_id", id))
	}

	if email == "" {
		return nil, nil
	}
	t, err = uc.repo.GetByEmail(ctx, domainStudent.NormalizeEmail(email))
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, usecase.StorageFailure(uc.log, "ensure_teacher", err, zap.Stringer("teacher_id", id))
	}
	return nil, nil
}

// ------------------------------------------------------------

type GetTeacher struct {
	repo domainTeacher.Repository
	log  *zap.Logger
}

func NewGetTeacher(repo domainTeacher.Repository, log *zap.Logger) *GetTeacher {
	return &GetTeacher{repo: repo, log: log}
}

func (uc *GetTeacher) Execute(ctx context.Context, id uuid.UUID) (*models.Teacher, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("teacher_not_found", "Teacher not found")
	}
	if err != nil {
		return nil, usecase.StorageFailure(uc.log, "get_teacher", err, zap.Stringer("teacher_id", id))
	}
	return t, nil
}
