// Package catalog serves the unauthenticated program pages, reading through
// the per-teacher cache.
package catalog

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/cache"
	"github.com/BruksfildServices01/shala-api/internal/domain"
	"github.com/BruksfildServices01/shala-api/internal/domain/booking"
	domainCatalog "github.com/BruksfildServices01/shala-api/internal/domain/catalog"
	"github.com/BruksfildServices01/shala-api/internal/dto"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/usecase"
)

var (
	errTeacherNotFound = httperr.ErrNotFound("teacher_not_found", "Teacher not found")
	errProgramNotFound = httperr.ErrNotFound("program_not_found", "Program not found")
)

type Deps struct {
	Repo  domainCatalog.Repository
	Cache cache.Cache
	TTL   time.Duration
	Log   *zap.Logger
}

func (d Deps) teacher(ctx context.Context, slug string) (*models.Teacher, error) {
	t, err := d.Repo.GetTeacherBySlug(ctx, slug)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errTeacherNotFound
	}
	if err != nil {
		return nil, usecase.StorageFailure(d.Log, "catalog_teacher", err, zap.String("teacher_slug", slug))
	}
	return t, nil
}

// cached returns true when dst was filled from the cache. A broken cache is
// treated as a miss.
func (d Deps) cached(ctx context.Context, t *models.Teacher, key string, dst any) bool {
	hit, err := d.Cache.GetJSON(ctx, t.ID, key, dst)
	if err != nil {
		d.Log.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (d Deps) store(ctx context.Context, t *models.Teacher, key string, v any) {
	if err := d.Cache.SetJSON(ctx, t.ID, key, v, d.TTL); err != nil {
		d.Log.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func view(l domainCatalog.Listing) dto.PublicProgramDTO {
	return dto.NewPublicProgramDTO(&l.Program, booking.RemainingCapacity(l.Program.Capacity, l.ActiveBookings))
}

// ------------------------------------------------------------

type ListPrograms struct{ Deps }

func NewListPrograms(d Deps) *ListPrograms { return &ListPrograms{Deps: d} }

func (uc *ListPrograms) Execute(ctx context.Context, teacherSlug string) (*dto.PublicCatalogDTO, error) {
	t, err := uc.teacher(ctx, teacherSlug)
	if err != nil {
		return nil, err
	}

	const key = "programs"
	var out dto.PublicCatalogDTO
	if uc.cached(ctx, t, key, &out) {
		return &out, nil
	}

	listings, err := uc.Repo.ListPublished(ctx, t.ID)
	if err != nil {
		return nil, usecase.StorageFailure(uc.Log, "catalog_list", err, zap.Stringer("teacher_id", t.ID))
	}

	out = dto.PublicCatalogDTO{
		Teacher:  dto.NewPublicTeacherDTO(t),
		Programs: make([]dto.PublicProgramDTO, 0, len(listings)),
	}
	for _, l := range listings {
		out.Programs = append(out.Programs, view(l))
	}

	uc.store(ctx, t, key, out)
	return &out, nil
}

// ------------------------------------------------------------

type GetProgram struct{ Deps }

func NewGetProgram(d Deps) *GetProgram { return &GetProgram{Deps: d} }

func (uc *GetProgram) Execute(ctx context.Context, teacherSlug, programSlug string) (*dto.PublicProgramPageDTO, error) {
	t, err := uc.teacher(ctx, teacherSlug)
	if err != nil {
		return nil, err
	}

	key := "program:" + programSlug
	var out dto.PublicProgramPageDTO
	if uc.cached(ctx, t, key, &out) {
		return &out, nil
	}

	l, err := uc.Repo.GetPublished(ctx, t.ID, programSlug)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errProgramNotFound
	}
	if err != nil {
		return nil, usecase.StorageFailure(uc.Log, "catalog_get", err, zap.String("program_slug", programSlug))
	}

	out = dto.PublicProgramPageDTO{
		Teacher: dto.NewPublicTeacherDTO(t),
		Program: view(*l),
	}

	uc.store(ctx, t, key, out)
	return &out, nil
}
