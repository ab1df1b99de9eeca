package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainCatalog "github.com/BruksfildServices01/shala-api/internal/domain/catalog"
	domainProgram "github.com/BruksfildServices01/shala-api/internal/domain/program"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type CatalogRepository struct {
	s *Store
}

func NewCatalogRepository(s *Store) *CatalogRepository {
	return &CatalogRepository{s: s}
}

func (r *CatalogRepository) GetTeacherBySlug(_ context.Context, slug string) (*models.Teacher, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	for _, t := range r.s.teachers {
		if t.Slug == slug {
			t = cloneTeacher(t)
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *CatalogRepository) ListPublished(_ context.Context, teacherID uuid.UUID) ([]domainCatalog.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	out := []domainCatalog.Listing{}
	for _, p := range r.s.programs {
		if p.TeacherID != teacherID || p.Status != string(domainProgram.StatusPublished) {
			continue
		}
		out = append(out, domainCatalog.Listing{
			Program:        r.s.withVenue(cloneProgram(p)),
			ActiveBookings: r.s.countActive(p.ID),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Program.CreatedAt.After(out[j].Program.CreatedAt)
	})
	return out, nil
}

func (r *CatalogRepository) GetPublished(_ context.Context, teacherID uuid.UUID, programSlug string) (*domainCatalog.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	for _, p := range r.s.programs {
		if p.TeacherID == teacherID && p.Slug == programSlug && p.Status == string(domainProgram.StatusPublished) {
			return &domainCatalog.Listing{
				Program:        r.s.withVenue(cloneProgram(p)),
				ActiveBookings: r.s.countActive(p.ID),
			}, nil
		}
	}
	return nil, domain.ErrNotFound
}

var _ domainCatalog.Repository = (*CatalogRepository)(nil)
