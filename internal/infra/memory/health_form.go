package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainHealthForm "github.com/BruksfildServices01/shala-api/internal/domain/healthform"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type HealthFormRepository struct {
	s *Store
}

func NewHealthFormRepository(s *Store) *HealthFormRepository {
	return &HealthFormRepository{s: s}
}

func (r *HealthFormRepository) ListForProgram(_ context.Context, teacherID, programID uuid.UUID) ([]models.HealthForm, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	p, ok := r.s.programs[programID]
	if !ok || p.TeacherID != teacherID {
		return nil, domain.ErrNotFound
	}

	out := []models.HealthForm{}
	for _, h := range r.s.healthForms {
		b, ok := r.s.bookings[h.BookingID]
		if !ok || b.ProgramID != programID {
			continue
		}
		h = cloneHealthForm(h)
		if st, ok := r.s.students[h.StudentID]; ok {
			st = cloneStudent(st)
			h.Student = &st
		}
		out = append(out, h)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *HealthFormRepository) FindOwned(_ context.Context, teacherID uuid.UUID, ids []uuid.UUID) ([]models.HealthForm, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	out := []models.HealthForm{}
	for _, h := range r.s.healthForms {
		if !slices.Contains(ids, h.ID) {
			continue
		}
		if b, ok := r.s.bookings[h.BookingID]; ok && b.TeacherID == teacherID {
			out = append(out, cloneHealthForm(h))
		}
	}
	return out, nil
}

func (r *HealthFormRepository) MarkReviewed(_ context.Context, ids []uuid.UUID, reviewer uuid.UUID, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return 0, r.s.failure
	}

	var n int64
	for _, id := range ids {
		h, ok := r.s.healthForms[id]
		if !ok || h.IsReviewed {
			continue
		}
		reviewedAt := at
		by := reviewer
		h.IsReviewed = true
		h.ReviewedAt = &reviewedAt
		h.ReviewedBy = &by
		h.UpdatedAt = r.s.tick()
		r.s.healthForms[id] = h
		n++
	}
	return n, nil
}

var _ domainHealthForm.Repository = (*HealthFormRepository)(nil)
