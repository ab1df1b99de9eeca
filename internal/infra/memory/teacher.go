package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainTeacher "github.com/BruksfildServices01/shala-api/internal/domain/teacher"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type TeacherRepository struct {
	s *Store
}

func NewTeacherRepository(s *Store) *TeacherRepository {
	return &TeacherRepository{s: s}
}

func (r *TeacherRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Teacher, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	t, ok := r.s.teachers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	t = cloneTeacher(t)
	return &t, nil
}

func (r *TeacherRepository) GetByEmail(_ context.Context, email string) (*models.Teacher, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	for _, t := range r.s.teachers {
		if t.Email == email {
			t = cloneTeacher(t)
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *TeacherRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return false, r.s.failure
	}

	for _, t := range r.s.teachers {
		if t.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *TeacherRepository) Create(_ context.Context, t *models.Teacher) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return r.s.failure
	}

	for _, existing := range r.s.teachers {
		if existing.ID == t.ID || existing.Email == t.Email || existing.Slug == t.Slug {
			return domain.ErrDuplicate
		}
	}

	newID(&t.ID)
	r.s.stamp(&t.CreatedAt, &t.UpdatedAt)
	r.s.teachers[t.ID] = cloneTeacher(*t)
	return nil
}

var _ domainTeacher.Repository = (*TeacherRepository)(nil)
