package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainBooking "github.com/BruksfildServices01/shala-api/internal/domain/booking"
	domainProgram "github.com/BruksfildServices01/shala-api/internal/domain/program"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type ProgramRepository struct {
	s *Store
}

func NewProgramRepository(s *Store) *ProgramRepository {
	return &ProgramRepository{s: s}
}

func (r *ProgramRepository) Transaction(
	ctx context.Context,
	fn func(tx domainProgram.Repository) error,
) error {
	return r.s.transaction(ctx, func() error { return fn(r) })
}

func (r *ProgramRepository) GetForTeacher(_ context.Context, teacherID, programID uuid.UUID) (*models.Program, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	p, ok := r.s.programs[programID]
	if !ok || p.TeacherID != teacherID {
		return nil, domain.ErrNotFound
	}
	p = r.s.withVenue(cloneProgram(p))
	return &p, nil
}

func (r *ProgramRepository) ListForTeacher(
	_ context.Context,
	teacherID uuid.UUID,
	status *domainProgram.Status,
) ([]domainProgram.Summary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	out := []domainProgram.Summary{}
	for _, p := range r.s.programs {
		if p.TeacherID != teacherID {
			continue
		}
		if status != nil && p.Status != string(*status) {
			continue
		}

		sum := domainProgram.Summary{Program: cloneProgram(p)}
		for _, b := range r.s.bookings {
			if b.ProgramID != p.ID {
				continue
			}
			st := domainBooking.Status(b.Status)
			if domainBooking.HoldsSeat(st) {
				sum.ActiveBookings++
			}
			if st == domainBooking.StatusWaitlisted {
				sum.WaitlistedBookings++
			}
		}
		out = append(out, sum)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Program.CreatedAt.After(out[j].Program.CreatedAt)
	})
	return out, nil
}

func (r *ProgramRepository) Create(_ context.Context, p *models.Program) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return r.s.failure
	}

	for _, existing := range r.s.programs {
		if existing.TeacherID == p.TeacherID && existing.Slug == p.Slug {
			return domain.ErrDuplicate
		}
	}

	newID(&p.ID)
	r.s.stamp(&p.CreatedAt, &p.UpdatedAt)
	r.s.programs[p.ID] = cloneProgram(*p)
	return nil
}

func (r *ProgramRepository) UpdateStatus(_ context.Context, p *models.Program, expected domainProgram.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return r.s.failure
	}

	stored, ok := r.s.programs[p.ID]
	if !ok || stored.Status != string(expected) {
		return domain.ErrStale
	}
	stored.Status = p.Status
	stored.UpdatedAt = r.s.tick()
	r.s.programs[p.ID] = stored
	return nil
}

func (r *ProgramRepository) Delete(_ context.Context, programID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return r.s.failure
	}

	delete(r.s.programs, programID)
	return nil
}

func (r *ProgramRepository) CountBookings(_ context.Context, programID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return 0, r.s.failure
	}

	var n int64
	for _, b := range r.s.bookings {
		if b.ProgramID == programID {
			n++
		}
	}
	return n, nil
}

func (r *ProgramRepository) SlugExists(_ context.Context, teacherID uuid.UUID, slug string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return false, r.s.failure
	}

	for _, p := range r.s.programs {
		if p.TeacherID == teacherID && p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func templateVisible(t models.ScheduleTemplate, teacherID uuid.UUID) bool {
	return t.IsPlatformTemplate || (t.TeacherID != nil && *t.TeacherID == teacherID)
}

func (r *ProgramRepository) GetTemplate(_ context.Context, teacherID, templateID uuid.UUID) (*models.ScheduleTemplate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	t, ok := r.s.templates[templateID]
	if !ok || !templateVisible(t, teacherID) {
		return nil, domain.ErrNotFound
	}
	t = cloneTemplate(t)
	return &t, nil
}

func (r *ProgramRepository) ListTemplates(_ context.Context, teacherID uuid.UUID) ([]models.ScheduleTemplate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	out := []models.ScheduleTemplate{}
	for _, t := range r.s.templates {
		if templateVisible(t, teacherID) {
			out = append(out, cloneTemplate(t))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPlatformTemplate != out[j].IsPlatformTemplate {
			return out[i].IsPlatformTemplate
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *ProgramRepository) CreateTemplate(_ context.Context, t *models.ScheduleTemplate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return r.s.failure
	}

	newID(&t.ID)
	r.s.stamp(&t.CreatedAt, &t.UpdatedAt)
	r.s.templates[t.ID] = cloneTemplate(*t)
	return nil
}

func (r *ProgramRepository) GetVenue(_ context.Context, teacherID, venueID uuid.UUID) (*models.Venue, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	v, ok := r.s.venues[venueID]
	if !ok || (v.TeacherID != teacherID && !v.IsShared) {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func (r *ProgramRepository) CreateVenue(_ context.Context, v *models.Venue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return r.s.failure
	}

	newID(&v.ID)
	r.s.stamp(&v.CreatedAt, &v.UpdatedAt)
	r.s.venues[v.ID] = *v
	return nil
}

var _ domainProgram.Repository = (*ProgramRepository)(nil)
