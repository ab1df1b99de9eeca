package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainProgram "github.com/BruksfildServices01/shala-api/internal/domain/program"
	domainVenue "github.com/BruksfildServices01/shala-api/internal/domain/venue"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type VenueRepository struct {
	s *Store
}

func NewVenueRepository(s *Store) *VenueRepository {
	return &VenueRepository{s: s}
}

func (r *VenueRepository) List(_ context.Context, teacherID uuid.UUID) ([]models.Venue, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	out := []models.Venue{}
	for _, v := range r.s.venues {
		if v.TeacherID == teacherID || v.IsShared {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *VenueRepository) GetOwned(_ context.Context, teacherID, venueID uuid.UUID) (*models.Venue, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	v, ok := r.s.venues[venueID]
	if !ok || v.TeacherID != teacherID {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func (r *VenueRepository) Create(_ context.Context, v *models.Venue) error {
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

func (r *VenueRepository) Update(_ context.Context, v *models.Venue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return r.s.failure
	}

	stored, ok := r.s.venues[v.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *v
	updated.TeacherID = stored.TeacherID
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = r.s.tick()
	r.s.venues[v.ID] = updated
	return nil
}

func (r *VenueRepository) Delete(_ context.Context, venueID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return r.s.failure
	}

	delete(r.s.venues, venueID)
	return nil
}

func (r *VenueRepository) CountActivePrograms(_ context.Context, venueID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return 0, r.s.failure
	}

	var n int64
	for _, p := range r.s.programs {
		if p.VenueID == nil || *p.VenueID != venueID {
			continue
		}
		switch domainProgram.Status(p.Status) {
		case domainProgram.StatusDraft, domainProgram.StatusPublished:
			n++
		}
	}
	return n, nil
}

var _ domainVenue.Repository = (*VenueRepository)(nil)
