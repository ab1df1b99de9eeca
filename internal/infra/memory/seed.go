package memory

import (
	"slices"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/models"
)

// The Put helpers insert fixtures directly, bypassing unique checks, and
// return the stored copy with its id filled in.

func (s *Store) PutTeacher(t models.Teacher) models.Teacher {
	s.mu.Lock()
	defer s.mu.Unlock()
	newID(&t.ID)
	s.stamp(&t.CreatedAt, &t.UpdatedAt)
	s.teachers[t.ID] = cloneTeacher(t)
	return cloneTeacher(t)
}

func (s *Store) PutProgram(p models.Program) models.Program {
	s.mu.Lock()
	defer s.mu.Unlock()
	newID(&p.ID)
	s.stamp(&p.CreatedAt, &p.UpdatedAt)
	s.programs[p.ID] = cloneProgram(p)
	return cloneProgram(p)
}

func (s *Store) PutTemplate(t models.ScheduleTemplate) models.ScheduleTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	newID(&t.ID)
	s.stamp(&t.CreatedAt, &t.UpdatedAt)
	s.templates[t.ID] = cloneTemplate(t)
	return cloneTemplate(t)
}

func (s *Store) PutVenue(v models.Venue) models.Venue {
	s.mu.Lock()
	defer s.mu.Unlock()
	newID(&v.ID)
	s.stamp(&v.CreatedAt, &v.UpdatedAt)
	s.venues[v.ID] = v
	return v
}

func (s *Store) PutStudent(st models.Student) models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	newID(&st.ID)
	s.stamp(&st.CreatedAt, &st.UpdatedAt)
	s.students[st.ID] = cloneStudent(st)
	return cloneStudent(st)
}

func (s *Store) PutBooking(b models.Booking) models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	newID(&b.ID)
	s.stamp(&b.CreatedAt, &b.UpdatedAt)
	s.bookings[b.ID] = cloneBooking(b)
	return cloneBooking(b)
}

func (s *Store) PutHealthForm(h models.HealthForm) models.HealthForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	newID(&h.ID)
	s.stamp(&h.CreatedAt, &h.UpdatedAt)
	s.healthForms[h.ID] = cloneHealthForm(h)
	return cloneHealthForm(h)
}

// -------- inspection --------

func (s *Store) Program(id uuid.UUID) (models.Program, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.programs[id]
	return cloneProgram(p), ok
}

func (s *Store) Booking(id uuid.UUID) (models.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	return b, ok
}

func (s *Store) Students() []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Student, 0, len(s.students))
	for _, st := range s.students {
		out = append(out, cloneStudent(st))
	}
	return out
}

func (s *Store) Bookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b)
	}
	return out
}

func (s *Store) HealthForms() []models.HealthForm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.HealthForm, 0, len(s.healthForms))
	for _, h := range s.healthForms {
		out = append(out, cloneHealthForm(h))
	}
	return out
}

func (s *Store) Templates() []models.ScheduleTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ScheduleTemplate, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, cloneTemplate(t))
	}
	return out
}

func (s *Store) Programs() []models.Program {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Program, 0, len(s.programs))
	for _, p := range s.programs {
		out = append(out, cloneProgram(p))
	}
	return out
}

func (s *Store) AuditLogs() []models.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.auditLogs)
}
