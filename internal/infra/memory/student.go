package memory

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainStudent "github.com/BruksfildServices01/shala-api/internal/domain/student"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type StudentRepository struct {
	s *Store
}

func NewStudentRepository(s *Store) *StudentRepository {
	return &StudentRepository{s: s}
}

func matchesSearch(st models.Student, search string) bool {
	needle := strings.ToLower(search)
	for _, field := range []string{st.FirstName, st.LastName, st.Email, st.Phone} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (r *StudentRepository) List(
	_ context.Context,
	teacherID uuid.UUID,
	f domainStudent.ListFilter,
) ([]domainStudent.ListItem, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, 0, r.s.failure
	}

	var matched []models.Student
	for _, st := range r.s.students {
		if st.TeacherID != teacherID {
			continue
		}
		if f.Search != "" && !matchesSearch(st, f.Search) {
			continue
		}
		if f.Tag != "" && !slices.Contains(st.Tags, f.Tag) {
			continue
		}
		if f.ProgramID != nil && !r.s.hasBooking(st.ID, *f.ProgramID) {
			continue
		}
		matched = append(matched, cloneStudent(st))
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := min(f.Offset(), len(matched))
	end := min(start+f.PerPage, len(matched))

	items := make([]domainStudent.ListItem, 0, end-start)
	for _, st := range matched[start:end] {
		item := domainStudent.ListItem{Student: st}
		programs := map[uuid.UUID]struct{}{}
		for _, b := range r.s.bookings {
			if b.StudentID != st.ID {
				continue
			}
			programs[b.ProgramID] = struct{}{}
			if item.LastBookingAt == nil || b.CreatedAt.After(*item.LastBookingAt) {
				at := b.CreatedAt
				item.LastBookingAt = &at
			}
		}
		item.ProgramCount = len(programs)
		items = append(items, item)
	}
	return items, total, nil
}

func (s *Store) hasBooking(studentID, programID uuid.UUID) bool {
	for _, b := range s.bookings {
		if b.StudentID == studentID && b.ProgramID == programID {
			return true
		}
	}
	return false
}

func (r *StudentRepository) Get(_ context.Context, teacherID, studentID uuid.UUID) (*models.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	st, ok := r.s.students[studentID]
	if !ok || st.TeacherID != teacherID {
		return nil, domain.ErrNotFound
	}
	st = cloneStudent(st)
	return &st, nil
}

func (r *StudentRepository) ListBookings(_ context.Context, teacherID, studentID uuid.UUID) ([]models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	out := []models.Booking{}
	for _, b := range r.s.bookings {
		if b.StudentID != studentID || b.TeacherID != teacherID {
			continue
		}
		if p, ok := r.s.programs[b.ProgramID]; ok {
			p = cloneProgram(p)
			b.Program = &p
		}
		for _, h := range r.s.healthForms {
			if h.BookingID == b.ID {
				h = cloneHealthForm(h)
				b.HealthForm = &h
			}
		}
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *StudentRepository) Update(_ context.Context, st *models.Student) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return r.s.failure
	}

	stored, ok := r.s.students[st.ID]
	if !ok || stored.TeacherID != st.TeacherID {
		return domain.ErrNotFound
	}
	for id, other := range r.s.students {
		if id != st.ID && other.TeacherID == st.TeacherID && other.Email == st.Email {
			return domain.ErrDuplicate
		}
	}

	updated := cloneStudent(*st)
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = r.s.tick()
	r.s.students[st.ID] = updated
	return nil
}

func (r *StudentRepository) AllTags(_ context.Context, teacherID uuid.UUID) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	set := map[string]struct{}{}
	for _, st := range r.s.students {
		if st.TeacherID != teacherID {
			continue
		}
		for _, tag := range st.Tags {
			set[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

var _ domainStudent.Repository = (*StudentRepository)(nil)
