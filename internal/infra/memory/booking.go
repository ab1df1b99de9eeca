package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainBooking "github.com/BruksfildServices01/shala-api/internal/domain/booking"
	"github.com/BruksfildServices01/shala-api/internal/domain/student"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type BookingRepository struct {
	s *Store
}

func NewBookingRepository(s *Store) *BookingRepository {
	return &BookingRepository{s: s}
}

func (r *BookingRepository) Transaction(
	ctx context.Context,
	fn func(tx domainBooking.Repository) error,
) error {
	return r.s.transaction(ctx, func() error { return fn(r) })
}

func (r *BookingRepository) LockProgram(_ context.Context, programID uuid.UUID) (*models.Program, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	p, ok := r.s.programs[programID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p = cloneProgram(p)
	return &p, nil
}

func (r *BookingRepository) CountActiveBookings(_ context.Context, programID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return 0, r.s.failure
	}
	return r.s.countActive(programID), nil
}

func (s *Store) countActive(programID uuid.UUID) int64 {
	var n int64
	for _, b := range s.bookings {
		if b.ProgramID == programID && domainBooking.HoldsSeat(domainBooking.Status(b.Status)) {
			n++
		}
	}
	return n
}

func (r *BookingRepository) UpsertStudent(_ context.Context, in *models.Student) (*models.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	for id, existing := range r.s.students {
		if existing.TeacherID == in.TeacherID && existing.Email == in.Email {
			updated := cloneStudent(existing)
			student.ApplyContact(&updated, in)
			updated.UpdatedAt = r.s.tick()
			r.s.students[id] = updated
			out := cloneStudent(updated)
			return &out, nil
		}
	}

	st := cloneStudent(*in)
	st.ID = uuid.Nil
	newID(&st.ID)
	r.s.stamp(&st.CreatedAt, &st.UpdatedAt)
	r.s.students[st.ID] = st
	out := cloneStudent(st)
	return &out, nil
}

func (r *BookingRepository) FindBooking(_ context.Context, studentID, programID uuid.UUID) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	for _, b := range r.s.bookings {
		if b.StudentID == studentID && b.ProgramID == programID {
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *BookingRepository) CreateBooking(_ context.Context, b *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return r.s.failure
	}

	for _, existing := range r.s.bookings {
		if existing.StudentID == b.StudentID && existing.ProgramID == b.ProgramID {
			return domain.ErrDuplicate
		}
	}

	newID(&b.ID)
	r.s.stamp(&b.CreatedAt, &b.UpdatedAt)
	r.s.bookings[b.ID] = cloneBooking(*b)
	return nil
}

func (r *BookingRepository) CreateHealthForm(_ context.Context, hf *models.HealthForm) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return r.s.failure
	}

	for _, existing := range r.s.healthForms {
		if existing.BookingID == hf.BookingID {
			return domain.ErrDuplicate
		}
	}

	newID(&hf.ID)
	r.s.stamp(&hf.CreatedAt, &hf.UpdatedAt)
	r.s.healthForms[hf.ID] = cloneHealthForm(*hf)
	return nil
}

func (r *BookingRepository) GetBooking(_ context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	b, ok := r.s.bookings[bookingID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (r *BookingRepository) GetBookingForTeacher(_ context.Context, teacherID, bookingID uuid.UUID) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	b, ok := r.s.bookings[bookingID]
	if !ok || b.TeacherID != teacherID {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (r *BookingRepository) UpdateBooking(_ context.Context, b *models.Booking, expected domainBooking.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return r.s.failure
	}

	stored, ok := r.s.bookings[b.ID]
	if !ok || stored.Status != string(expected) {
		return domain.ErrStale
	}

	stored.Status = b.Status
	stored.PaymentStatus = b.PaymentStatus
	stored.CancelledReason = b.CancelledReason
	stored.CancelledAt = b.CancelledAt
	stored.RefundNotes = b.RefundNotes
	stored.UpdatedAt = r.s.tick()
	b.UpdatedAt = stored.UpdatedAt

	r.s.bookings[b.ID] = stored
	return nil
}

func (r *BookingRepository) GetBookingDetails(_ context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	b, ok := r.s.bookings[bookingID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	if st, ok := r.s.students[b.StudentID]; ok {
		st = cloneStudent(st)
		b.Student = &st
	}
	if p, ok := r.s.programs[b.ProgramID]; ok {
		p = r.s.withVenue(cloneProgram(p))
		if t, ok := r.s.teachers[p.TeacherID]; ok {
			t = cloneTeacher(t)
			p.Teacher = &t
		}
		b.Program = &p
	}
	for _, h := range r.s.healthForms {
		if h.BookingID == b.ID {
			h = cloneHealthForm(h)
			b.HealthForm = &h
		}
	}
	return &b, nil
}

func (s *Store) withVenue(p models.Program) models.Program {
	if p.VenueID != nil {
		if v, ok := s.venues[*p.VenueID]; ok {
			p.Venue = &v
		}
	}
	return p
}

func (r *BookingRepository) ListProgramBookings(
	_ context.Context,
	teacherID uuid.UUID,
	programID uuid.UUID,
	status *domainBooking.Status,
) ([]models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	p, ok := r.s.programs[programID]
	if !ok || p.TeacherID != teacherID {
		return nil, domain.ErrNotFound
	}

	out := []models.Booking{}
	for _, b := range r.s.bookings {
		if b.ProgramID != programID {
			continue
		}
		if status != nil && b.Status != string(*status) {
			continue
		}
		if st, ok := r.s.students[b.StudentID]; ok {
			st = cloneStudent(st)
			b.Student = &st
		}
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

var _ domainBooking.Repository = (*BookingRepository)(nil)
