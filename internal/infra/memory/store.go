// Package memory keeps every repository in process maps. Tests use it in
// place of Postgres; it enforces the same unique keys and returns the same
// domain sentinel errors.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/models"
)

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	teachers    map[uuid.UUID]models.Teacher
	programs    map[uuid.UUID]models.Program
	templates   map[uuid.UUID]models.ScheduleTemplate
	venues      map[uuid.UUID]models.Venue
	students    map[uuid.UUID]models.Student
	bookings    map[uuid.UUID]models.Booking
	healthForms map[uuid.UUID]models.HealthForm
	auditLogs   []models.AuditLog

	clock   time.Time
	failure error
}

func NewStore() *Store {
	return &Store{
		teachers:    map[uuid.UUID]models.Teacher{},
		programs:    map[uuid.UUID]models.Program{},
		templates:   map[uuid.UUID]models.ScheduleTemplate{},
		venues:      map[uuid.UUID]models.Venue{},
		students:    map[uuid.UUID]models.Student{},
		bookings:    map[uuid.UUID]models.Booking{},
		healthForms: map[uuid.UUID]models.HealthForm{},
		clock:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Fail makes every following repository call return err until Fail(nil).
func (s *Store) Fail(err error) {
	s.mu.Lock()
	s.failure = err
	s.mu.Unlock()
}

// tick returns a strictly increasing timestamp so ordering by creation time
// is deterministic. Callers hold s.mu.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

type snapshot struct {
	teachers    map[uuid.UUID]models.Teacher
	programs    map[uuid.UUID]models.Program
	templates   map[uuid.UUID]models.ScheduleTemplate
	venues      map[uuid.UUID]models.Venue
	students    map[uuid.UUID]models.Student
	bookings    map[uuid.UUID]models.Booking
	healthForms map[uuid.UUID]models.HealthForm
	auditLogs   []models.AuditLog
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		teachers:    maps.Clone(s.teachers),
		programs:    maps.Clone(s.programs),
		templates:   maps.Clone(s.templates),
		venues:      maps.Clone(s.venues),
		students:    maps.Clone(s.students),
		bookings:    maps.Clone(s.bookings),
		healthForms: maps.Clone(s.healthForms),
		auditLogs:   slices.Clone(s.auditLogs),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teachers = snap.teachers
	s.programs = snap.programs
	s.templates = snap.templates
	s.venues = snap.venues
	s.students = snap.students
	s.bookings = snap.bookings
	s.healthForms = snap.healthForms
	s.auditLogs = snap.auditLogs
}

// transaction serialises fn against other transactions and rolls the maps
// back when it fails. Stored values are never mutated in place, so shallow
// map copies are enough.
func (s *Store) transaction(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// -------- value copies --------

func cloneProgram(p models.Program) models.Program {
	p.Sessions = slices.Clone(p.Sessions)
	p.Teacher = nil
	p.Venue = nil
	return p
}

func cloneTemplate(t models.ScheduleTemplate) models.ScheduleTemplate {
	t.DefaultSessions = slices.Clone(t.DefaultSessions)
	return t
}

func cloneStudent(st models.Student) models.Student {
	st.Tags = slices.Clone(st.Tags)
	return st
}

func cloneBooking(b models.Booking) models.Booking {
	b.Student = nil
	b.Program = nil
	b.HealthForm = nil
	return b
}

func cloneHealthForm(h models.HealthForm) models.HealthForm {
	h.HealthConditions = slices.Clone(h.HealthConditions)
	h.Student = nil
	return h
}

func cloneTeacher(t models.Teacher) models.Teacher {
	t.Languages = slices.Clone(t.Languages)
	return t
}

func (s *Store) stamp(created, updated *time.Time) {
	now := s.tick()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}
