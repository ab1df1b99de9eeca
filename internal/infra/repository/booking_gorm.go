package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainBooking "github.com/BruksfildServices01/shala-api/internal/domain/booking"
	"github.com/BruksfildServices01/shala-api/internal/domain/student"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func (r *BookingGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domainBooking.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Registration
// --------------------------------------------------

func (r *BookingGormRepository) LockProgram(
	ctx context.Context,
	programID uuid.UUID,
) (*models.Program, error) {

	var p models.Program
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", programID).
		First(&p).Error; err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *BookingGormRepository) CountActiveBookings(
	ctx context.Context,
	programID uuid.UUID,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("program_id = ? AND status NOT IN ?", programID, uncountedStatuses()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BookingGormRepository) UpsertStudent(
	ctx context.Context,
	s *models.Student,
) (*models.Student, error) {

	db := r.db.WithContext(ctx)

	if err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "teacher_id"}, {Name: "email"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns()),
		}).
		Create(s).Error; err != nil {
		return nil, err
	}

	// On conflict the generated id in s is not the stored one.
	var stored models.Student
	if err := db.
		Where("teacher_id = ? AND email = ?", s.TeacherID, s.Email).
		First(&stored).Error; err != nil {
		return nil, mapErr(err)
	}
	return &stored, nil
}

func (r *BookingGormRepository) FindBooking(
	ctx context.Context,
	studentID uuid.UUID,
	programID uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND program_id = ?", studentID, programID).
		First(&b).Error; err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return mapErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error)
}

func (r *BookingGormRepository) CreateHealthForm(
	ctx context.Context,
	hf *models.HealthForm,
) error {
	return mapErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(hf).Error)
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	bookingID uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ?", bookingID).
		First(&b).Error; err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingForTeacher(
	ctx context.Context,
	teacherID uuid.UUID,
	bookingID uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND teacher_id = ?", bookingID, teacherID).
		First(&b).Error; err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
	expected domainBooking.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", b.ID, string(expected)).
		Select(
			"status",
			"payment_status",
			"cancelled_reason",
			"cancelled_at",
			"refund_notes",
			"updated_at",
		).
		Updates(b)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStale
	}
	return nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingDetails(
	ctx context.Context,
	bookingID uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Program.Teacher").
		Preload("Program.Venue").
		Preload("HealthForm").
		Where("id = ?", bookingID).
		First(&b).Error; err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) ListProgramBookings(
	ctx context.Context,
	teacherID uuid.UUID,
	programID uuid.UUID,
	status *domainBooking.Status,
) ([]models.Booking, error) {

	db := r.db.WithContext(ctx)

	var owned int64
	if err := db.Model(&models.Program{}).
		Where("id = ? AND teacher_id = ?", programID, teacherID).
		Count(&owned).Error; err != nil {
		return nil, err
	}
	if owned == 0 {
		return nil, domain.ErrNotFound
	}

	q := db.Preload("Student").
		Where("program_id = ?", programID)
	if status != nil {
		q = q.Where("status = ?", string(*status))
	}

	var bookings []models.Booking
	if err := q.Order("created_at ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func uncountedStatuses() []string {
	out := make([]string, 0, len(domainBooking.UncountedStatuses))
	for _, s := range domainBooking.UncountedStatuses {
		out = append(out, string(s))
	}
	return out
}

func upsertColumns() []string {
	cols := make([]string, 0, len(student.ContactColumns)+1)
	cols = append(cols, student.ContactColumns...)
	return append(cols, "updated_at")
}

// Compile-time check
var _ domainBooking.Repository = (*BookingGormRepository)(nil)
