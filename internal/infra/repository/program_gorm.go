package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainBooking "github.com/BruksfildServices01/shala-api/internal/domain/booking"
	domainProgram "github.com/BruksfildServices01/shala-api/internal/domain/program"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type ProgramGormRepository struct {
	db *gorm.DB
}

func NewProgramGormRepository(db *gorm.DB) *ProgramGormRepository {
	return &ProgramGormRepository{db: db}
}

func (r *ProgramGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domainProgram.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ProgramGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Program
// --------------------------------------------------

func (r *ProgramGormRepository) GetForTeacher(
	ctx context.Context,
	teacherID uuid.UUID,
	programID uuid.UUID,
) (*models.Program, error) {

	var p models.Program
	if err := r.db.WithContext(ctx).
		Preload("Venue").
		Where("id = ? AND teacher_id = ?", programID, teacherID).
		First(&p).Error; err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

type bookingCounts struct {
	ProgramID  uuid.UUID
	Active     int64
	Waitlisted int64
}

func (r *ProgramGormRepository) ListForTeacher(
	ctx context.Context,
	teacherID uuid.UUID,
	status *domainProgram.Status,
) ([]domainProgram.Summary, error) {

	db := r.db.WithContext(ctx)

	q := db.Where("teacher_id = ?", teacherID)
	if status != nil {
		q = q.Where("status = ?", string(*status))
	}

	var programs []models.Program
	if err := q.Order("created_at DESC").Find(&programs).Error; err != nil {
		return nil, err
	}
	if len(programs) == 0 {
		return []domainProgram.Summary{}, nil
	}

	ids := make([]uuid.UUID, len(programs))
	for i, p := range programs {
		ids[i] = p.ID
	}

	var rows []bookingCounts
	if err := db.Model(&models.Booking{}).
		Select(
			"program_id, "+
				"COUNT(*) FILTER (WHERE status NOT IN ?) AS active, "+
				"COUNT(*) FILTER (WHERE status = ?) AS waitlisted",
			uncountedStatuses(), string(domainBooking.StatusWaitlisted),
		).
		Where("program_id IN ?", ids).
		Group("program_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]bookingCounts, len(rows))
	for _, row := range rows {
		counts[row.ProgramID] = row
	}

	out := make([]domainProgram.Summary, len(programs))
	for i, p := range programs {
		out[i] = domainProgram.Summary{
			Program:            p,
			ActiveBookings:     counts[p.ID].Active,
			WaitlistedBookings: counts[p.ID].Waitlisted,
		}
	}
	return out, nil
}

func (r *ProgramGormRepository) Create(
	ctx context.Context,
	p *models.Program,
) error {
	return mapErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

func (r *ProgramGormRepository) UpdateStatus(
	ctx context.Context,
	p *models.Program,
	expected domainProgram.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Program{}).
		Where("id = ? AND status = ?", p.ID, string(expected)).
		Updates(map[string]any{"status": p.Status})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStale
	}
	return nil
}

func (r *ProgramGormRepository) Delete(
	ctx context.Context,
	programID uuid.UUID,
) error {
	return r.db.WithContext(ctx).
		Where("id = ?", programID).
		Delete(&models.Program{}).Error
}

func (r *ProgramGormRepository) CountBookings(
	ctx context.Context,
	programID uuid.UUID,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("program_id = ?", programID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ProgramGormRepository) SlugExists(
	ctx context.Context,
	teacherID uuid.UUID,
	slug string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Program{}).
		Where("teacher_id = ? AND slug = ?", teacherID, slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Templates
// --------------------------------------------------

func (r *ProgramGormRepository) GetTemplate(
	ctx context.Context,
	teacherID uuid.UUID,
	templateID uuid.UUID,
) (*models.ScheduleTemplate, error) {

	var t models.ScheduleTemplate
	if err := r.db.WithContext(ctx).
		Where("id = ? AND (is_platform_template = ? OR teacher_id = ?)", templateID, true, teacherID).
		First(&t).Error; err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (r *ProgramGormRepository) ListTemplates(
	ctx context.Context,
	teacherID uuid.UUID,
) ([]models.ScheduleTemplate, error) {

	var templates []models.ScheduleTemplate
	if err := r.db.WithContext(ctx).
		Where("is_platform_template = ? OR teacher_id = ?", true, teacherID).
		Order("is_platform_template DESC, name ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *ProgramGormRepository) CreateTemplate(
	ctx context.Context,
	t *models.ScheduleTemplate,
) error {
	return mapErr(r.db.WithContext(ctx).Create(t).Error)
}

// --------------------------------------------------
// Venue
// --------------------------------------------------

func (r *ProgramGormRepository) GetVenue(
	ctx context.Context,
	teacherID uuid.UUID,
	venueID uuid.UUID,
) (*models.Venue, error) {

	var v models.Venue
	if err := r.db.WithContext(ctx).
		Where("id = ? AND (teacher_id = ? OR is_shared = ?)", venueID, teacherID, true).
		First(&v).Error; err != nil {
		return nil, mapErr(err)
	}
	return &v, nil
}

func (r *ProgramGormRepository) CreateVenue(
	ctx context.Context,
	v *models.Venue,
) error {
	return mapErr(r.db.WithContext(ctx).Create(v).Error)
}

// Compile-time check
var _ domainProgram.Repository = (*ProgramGormRepository)(nil)
