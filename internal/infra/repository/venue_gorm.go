package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainProgram "github.com/BruksfildServices01/shala-api/internal/domain/program"
	domainVenue "github.com/BruksfildServices01/shala-api/internal/domain/venue"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type VenueGormRepository struct {
	db *gorm.DB
}

func NewVenueGormRepository(db *gorm.DB) *VenueGormRepository {
	return &VenueGormRepository{db: db}
}

func (r *VenueGormRepository) List(ctx context.Context, teacherID uuid.UUID) ([]models.Venue, error) {
	var venues []models.Venue
	if err := r.db.WithContext(ctx).
		Where("teacher_id = ? OR is_shared = ?", teacherID, true).
		Order("name ASC").
		Find(&venues).Error; err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *VenueGormRepository) GetOwned(ctx context.Context, teacherID, venueID uuid.UUID) (*models.Venue, error) {
	var v models.Venue
	if err := r.db.WithContext(ctx).
		Where("id = ? AND teacher_id = ?", venueID, teacherID).
		First(&v).Error; err != nil {
		return nil, mapErr(err)
	}
	return &v, nil
}

func (r *VenueGormRepository) Create(ctx context.Context, v *models.Venue) error {
	return mapErr(r.db.WithContext(ctx).Create(v).Error)
}

func (r *VenueGormRepository) Update(ctx context.Context, v *models.Venue) error {
	return mapErr(r.db.WithContext(ctx).
		Model(v).
		Select("*").
		Omit("id", "teacher_id", "created_at").
		Updates(v).Error)
}

func (r *VenueGormRepository) Delete(ctx context.Context, venueID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", venueID).
		Delete(&models.Venue{}).Error
}

func (r *VenueGormRepository) CountActivePrograms(ctx context.Context, venueID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Program{}).
		Where("venue_id = ? AND status IN ?", venueID, []string{
			string(domainProgram.StatusDraft),
			string(domainProgram.StatusPublished),
		}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Compile-time check
var _ domainVenue.Repository = (*VenueGormRepository)(nil)
