package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainHealthForm "github.com/BruksfildServices01/shala-api/internal/domain/healthform"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type HealthFormGormRepository struct {
	db *gorm.DB
}

func NewHealthFormGormRepository(db *gorm.DB) *HealthFormGormRepository {
	return &HealthFormGormRepository{db: db}
}

func (r *HealthFormGormRepository) ListForProgram(
	ctx context.Context,
	teacherID uuid.UUID,
	programID uuid.UUID,
) ([]models.HealthForm, error) {

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

	var forms []models.HealthForm
	if err := db.
		Select("health_forms.*").
		Preload("Student").
		Joins("JOIN bookings ON bookings.id = health_forms.booking_id").
		Where("bookings.program_id = ?", programID).
		Order("health_forms.created_at ASC").
		Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *HealthFormGormRepository) FindOwned(
	ctx context.Context,
	teacherID uuid.UUID,
	ids []uuid.UUID,
) ([]models.HealthForm, error) {

	if len(ids) == 0 {
		return []models.HealthForm{}, nil
	}

	var forms []models.HealthForm
	if err := r.db.WithContext(ctx).
		Select("health_forms.*").
		Joins("JOIN bookings ON bookings.id = health_forms.booking_id").
		Where("bookings.teacher_id = ? AND health_forms.id IN ?", teacherID, ids).
		Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *HealthFormGormRepository) MarkReviewed(
	ctx context.Context,
	ids []uuid.UUID,
	reviewer uuid.UUID,
	at time.Time,
) (int64, error) {

	if len(ids) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Model(&models.HealthForm{}).
		Where("id IN ? AND is_reviewed = ?", ids, false).
		Updates(map[string]any{
			"is_reviewed": true,
			"reviewed_at": at,
			"reviewed_by": reviewer,
		})
	return res.RowsAffected, res.Error
}

// Compile-time check
var _ domainHealthForm.Repository = (*HealthFormGormRepository)(nil)
