package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainCatalog "github.com/BruksfildServices01/shala-api/internal/domain/catalog"
	domainProgram "github.com/BruksfildServices01/shala-api/internal/domain/program"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) GetTeacherBySlug(
	ctx context.Context,
	slug string,
) (*models.Teacher, error) {

	var t models.Teacher
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&t).Error; err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (r *CatalogGormRepository) ListPublished(
	ctx context.Context,
	teacherID uuid.UUID,
) ([]domainCatalog.Listing, error) {

	db := r.db.WithContext(ctx)

	var programs []models.Program
	if err := db.
		Preload("Venue").
		Where("teacher_id = ? AND status = ?", teacherID, string(domainProgram.StatusPublished)).
		Order("created_at DESC").
		Find(&programs).Error; err != nil {
		return nil, err
	}

	out := make([]domainCatalog.Listing, 0, len(programs))
	if len(programs) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, len(programs))
	for i, p := range programs {
		ids[i] = p.ID
	}

	active, err := r.activeCounts(db, ids)
	if err != nil {
		return nil, err
	}

	for _, p := range programs {
		out = append(out, domainCatalog.Listing{Program: p, ActiveBookings: active[p.ID]})
	}
	return out, nil
}

func (r *CatalogGormRepository) GetPublished(
	ctx context.Context,
	teacherID uuid.UUID,
	programSlug string,
) (*domainCatalog.Listing, error) {

	db := r.db.WithContext(ctx)

	var p models.Program
	if err := db.
		Preload("Venue").
		Where("teacher_id = ? AND slug = ? AND status = ?", teacherID, programSlug, string(domainProgram.StatusPublished)).
		First(&p).Error; err != nil {
		return nil, mapErr(err)
	}

	active, err := r.activeCounts(db, []uuid.UUID{p.ID})
	if err != nil {
		return nil, err
	}
	return &domainCatalog.Listing{Program: p, ActiveBookings: active[p.ID]}, nil
}

func (r *CatalogGormRepository) activeCounts(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []struct {
		ProgramID uuid.UUID
		Active    int64
	}
	if err := db.Model(&models.Booking{}).
		Select("program_id, COUNT(*) AS active").
		Where("program_id IN ? AND status NOT IN ?", ids, uncountedStatuses()).
		Group("program_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		out[row.ProgramID] = row.Active
	}
	return out, nil
}

// Compile-time check
var _ domainCatalog.Repository = (*CatalogGormRepository)(nil)
