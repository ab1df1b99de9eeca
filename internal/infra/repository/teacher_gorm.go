package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainTeacher "github.com/BruksfildServices01/shala-api/internal/domain/teacher"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type TeacherGormRepository struct {
	db *gorm.DB
}

func NewTeacherGormRepository(db *gorm.DB) *TeacherGormRepository {
	return &TeacherGormRepository{db: db}
}

func (r *TeacherGormRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error) {
	var t models.Teacher
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (r *TeacherGormRepository) GetByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	var t models.Teacher
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&t).Error; err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (r *TeacherGormRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Teacher{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TeacherGormRepository) Create(ctx context.Context, t *models.Teacher) error {
	return mapErr(r.db.WithContext(ctx).Create(t).Error)
}

// Compile-time check
var _ domainTeacher.Repository = (*TeacherGormRepository)(nil)
