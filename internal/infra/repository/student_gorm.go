package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainStudent "github.com/BruksfildServices01/shala-api/internal/domain/student"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type StudentGormRepository struct {
	db *gorm.DB
}

func NewStudentGormRepository(db *gorm.DB) *StudentGormRepository {
	return &StudentGormRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *StudentGormRepository) List(
	ctx context.Context,
	teacherID uuid.UUID,
	f domainStudent.ListFilter,
) ([]domainStudent.ListItem, int64, error) {

	db := r.db.WithContext(ctx)

	q := db.Model(&models.Student{}).
		Where("students.teacher_id = ?", teacherID)

	if f.Search != "" {
		like := "%" + likeEscaper.Replace(f.Search) + "%"
		q = q.Where(
			"(first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?)",
			like, like, like, like,
		)
	}
	if f.Tag != "" {
		q = q.Where("? = ANY(tags)", f.Tag)
	}
	if f.ProgramID != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM bookings b WHERE b.student_id = students.id AND b.program_id = ?)",
			*f.ProgramID,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var students []models.Student
	if err := q.
		Order("created_at DESC").
		Limit(f.PerPage).
		Offset(f.Offset()).
		Find(&students).Error; err != nil {
		return nil, 0, err
	}

	items := make([]domainStudent.ListItem, 0, len(students))
	if len(students) == 0 {
		return items, total, nil
	}

	ids := make([]uuid.UUID, len(students))
	for i, s := range students {
		ids[i] = s.ID
	}

	var rows []struct {
		StudentID     uuid.UUID
		ProgramCount  int
		LastBookingAt *time.Time
	}
	if err := db.Model(&models.Booking{}).
		Select("student_id, COUNT(DISTINCT program_id) AS program_count, MAX(created_at) AS last_booking_at").
		Where("student_id IN ?", ids).
		Group("student_id").
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	meta := make(map[uuid.UUID]int, len(rows))
	for i, row := range rows {
		meta[row.StudentID] = i
	}

	for _, s := range students {
		item := domainStudent.ListItem{Student: s}
		if i, ok := meta[s.ID]; ok {
			item.ProgramCount = rows[i].ProgramCount
			item.LastBookingAt = rows[i].LastBookingAt
		}
		items = append(items, item)
	}
	return items, total, nil
}

func (r *StudentGormRepository) Get(
	ctx context.Context,
	teacherID uuid.UUID,
	studentID uuid.UUID,
) (*models.Student, error) {

	var s models.Student
	if err := r.db.WithContext(ctx).
		Where("id = ? AND teacher_id = ?", studentID, teacherID).
		First(&s).Error; err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func (r *StudentGormRepository) ListBookings(
	ctx context.Context,
	teacherID uuid.UUID,
	studentID uuid.UUID,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Program").
		Preload("HealthForm").
		Where("student_id = ? AND teacher_id = ?", studentID, teacherID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *StudentGormRepository) Update(
	ctx context.Context,
	s *models.Student,
) error {
	return mapErr(r.db.WithContext(ctx).
		Model(s).
		Where("teacher_id = ?", s.TeacherID).
		Select("*").
		Omit("id", "teacher_id", "created_at").
		Updates(s).Error)
}

func (r *StudentGormRepository) AllTags(
	ctx context.Context,
	teacherID uuid.UUID,
) ([]string, error) {

	var tags []string
	if err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT tag FROM students, unnest(tags) AS tag WHERE teacher_id = ? ORDER BY tag`, teacherID).
		Scan(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Compile-time check
var _ domainStudent.Repository = (*StudentGormRepository)(nil)
