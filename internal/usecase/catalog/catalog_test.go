package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/shala-api/internal/cache"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/infra/memory"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

type fixture struct {
	store   *memory.Store
	cache   *cache.Memory
	deps    Deps
	teacher models.Teacher
}

func newFixture() *fixture {
	s := memory.NewStore()
	c := cache.NewMemory()
	return &fixture{
		store:   s,
		cache:   c,
		deps:    Deps{Repo: memory.NewCatalogRepository(s), Cache: c, TTL: time.Minute, Log: zap.NewNop()},
		teacher: s.PutTeacher(models.Teacher{Email: "maya@example.com", Slug: "maya", Name: "Maya"}),
	}
}

func (f *fixture) program(slug, status string, capacity *int) models.Program {
	return f.store.PutProgram(models.Program{
		TeacherID:        f.teacher.ID,
		Slug:             slug,
		Name:             slug,
		Status:           status,
		Capacity:         capacity,
		Sessions:         datatypes.JSONSlice[models.Session]{{Date: "2026-11-02", StartTime: "07:00", EndTime: "09:00", Title: "Day 1"}},
		OnlineMeetingURL: "https://zoom.us/j/secret",
	})
}

func (f *fixture) seat(programID uuid.UUID, status string) {
	f.store.PutBooking(models.Booking{TeacherID: f.teacher.ID, StudentID: uuid.New(), ProgramID: programID, Status: status})
}

func intp(n int) *int { return &n }

func TestListPrograms_RemainingCapacity(t *testing.T) {
	f := newFixture()
	full := f.program("full", "PUBLISHED", intp(2))
	f.seat(full.ID, "CONFIRMED")
	f.seat(full.ID, "CANCELLATION_REQUESTED")
	f.seat(full.ID, "WAITLISTED")
	open := f.program("open", "PUBLISHED", intp(5))
	f.seat(open.ID, "CANCELLED")
	f.program("unlimited", "PUBLISHED", nil)
	f.program("draft", "DRAFT", nil)

	out, err := NewListPrograms(f.deps).Execute(context.Background(), "maya")
	require.NoError(t, err)

	assert.Equal(t, "Maya", out.Teacher.Name)
	require.Len(t, out.Programs, 3)
	bySlug := map[string]int{}
	for i, p := range out.Programs {
		bySlug[p.Slug] = i
	}

	fp := out.Programs[bySlug["full"]]
	require.NotNil(t, fp.RemainingCapacity)
	assert.Equal(t, 0, *fp.RemainingCapacity)
	assert.True(t, fp.IsFull)

	op := out.Programs[bySlug["open"]]
	assert.Equal(t, 5, *op.RemainingCapacity)
	assert.False(t, op.IsFull)

	up := out.Programs[bySlug["unlimited"]]
	assert.Nil(t, up.RemainingCapacity)
	assert.False(t, up.IsFull)

	assert.Equal(t, "unlimited", out.Programs[0].Slug)
}

func TestListPrograms_ServedFromCache(t *testing.T) {
	f := newFixture()
	f.program("retreat", "PUBLISHED", nil)
	uc := NewListPrograms(f.deps)
	ctx := context.Background()

	_, err := uc.Execute(ctx, "maya")
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.Len())

	f.program("second", "PUBLISHED", nil)
	out, err := uc.Execute(ctx, "maya")
	require.NoError(t, err)
	assert.Len(t, out.Programs, 1)

	require.NoError(t, f.cache.InvalidateTeacher(ctx, f.teacher.ID))
	out, err = uc.Execute(ctx, "maya")
	require.NoError(t, err)
	assert.Len(t, out.Programs, 2)
}

func TestGetProgram(t *testing.T) {
	f := newFixture()
	f.program("retreat", "PUBLISHED", intp(10))
	f.program("hidden", "DRAFT", nil)
	uc := NewGetProgram(f.deps)
	ctx := context.Background()

	out, err := uc.Execute(ctx, "maya", "retreat")
	require.NoError(t, err)
	assert.Equal(t, "retreat", out.Program.Slug)
	assert.Equal(t, 10, *out.Program.RemainingCapacity)

	_, err = uc.Execute(ctx, "maya", "hidden")
	assert.True(t, httperr.IsBusiness(err, "program_not_found"))

	_, err = uc.Execute(ctx, "nobody", "retreat")
	assert.True(t, httperr.IsBusiness(err, "teacher_not_found"))
}

func TestCatalog_StorageFailure(t *testing.T) {
	f := newFixture()
	f.store.Fail(errors.New("db down"))

	_, err := NewListPrograms(f.deps).Execute(context.Background(), "maya")
	kind, ok := httperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, httperr.KindInternal, kind)
}
