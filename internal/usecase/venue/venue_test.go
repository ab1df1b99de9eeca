package venue

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	"github.com/BruksfildServices01/shala-api/internal/cache"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/infra/memory"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

func setup(t *testing.T) (*memory.Store, Deps) {
	t.Helper()
	s := memory.NewStore()
	d := audit.NewDispatcher(memory.NewAuditStore(s), zap.NewNop())
	t.Cleanup(d.Close)
	return s, Deps{
		Repo:  memory.NewVenueRepository(s),
		Cache: cache.Noop{},
		Audit: d,
		Log:   zap.NewNop(),
	}
}

func validInput() Input {
	return Input{Name: "Shala Lisboa", Address: "Rua das Flores 12", City: "Lisboa", Country: "Portugal"}
}

func TestCreateAndUpdateVenue(t *testing.T) {
	_, deps := setup(t)
	ctx := context.Background()
	teacherID := uuid.New()

	v, err := NewCreateVenue(deps).Execute(ctx, teacherID, validInput())
	require.NoError(t, err)
	assert.Equal(t, teacherID, v.TeacherID)

	in := validInput()
	in.Notes = "<script>x</script>Second floor"
	in.Capacity = intp(20)
	updated, err := NewUpdateVenue(deps).Execute(ctx, teacherID, v.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Second floor", updated.Notes)
	assert.Equal(t, 20, *updated.Capacity)

	_, err = NewUpdateVenue(deps).Execute(ctx, uuid.New(), v.ID, in)
	assert.True(t, httperr.IsBusiness(err, "venue_not_found"))
}

func TestCreateVenue_Validation(t *testing.T) {
	_, deps := setup(t)
	in := validInput()
	in.Address = "abc"

	_, err := NewCreateVenue(deps).Execute(context.Background(), uuid.New(), in)

	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "address", be.Field)
}

func TestListVenues_IncludesShared(t *testing.T) {
	s, deps := setup(t)
	teacherID := uuid.New()
	s.PutVenue(models.Venue{TeacherID: teacherID, Name: "B studio"})
	s.PutVenue(models.Venue{TeacherID: uuid.New(), Name: "A shared hall", IsShared: true})
	s.PutVenue(models.Venue{TeacherID: uuid.New(), Name: "C private"})

	items, err := NewListVenues(deps).Execute(context.Background(), teacherID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A shared hall", items[0].Name)
}

func TestDeleteVenue_InUse(t *testing.T) {
	s, deps := setup(t)
	ctx := context.Background()
	teacherID := uuid.New()
	v := s.PutVenue(models.Venue{TeacherID: teacherID, Name: "Studio"})
	p := s.PutProgram(models.Program{TeacherID: teacherID, Slug: "p", Status: "PUBLISHED", VenueID: &v.ID})

	err := NewDeleteVenue(deps).Execute(ctx, teacherID, v.ID)
	assert.True(t, httperr.IsBusiness(err, "venue_in_use"))

	p.Status = "COMPLETED"
	s.PutProgram(p)
	require.NoError(t, NewDeleteVenue(deps).Execute(ctx, teacherID, v.ID))

	err = NewDeleteVenue(deps).Execute(ctx, teacherID, v.ID)
	assert.True(t, httperr.IsBusiness(err, "venue_not_found"))
}

func intp(n int) *int { return &n }
