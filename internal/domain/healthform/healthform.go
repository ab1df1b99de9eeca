package healthform

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

// Unreviewed returns the ids of forms still waiting for review. Reviewed
// forms keep their original reviewer and timestamp.
func Unreviewed(forms []models.HealthForm) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(forms))
	for _, f := range forms {
		if !f.IsReviewed {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// EnsureAllOwned fails when any requested id was not found among the
// teacher's forms.
func EnsureAllOwned(requested []uuid.UUID, owned []models.HealthForm) error {
	found := make(map[uuid.UUID]struct{}, len(owned))
	for _, f := range owned {
		found[f.ID] = struct{}{}
	}
	for _, id := range requested {
		if _, ok := found[id]; !ok {
			return httperr.ErrNotFound("health_form_not_found", "Health form not found")
		}
	}
	return nil
}
