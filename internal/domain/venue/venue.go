package venue

import "github.com/BruksfildServices01/shala-api/internal/httperr"

// CanDelete rejects deleting a venue still referenced by a DRAFT or
// PUBLISHED program.
func CanDelete(activePrograms int64) error {
	if activePrograms > 0 {
		return httperr.ErrConflict("venue_in_use", "This venue is used by draft or published programs.")
	}
	return nil
}
