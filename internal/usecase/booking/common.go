package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	"github.com/BruksfildServices01/shala-api/internal/cache"
	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainBooking "github.com/BruksfildServices01/shala-api/internal/domain/booking"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/usecase"
)

var errBookingNotFound = httperr.ErrNotFound("booking_not_found", "Booking not found")

// Deps is what every booking state change needs.
type Deps struct {
	Repo  domainBooking.Repository
	Cache cache.Cache
	Audit *audit.Dispatcher
	Log   *zap.Logger
}

func (d Deps) loadForTeacher(ctx context.Context, op string, teacherID, bookingID uuid.UUID) (*models.Booking, error) {
	b, err := d.Repo.GetBookingForTeacher(ctx, teacherID, bookingID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errBookingNotFound
	}
	if err != nil {
		return nil, usecase.StorageFailure(d.Log, op, err, zap.Stringer("booking_id", bookingID))
	}
	return b, nil
}

// save writes b back only if nobody moved it off from in the meantime.
func (d Deps) save(ctx context.Context, op string, b *models.Booking, from domainBooking.Status) error {
	err := d.Repo.UpdateBooking(ctx, b, from)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrStale):
		return httperr.ErrConflict("booking_changed", "This booking was changed by someone else. Reload and try again.")
	case errors.Is(err, domain.ErrNotFound):
		return errBookingNotFound
	default:
		return usecase.StorageFailure(d.Log, op, err, zap.Stringer("booking_id", b.ID))
	}
}

// settle runs the side effects every successful state change shares.
func (d Deps) settle(ctx context.Context, b *models.Booking, actor *uuid.UUID, action string, from domainBooking.Status) {
	usecase.InvalidateCatalog(ctx, d.Cache, d.Log, b.TeacherID)

	d.Audit.Dispatch(audit.Event{
		TeacherID: b.TeacherID,
		ActorID:   actor,
		Action:    action,
		Entity:    audit.EntityBooking,
		EntityID:  audit.Ref(b.ID),
		Metadata: map[string]string{
			"from":           string(from),
			"to":             b.Status,
			"payment_status": b.PaymentStatus,
		},
	})

	d.Log.Info(action,
		zap.Stringer("booking_id", b.ID),
		zap.String("from", string(from)),
		zap.String("to", b.Status),
	)
}
