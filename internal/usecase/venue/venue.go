package venue

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	"github.com/BruksfildServices01/shala-api/internal/cache"
	"github.com/BruksfildServices01/shala-api/internal/domain"
	domainVenue "github.com/BruksfildServices01/shala-api/internal/domain/venue"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
	"github.com/BruksfildServices01/shala-api/internal/usecase"
	"github.com/BruksfildServices01/shala-api/internal/validators"
)

var errVenueNotFound = httperr.ErrNotFound("venue_not_found", "Venue not found")

type Deps struct {
	Repo  domainVenue.Repository
	Cache cache.Cache
	Audit *audit.Dispatcher
	Log   *zap.Logger
}

func (d Deps) owned(ctx context.Context, op string, teacherID, venueID uuid.UUID) (*models.Venue, error) {
	v, err := d.Repo.GetOwned(ctx, teacherID, venueID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errVenueNotFound
	}
	if err != nil {
		return nil, usecase.StorageFailure(d.Log, op, err, zap.Stringer("venue_id", venueID))
	}
	return v, nil
}

func (d Deps) record(teacherID uuid.UUID, action string, venueID uuid.UUID) {
	d.Audit.Dispatch(audit.Event{
		TeacherID: teacherID,
		ActorID:   audit.Ref(teacherID),
		Action:    action,
		Entity:    audit.EntityVenue,
		EntityID:  audit.Ref(venueID),
	})
	d.Log.Info(action, zap.Stringer("venue_id", venueID))
}

// ------------------------------------------------------------

type ListVenues struct{ Deps }

func NewListVenues(d Deps) *ListVenues { return &ListVenues{Deps: d} }

func (uc *ListVenues) Execute(ctx context.Context, teacherID uuid.UUID) ([]models.Venue, error) {
	items, err := uc.Repo.List(ctx, teacherID)
	if err != nil {
		return nil, usecase.StorageFailure(uc.Log, "list_venues", err, zap.Stringer("teacher_id", teacherID))
	}
	return items, nil
}

// ------------------------------------------------------------

type CreateVenue struct{ Deps }

func NewCreateVenue(d Deps) *CreateVenue { return &CreateVenue{Deps: d} }

func (uc *CreateVenue) Execute(ctx context.Context, teacherID uuid.UUID, in Input) (*models.Venue, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	v := in.Model(teacherID)
	if err := uc.Repo.Create(ctx, v); err != nil {
		return nil, usecase.StorageFailure(uc.Log, "create_venue", err, zap.Stringer("teacher_id", teacherID))
	}

	uc.record(teacherID, audit.ActionVenueCreated, v.ID)
	return v, nil
}

// ------------------------------------------------------------

type UpdateVenue struct{ Deps }

func NewUpdateVenue(d Deps) *UpdateVenue { return &UpdateVenue{Deps: d} }

func (uc *UpdateVenue) Execute(ctx context.Context, teacherID, venueID uuid.UUID, in Input) (*models.Venue, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	v, err := uc.owned(ctx, "update_venue", teacherID, venueID)
	if err != nil {
		return nil, err
	}

	in.Apply(v)
	if err := uc.Repo.Update(ctx, v); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errVenueNotFound
		}
		return nil, usecase.StorageFailure(uc.Log, "update_venue", err, zap.Stringer("venue_id", venueID))
	}

	// Published programs embed the venue in the public catalog.
	usecase.InvalidateCatalog(ctx, uc.Cache, uc.Log, teacherID)
	uc.record(teacherID, audit.ActionVenueUpdated, v.ID)
	return v, nil
}

// ------------------------------------------------------------

type DeleteVenue struct{ Deps }

func NewDeleteVenue(d Deps) *DeleteVenue { return &DeleteVenue{Deps: d} }

func (uc *DeleteVenue) Execute(ctx context.Context, teacherID, venueID uuid.UUID) error {
	if _, err := uc.owned(ctx, "delete_venue", teacherID, venueID); err != nil {
		return err
	}

	active, err := uc.Repo.CountActivePrograms(ctx, venueID)
	if err != nil {
		return usecase.StorageFailure(uc.Log, "delete_venue", err, zap.Stringer("venue_id", venueID))
	}
	if err := domainVenue.CanDelete(active); err != nil {
		return err
	}

	if err := uc.Repo.Delete(ctx, venueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errVenueNotFound
		}
		return usecase.StorageFailure(uc.Log, "delete_venue", err, zap.Stringer("venue_id", venueID))
	}

	uc.record(teacherID, audit.ActionVenueDeleted, venueID)
	return nil
}
