package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/httpresp"
	"github.com/BruksfildServices01/shala-api/internal/middleware"
	ucVenue "github.com/BruksfildServices01/shala-api/internal/usecase/venue"
)

type VenueHandler struct {
	list   *ucVenue.ListVenues
	create *ucVenue.CreateVenue
	update *ucVenue.UpdateVenue
	delete *ucVenue.DeleteVenue
}

func NewVenueHandler(
	list *ucVenue.ListVenues,
	create *ucVenue.CreateVenue,
	update *ucVenue.UpdateVenue,
	deleteVenue *ucVenue.DeleteVenue,
) *VenueHandler {
	return &VenueHandler{list: list, create: create, update: update, delete: deleteVenue}
}

func (h *VenueHandler) List(c *gin.Context) {
	venues, err := h.list.Execute(c.Request.Context(), middleware.TeacherID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, venues)
}

func (h *VenueHandler) Create(c *gin.Context) {
	var req ucVenue.Input
	if !bindJSON(c, &req) {
		return
	}

	v, err := h.create.Execute(c.Request.Context(), middleware.TeacherID(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, v)
}

func (h *VenueHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "venue_not_found", "Venue not found")
	if !ok {
		return
	}

	var req ucVenue.Input
	if !bindJSON(c, &req) {
		return
	}

	v, err := h.update.Execute(c.Request.Context(), middleware.TeacherID(c), id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, v)
}

func (h *VenueHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "venue_not_found", "Venue not found")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.TeacherID(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
