package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/httpresp"
	"github.com/BruksfildServices01/shala-api/internal/middleware"
	ucHealthForm "github.com/BruksfildServices01/shala-api/internal/usecase/healthform"
	"github.com/BruksfildServices01/shala-api/internal/validators"
)

type HealthFormHandler struct {
	listForProgram *ucHealthForm.ListForProgram
	review         *ucHealthForm.Review
}

func NewHealthFormHandler(
	listForProgram *ucHealthForm.ListForProgram,
	review *ucHealthForm.Review,
) *HealthFormHandler {
	return &HealthFormHandler{listForProgram: listForProgram, review: review}
}

func (h *HealthFormHandler) ListForProgram(c *gin.Context) {
	programID, ok := pathID(c, "id", "program_not_found", "Program not found")
	if !ok {
		return
	}

	forms, err := h.listForProgram.Execute(c.Request.Context(), middleware.TeacherID(c), programID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, forms)
}

func (h *HealthFormHandler) ReviewMany(c *gin.Context) {
	var req ucHealthForm.ReviewInput
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.Struct(req); err != nil {
		httperr.FromError(c, err)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		ids = append(ids, uuid.MustParse(raw))
	}

	res, err := h.review.Execute(c.Request.Context(), middleware.TeacherID(c), ids)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, res)
}

func (h *HealthFormHandler) ReviewOne(c *gin.Context) {
	id, ok := pathID(c, "id", "health_form_not_found", "Health form not found")
	if !ok {
		return
	}

	res, err := h.review.Execute(c.Request.Context(), middleware.TeacherID(c), []uuid.UUID{id})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, res)
}
