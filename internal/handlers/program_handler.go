package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/shala-api/internal/dto"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/httpresp"
	"github.com/BruksfildServices01/shala-api/internal/middleware"
	ucProgram "github.com/BruksfildServices01/shala-api/internal/usecase/program"
)

type ProgramHandler struct {
	list         *ucProgram.ListPrograms
	get          *ucProgram.GetProgram
	create       *ucProgram.CreateProgram
	updateStatus *ucProgram.UpdateProgramStatus
	duplicate    *ucProgram.DuplicateProgram
	delete       *ucProgram.DeleteProgram
	saveTemplate *ucProgram.SaveAsTemplate
}

func NewProgramHandler(
	list *ucProgram.ListPrograms,
	get *ucProgram.GetProgram,
	create *ucProgram.CreateProgram,
	updateStatus *ucProgram.UpdateProgramStatus,
	duplicate *ucProgram.DuplicateProgram,
	deleteProgram *ucProgram.DeleteProgram,
	saveTemplate *ucProgram.SaveAsTemplate,
) *ProgramHandler {
	return &ProgramHandler{
		list:         list,
		get:          get,
		create:       create,
		updateStatus: updateStatus,
		duplicate:    duplicate,
		delete:       deleteProgram,
		saveTemplate: saveTemplate,
	}
}

// --------- Requests ---------

type UpdateProgramStatusRequest struct {
	Status string `json:"status"`
}

// --------- Handlers ---------

func (h *ProgramHandler) List(c *gin.Context) {
	items, err := h.list.Execute(c.Request.Context(), middleware.TeacherID(c), c.Query("status"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, dto.NewProgramSummaryDTOs(items))
}

func (h *ProgramHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "program_not_found", "Program not found")
	if !ok {
		return
	}

	p, err := h.get.Execute(c.Request.Context(), middleware.TeacherID(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *ProgramHandler) Create(c *gin.Context) {
	var req ucProgram.CreateInput
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.create.Execute(c.Request.Context(), middleware.TeacherID(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, p)
}

func (h *ProgramHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id", "program_not_found", "Program not found")
	if !ok {
		return
	}

	var req UpdateProgramStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.updateStatus.Execute(c.Request.Context(), middleware.TeacherID(c), id, req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *ProgramHandler) Duplicate(c *gin.Context) {
	id, ok := pathID(c, "id", "program_not_found", "Program not found")
	if !ok {
		return
	}

	p, err := h.duplicate.Execute(c.Request.Context(), middleware.TeacherID(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, p)
}

func (h *ProgramHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "program_not_found", "Program not found")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.TeacherID(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProgramHandler) SaveAsTemplate(c *gin.Context) {
	id, ok := pathID(c, "id", "program_not_found", "Program not found")
	if !ok {
		return
	}

	var req ucProgram.SaveTemplateInput
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.saveTemplate.Execute(c.Request.Context(), middleware.TeacherID(c), id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, t)
}
