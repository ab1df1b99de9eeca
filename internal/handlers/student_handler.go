package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/shala-api/internal/dto"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/httpresp"
	"github.com/BruksfildServices01/shala-api/internal/middleware"
	ucStudent "github.com/BruksfildServices01/shala-api/internal/usecase/student"
)

type StudentHandler struct {
	list        *ucStudent.ListStudents
	get         *ucStudent.GetStudent
	listTags    *ucStudent.ListTags
	update      *ucStudent.UpdateStudent
	updateTags  *ucStudent.UpdateTags
	updateNotes *ucStudent.UpdateNotes
}

func NewStudentHandler(
	list *ucStudent.ListStudents,
	get *ucStudent.GetStudent,
	listTags *ucStudent.ListTags,
	update *ucStudent.UpdateStudent,
	updateTags *ucStudent.UpdateTags,
	updateNotes *ucStudent.UpdateNotes,
) *StudentHandler {
	return &StudentHandler{
		list:        list,
		get:         get,
		listTags:    listTags,
		update:      update,
		updateTags:  updateTags,
		updateNotes: updateNotes,
	}
}

// --------- Requests ---------

type UpdateTagsRequest struct {
	Tags []string `json:"tags"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// --------- Handlers ---------

func (h *StudentHandler) List(c *gin.Context) {
	var in ucStudent.ListInput
	if err := c.ShouldBindQuery(&in); err != nil {
		httperr.BadRequest(c, "invalid_query", "Invalid query parameters.")
		return
	}

	res, err := h.list.Execute(c.Request.Context(), middleware.TeacherID(c), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Page(c, dto.NewStudentListItemDTOs(res.Items), res.Total, res.Page, res.PerPage)
}

func (h *StudentHandler) Tags(c *gin.Context) {
	tags, err := h.listTags.Execute(c.Request.Context(), middleware.TeacherID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, tags)
}

func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "student_not_found", "Student not found")
	if !ok {
		return
	}

	d, err := h.get.Execute(c.Request.Context(), middleware.TeacherID(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.StudentDetailDTO{Student: d.Student, Bookings: d.Bookings})
}

func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "student_not_found", "Student not found")
	if !ok {
		return
	}

	var req ucStudent.ContactInput
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.update.Execute(c.Request.Context(), middleware.TeacherID(c), id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *StudentHandler) UpdateTags(c *gin.Context) {
	id, ok := pathID(c, "id", "student_not_found", "Student not found")
	if !ok {
		return
	}

	var req UpdateTagsRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.updateTags.Execute(c.Request.Context(), middleware.TeacherID(c), id, req.Tags)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *StudentHandler) UpdateNotes(c *gin.Context) {
	id, ok := pathID(c, "id", "student_not_found", "Student not found")
	if !ok {
		return
	}

	var req UpdateNotesRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.updateNotes.Execute(c.Request.Context(), middleware.TeacherID(c), id, req.Notes)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, s)
}
