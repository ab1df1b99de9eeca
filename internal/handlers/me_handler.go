package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/httpresp"
	"github.com/BruksfildServices01/shala-api/internal/middleware"
	ucProgram "github.com/BruksfildServices01/shala-api/internal/usecase/program"
	ucTeacher "github.com/BruksfildServices01/shala-api/internal/usecase/teacher"
)

type MeHandler struct {
	getTeacher    *ucTeacher.GetTeacher
	listTemplates *ucProgram.ListTemplates
}

func NewMeHandler(getTeacher *ucTeacher.GetTeacher, listTemplates *ucProgram.ListTemplates) *MeHandler {
	return &MeHandler{getTeacher: getTeacher, listTemplates: listTemplates}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	t, err := h.getTeacher.Execute(c.Request.Context(), middleware.TeacherID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"teacher": t})
}

// Templates lists platform templates followed by the teacher's own.
func (h *MeHandler) Templates(c *gin.Context) {
	items, err := h.listTemplates.Execute(c.Request.Context(), middleware.TeacherID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, items)
}
