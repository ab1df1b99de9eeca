package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/httpresp"
	"github.com/BruksfildServices01/shala-api/internal/middleware"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store audit.Store
	log   *zap.Logger
}

func NewAuditLogsHandler(store audit.Store, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{store: store, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	teacherID := middleware.TeacherID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if limit <= 0 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}

	from, ok := queryDate(c, "from")
	if !ok {
		return
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return
	}
	// "to" is inclusive of the whole day.
	if to != nil {
		end := to.Add(24 * time.Hour)
		to = &end
	}

	logs, total, err := h.store.List(c.Request.Context(), teacherID, audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   from,
		To:     to,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		h.log.Error("list audit logs failed", zap.Error(err), zap.Stringer("teacher_id", teacherID))
		httperr.Internal(c, "audit_list_failed", "Could not load the activity log.")
		return
	}

	httpresp.Page(c, logs, total, page, limit)
}
