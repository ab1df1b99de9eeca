package handlers

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/httperr"
)

const dateLayout = "2006-01-02"

// pathID parses a uuid path parameter. On failure it has already written the
// 404 and the caller just returns.
func pathID(c *gin.Context, name, notFoundCode, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.NotFound(c, notFoundCode, message)
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", "The request body is not valid JSON.")
		return false
	}
	return true
}

// bindOptionalJSON accepts an empty body.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(c, "invalid_request", "The request body is not valid JSON.")
		return false
	}
	return true
}

// queryDate reads an optional YYYY-MM-DD query parameter as UTC midnight.
func queryDate(c *gin.Context, name string) (*time.Time, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	d, err := time.ParseInLocation(dateLayout, v, time.UTC)
	if err != nil {
		httperr.FromError(c, httperr.ErrValidation(name, name+" must be a date (YYYY-MM-DD)"))
		return nil, false
	}
	return &d, true
}
