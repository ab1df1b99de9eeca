package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError renders err using its BusinessError kind. Anything else is an
// unexpected failure and is reported without details.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		c.JSON(be.Kind.HTTPStatus(), HTTPError{
			Code:    be.Code,
			Message: be.Message,
			Field:   be.Field,
		})
		return
	}
	Internal(c, "internal_error", "Unexpected error.")
}
