package response

import (
	"github.com/gin-gonic/gin"
	"github.com/vivahgalaxy/pos-api/pkg/apperror"
)

// ErrorResponse is the error body returned by every endpoint
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// JSON writes a success response
func JSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// Error writes an error response. Application errors keep their status
// code and message, anything else becomes a 500 Server Error.
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	body := ErrorResponse{Message: appErr.Message}
	if appErr.Code >= 500 {
		body.Message = "Server Error"
		body.Error = err.Error()
	}
	c.JSON(appErr.Code, body)
}

// BadRequest writes a 400 with a message and the underlying detail
func BadRequest(c *gin.Context, message string, err error) {
	body := ErrorResponse{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	c.JSON(400, body)
}
