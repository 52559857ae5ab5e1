package response

import "github.com/gin-gonic/gin"

// Error codes map the service's error taxonomy to stable values automated
// callers can branch on.
const (
	CodeOK                  = 0
	CodeBadRequest          = 40000
	CodeInvalidTeacherID    = 40001
	CodeTeacherNotFound     = 40401
	CodeEmptyIndex          = 40402
	CodeIndexNotReady       = 40901
	CodeInternalServer      = 50000
	CodeUpstreamUnavailable = 50301
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}
