package utils

import "github.com/gin-gonic/gin"

// Error codes used across the API surface.
const (
	CodeUnauthenticated = "Unauthenticated"
	CodeUnauthorized    = "Unauthorized"
	CodeNotFound        = "NotFound"
	CodeValidation      = "ValidationError"
	CodeInternal        = "InternalError"
)

// ErrorBody is the uniform error payload: {"error": {"code", "message"}}.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorBody under the error key.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Success writes the data as the 200 response body.
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(200, data)
}

// Error writes the uniform error payload with a real status code.
func Error(ctx *gin.Context, status int, code, message string) {
	ctx.JSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}
