// Package errors writes the JSON error envelope shared by every endpoint.
package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rahafha1/project-manager-api/internal/constants"
)

// Error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeUnprocessable      = "UNPROCESSABLE"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError is the body of every non-2xx response.
type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

var defaultMessages = map[string]string{
	ErrCodeUnauthorized:       "Authentication required",
	ErrCodeInvalidCredentials: "Invalid username or password",
	ErrCodeForbidden:          "You do not have permission to perform this action",
	ErrCodeInvalidInput:       "Invalid request",
	ErrCodeNotFound:           "Resource not found",
	ErrCodeConflict:           "Resource conflict",
	ErrCodeUnprocessable:      "Request could not be processed",
	ErrCodeTooManyRequests:    "Too many requests",
	ErrCodeInternalError:      "Internal server error",
	ErrCodeServiceUnavailable: "Service temporarily unavailable",
}

// RespondWithError writes err, tags it with the request ID and stops the
// handler chain.
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	if err.Message == "" {
		err.Message = defaultMessages[err.Code]
	}
	if err.RequestID == "" {
		err.RequestID = c.GetString(constants.ContextKeyRequestID)
	}
	c.AbortWithStatusJSON(statusCode, err)
}

func respond(c *gin.Context, status int, code, message string) {
	RespondWithError(c, status, NewAPIError(code, message))
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// InvalidCredentials sends a 401 response for a failed login
func InvalidCredentials(c *gin.Context) {
	respond(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "")
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	respond(c, http.StatusForbidden, ErrCodeForbidden, message)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, ErrCodeNotFound, message)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, ErrCodeInvalidInput, message)
}

// BadRequestWithDetails sends a 400 response carrying per-field details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, &APIError{
		Code:    ErrCodeInvalidInput,
		Message: message,
		Details: details,
	})
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	respond(c, http.StatusConflict, ErrCodeConflict, message)
}

// Unprocessable sends a 422 response
func Unprocessable(c *gin.Context, message string) {
	respond(c, http.StatusUnprocessableEntity, ErrCodeUnprocessable, message)
}

// TooManyRequests sends a 429 response
func TooManyRequests(c *gin.Context, message string) {
	respond(c, http.StatusTooManyRequests, ErrCodeTooManyRequests, message)
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	respond(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	respond(c, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, message)
}
