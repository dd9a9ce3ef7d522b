package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the standardized error payload returned to clients.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError is a classified application error. The Code drives how handlers
// convert the error into a response (redirect, 404, form redisplay).
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error codes used across the application.
const (
	CodeNotFound       = "NOT_FOUND"
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthorization  = "AUTHORIZATION_ERROR"
	CodeInvalidSession = "INVALID_SESSION"
	CodeInternal       = "INTERNAL_ERROR"
)

// NewNotFoundError reports a missing entity lookup.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewValidationError reports rejected form input.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewAuthorizationError reports an ownership or permission violation.
func NewAuthorizationError(message string) *AppError {
	return &AppError{
		Code:    CodeAuthorization,
		Message: message,
	}
}

// NewInvalidSessionError reports a bad or missing session cookie. Callers
// treat the bearer as anonymous; this is never fatal.
func NewInvalidSessionError(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidSession,
		Message: message,
	}
}

// NewInternalError wraps an unexpected failure (store errors included).
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// RespondWithError writes a standardized JSON error response.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
