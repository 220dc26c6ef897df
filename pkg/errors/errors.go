// Package errors provides structured application errors with stable codes
// that map onto HTTP status codes and user-facing categories.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorCode identifies an error category.
type ErrorCode string

const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeTooManyRequests  ErrorCode = "TOO_MANY_REQUESTS"

	// Server errors (5xx)
	CodeInternal             ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Domain errors
	CodeRecipeNotFound     ErrorCode = "RECIPE_NOT_FOUND"
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeRatingNotFound     ErrorCode = "RATING_NOT_FOUND"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeWeakPassword       ErrorCode = "WEAK_PASSWORD"
	CodeNotRatingOwner     ErrorCode = "NOT_RATING_OWNER"
	CodeLoginRequired      ErrorCode = "LOGIN_REQUIRED"
	CodeToggleInFlight     ErrorCode = "TOGGLE_IN_FLIGHT"

	// AI gateway errors
	CodeAIResponseInvalid ErrorCode = "AI_RESPONSE_INVALID"
	CodeAIUnexpectedShape ErrorCode = "AI_UNEXPECTED_SHAPE"
	CodeAIRateLimited     ErrorCode = "AI_RATE_LIMITED"
	CodeAIAuthFailed      ErrorCode = "AI_AUTH_FAILED"
	CodeAIUnavailable     ErrorCode = "AI_UNAVAILABLE"
)

// AppError is an application error carrying a code, a user-facing message
// and an optional wrapped cause.
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode maps the error code to an HTTP status code.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed, CodeWeakPassword:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeInvalidCredentials, CodeLoginRequired:
		return http.StatusUnauthorized
	case CodeForbidden, CodeNotRatingOwner:
		return http.StatusForbidden
	case CodeNotFound, CodeRecipeNotFound, CodeUserNotFound, CodeRatingNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeEmailAlreadyExists, CodeToggleInFlight:
		return http.StatusConflict
	case CodeTooManyRequests, CodeAIRateLimited:
		return http.StatusTooManyRequests
	case CodeAIResponseInvalid, CodeAIUnexpectedShape:
		return http.StatusBadGateway
	case CodeAIUnavailable, CodeExternalServiceError:
		return http.StatusServiceUnavailable
	case CodeAIAuthFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata attaches a metadata key/value pair.
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause attaches a cause error.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// New creates a new application error.
func New(code ErrorCode, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewValidationError creates a validation error.
func NewValidationError(details string) *AppError {
	return New(CodeValidationFailed, "Validation failed", details)
}

// NewUnauthorizedError creates an unauthorized error.
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Authentication required"
	}
	return New(CodeUnauthorized, message, "")
}

// NewLoginRequiredError signals that the operation needs a signed-in user.
func NewLoginRequiredError(action string) *AppError {
	return New(CodeLoginRequired, "Login required",
		fmt.Sprintf("You must be signed in to %s", action))
}

// NewNotFoundError creates a generic not found error.
func NewNotFoundError(resource string) *AppError {
	message := "Resource not found"
	if resource != "" {
		message = fmt.Sprintf("%s not found", strings.Title(resource))
	}
	return New(CodeNotFound, message, "")
}

// NewInternalError creates an internal server error.
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return New(CodeInternal, message, "")
}

// NewDatabaseError creates a database error.
func NewDatabaseError(operation string, cause error) *AppError {
	return New(CodeDatabaseError, "Database operation failed",
		fmt.Sprintf("Failed to %s", operation)).WithCause(cause)
}

// NewExternalServiceError creates an external service error.
func NewExternalServiceError(service string, cause error) *AppError {
	return New(CodeExternalServiceError, "External service error",
		fmt.Sprintf("Failed to communicate with %s", service)).WithCause(cause)
}

// NewRecipeNotFoundError creates a recipe not found error.
func NewRecipeNotFoundError(recipeID int) *AppError {
	return New(CodeRecipeNotFound, "Recipe not found",
		fmt.Sprintf("Recipe %d does not exist", recipeID)).
		WithMetadata("recipe_id", recipeID)
}

// NewUserNotFoundError creates a user not found error.
func NewUserNotFoundError(userID string) *AppError {
	return New(CodeUserNotFound, "User not found",
		fmt.Sprintf("User %s does not exist", userID)).
		WithMetadata("user_id", userID)
}

// NewRatingNotFoundError creates a rating not found error.
func NewRatingNotFoundError(ratingID string) *AppError {
	return New(CodeRatingNotFound, "Rating not found",
		fmt.Sprintf("Rating %s does not exist", ratingID)).
		WithMetadata("rating_id", ratingID)
}

// NewEmailAlreadyExistsError creates an email conflict error.
func NewEmailAlreadyExistsError(email string) *AppError {
	return New(CodeEmailAlreadyExists, "Email already in use",
		"An account with this email address already exists").
		WithMetadata("email", email)
}

// NewWeakPasswordError creates a weak password error.
func NewWeakPasswordError(minLength int) *AppError {
	return New(CodeWeakPassword, "Password too weak",
		fmt.Sprintf("Password must be at least %d characters", minLength))
}

// NewInvalidCredentialsError creates an invalid credentials error.
func NewInvalidCredentialsError() *AppError {
	return New(CodeInvalidCredentials, "Invalid credentials",
		"The provided email or password is incorrect")
}

// NewNotRatingOwnerError signals a delete attempt by a non-owner.
func NewNotRatingOwnerError() *AppError {
	return New(CodeNotRatingOwner, "Not allowed",
		"Only the author of a rating may delete it")
}

// Wrap wraps err as an internal error unless it is already an AppError.
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}

// Is reports whether err carries the given error code.
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error.
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// ErrorResponse is the JSON error envelope returned by the API.
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails carries the error payload of an ErrorResponse.
type ErrorDetails struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// ToErrorResponse converts an AppError to an API error response.
func ToErrorResponse(err *AppError, requestID string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetails{
			Code:      err.Code,
			Message:   err.Message,
			Details:   err.Details,
			Metadata:  err.Metadata,
			RequestID: requestID,
			Timestamp: fmt.Sprintf("%d", time.Now().Unix()),
		},
	}
}
