package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user id has no matching row.
	ErrUserNotFound = errors.New("user not found")
	// ErrProjectNotFound is returned when a project id has no matching row.
	ErrProjectNotFound = errors.New("project not found")
	// ErrCommentNotFound is returned when a comment id has no matching row.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrUsernameTaken is returned when the username already belongs to another user.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when the email already belongs to another user.
	ErrEmailTaken = errors.New("email already exists")
	// ErrDuplicateUser is returned when the store reports a uniqueness collision
	// that the pre-insert checks did not see.
	ErrDuplicateUser = errors.New("username or email already exists")
	// ErrInvalidCredentials is returned for any failed signin.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidOwner is returned when a project's user_id does not reference a user.
	ErrInvalidOwner = errors.New("user_id does not reference an existing user")
	// ErrInvalidReference is returned when a comment's user_id or project_id does not resolve.
	ErrInvalidReference = errors.New("referenced user or project does not exist")
	// ErrMissingToken is returned when the Authorization header is absent or not a Bearer credential.
	ErrMissingToken = errors.New("missing or malformed authorization header")
	// ErrInvalidToken is returned when a bearer token fails verification.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// ValidationError reports a caller input problem on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// MissingField builds the ValidationError for an absent required field.
func MissingField(field string) error {
	return &ValidationError{Field: field, Message: "missing required field: " + field}
}

// InvalidField builds a ValidationError for a present but unusable field.
func InvalidField(field, reason string) error {
	return &ValidationError{Field: field, Message: "invalid field " + field + ": " + reason}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Details    interface{}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Code:    e.Code,
		Details: e.Details,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognised is an
// internal fault and is reported with a generic message.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		httpErr := NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR")
		httpErr.Details = map[string]string{"field": validationErr.Field}
		return httpErr
	}

	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrProjectNotFound):
		return NewHTTPError(http.StatusNotFound, ErrProjectNotFound.Error(), "PROJECT_NOT_FOUND")
	case errors.Is(err, ErrCommentNotFound):
		return NewHTTPError(http.StatusNotFound, ErrCommentNotFound.Error(), "COMMENT_NOT_FOUND")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusBadRequest, ErrUsernameTaken.Error(), "DUPLICATE_USERNAME")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, ErrEmailTaken.Error(), "DUPLICATE_EMAIL")
	case errors.Is(err, ErrDuplicateUser):
		return NewHTTPError(http.StatusBadRequest, ErrDuplicateUser.Error(), "DUPLICATE_USER")
	case errors.Is(err, ErrInvalidOwner):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_OWNER")
	case errors.Is(err, ErrInvalidReference):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_REFERENCE")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrMissingToken):
		return NewHTTPError(http.StatusUnauthorized, ErrMissingToken.Error(), "MISSING_TOKEN")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Error(), "INVALID_TOKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
