package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/founder-srm/foundathon/internal/model"
	"github.com/founder-srm/foundathon/internal/services/auth"
	"github.com/founder-srm/foundathon/internal/services/team"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeUnknownStatement    = "UNKNOWN_STATEMENT"
	CodeStatementFull       = "STATEMENT_FULL"
	CodeInvalidSignature    = "INVALID_SIGNATURE"
	CodeLockExpired         = "LOCK_EXPIRED"
	CodeMismatchedClaim     = "MISMATCHED_CLAIM"
	CodeAlreadyRegistered   = "ALREADY_REGISTERED"
	CodeInvalidTeamSize     = "INVALID_TEAM_SIZE"
	CodeTeamNotFound        = "TEAM_NOT_FOUND"
	CodeSubmissionNotFound  = "SUBMISSION_NOT_FOUND"
	CodeInvalidDeckURL      = "INVALID_DECK_URL"
	CodeEmailExists         = "EMAIL_EXISTS"
	CodeWeakPassword        = "WEAK_PASSWORD"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Classify maps an error to its HTTP status and APIError without writing
// anything. Handlers that need to embed the error in a larger response
// body use this instead of WriteError.
func Classify(err error) (int, APIError) {
	he := toHTTPError(err)
	return he.status, he.apiError
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUnknownStatement):
		return &httpError{http.StatusNotFound, APIError{CodeUnknownStatement, "Unknown problem statement"}}
	case errors.Is(err, model.ErrStatementFull):
		return &httpError{http.StatusConflict, APIError{CodeStatementFull, "Problem statement has no slots remaining"}}
	case errors.Is(err, model.ErrInvalidSignature):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidSignature, "Lock token is missing or malformed"}}
	case errors.Is(err, model.ErrLockExpired):
		return &httpError{http.StatusConflict, APIError{CodeLockExpired, "Lock token has expired"}}
	case errors.Is(err, model.ErrMismatchedClaim):
		return &httpError{http.StatusForbidden, APIError{CodeMismatchedClaim, "Lock token was issued for a different statement or user"}}
	case errors.Is(err, model.ErrAlreadyRegistered):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyRegistered, "You have already registered a team"}}
	case errors.Is(err, model.ErrInvalidTeamSize):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTeamSize, "Teams must have between 2 and 4 members"}}
	case errors.Is(err, model.ErrTeamNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTeamNotFound, "Team not found"}}
	case errors.Is(err, model.ErrSubmissionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSubmissionNotFound, "No submission found"}}
	case errors.Is(err, model.ErrInvalidDeckURL):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDeckURL, "Deck URL must be a valid https link"}}
	case errors.Is(err, model.ErrEmailExists):
		return &httpError{http.StatusConflict, APIError{CodeEmailExists, "An account with this email already exists"}}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUnauthorized, "User not found"}}
	case errors.Is(err, team.ErrInvalidRegistration):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid email or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrWeakPassword):
		return &httpError{http.StatusBadRequest, APIError{CodeWeakPassword, "Password must be at least 8 characters"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, message}}
}

// NewRateLimitedError creates a rate-limited error
func NewRateLimitedError() error {
	return &httpError{http.StatusTooManyRequests, APIError{CodeRateLimited, "Too many requests, slow down"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
