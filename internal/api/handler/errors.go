package handler

import (
	"net/http"

	"github.com/founder-srm/foundathon/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodeUnauthorized       = apierr.CodeUnauthorized
	CodeForbidden          = apierr.CodeForbidden
	CodeUnknownStatement   = apierr.CodeUnknownStatement
	CodeStatementFull      = apierr.CodeStatementFull
	CodeInvalidSignature   = apierr.CodeInvalidSignature
	CodeLockExpired        = apierr.CodeLockExpired
	CodeMismatchedClaim    = apierr.CodeMismatchedClaim
	CodeAlreadyRegistered  = apierr.CodeAlreadyRegistered
	CodeInvalidTeamSize    = apierr.CodeInvalidTeamSize
	CodeTeamNotFound       = apierr.CodeTeamNotFound
	CodeSubmissionNotFound = apierr.CodeSubmissionNotFound
	CodeInvalidDeckURL     = apierr.CodeInvalidDeckURL
	CodeEmailExists        = apierr.CodeEmailExists
	CodeWeakPassword       = apierr.CodeWeakPassword
	CodeInvalidCredentials = apierr.CodeInvalidCredentials
	CodeRateLimited        = apierr.CodeRateLimited
	CodeInternalError      = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
