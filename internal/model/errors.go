package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")

	// Problem statement / lock errors
	ErrUnknownStatement = errors.New("unknown problem statement")
	ErrStatementFull    = errors.New("problem statement has no remaining slots")
	ErrInvalidSignature = errors.New("lock token signature is invalid")
	ErrLockExpired      = errors.New("lock token has expired")
	ErrMismatchedClaim  = errors.New("lock token does not match this statement and subject")

	// Team errors
	ErrTeamNotFound      = errors.New("team not found")
	ErrAlreadyRegistered = errors.New("user already leads a registered team")
	ErrInvalidTeamSize   = errors.New("team size is out of bounds")

	// Submission errors
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrInvalidDeckURL     = errors.New("deck URL must be a valid https URL")
)
