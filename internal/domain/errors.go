package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Challenge errors
	ErrMsgChallengeNotFound   = "challenge not found"
	ErrMsgChallengeNotPending = "challenge is no longer pending"
	ErrMsgChallengeNotOpen    = "challenge is not accepting numbers"
	ErrMsgInvalidState        = "invalid challenge state"

	// Access errors
	ErrMsgNotParticipant = "access denied to this challenge"
	ErrMsgNotRecipient   = "only the challenge recipient can respond"
	ErrMsgSelfOnly       = "you can only perform this action for yourself"

	// Statistics errors
	ErrMsgStatsNotFound = "statistics not found"

	// Validation errors (used for partial matches)
	ErrMsgInvalidRange  = "range" // Used in contains checks for range validation errors
	ErrMsgInvalidInput  = "invalid input"
	ErrMsgNumberOutside = "number is outside the challenge range"

	// Database/System errors
	ErrMsgNotFound      = "document not found"
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Challenge errors
	ErrChallengeNotFound   = errors.New(ErrMsgChallengeNotFound)
	ErrChallengeNotPending = errors.New(ErrMsgChallengeNotPending)
	ErrChallengeNotOpen    = errors.New(ErrMsgChallengeNotOpen)
	ErrInvalidState        = errors.New(ErrMsgInvalidState)

	// Access errors
	ErrNotParticipant = errors.New(ErrMsgNotParticipant)
	ErrNotRecipient   = errors.New(ErrMsgNotRecipient)
	ErrSelfOnly       = errors.New(ErrMsgSelfOnly)

	// Statistics errors
	ErrStatsNotFound = errors.New(ErrMsgStatsNotFound)

	// Storage errors
	ErrNotFound = errors.New(ErrMsgNotFound)

	// Validation errors
	ErrInvalidInput  = errors.New(ErrMsgInvalidInput)
	ErrNumberOutside = errors.New(ErrMsgNumberOutside)
)
