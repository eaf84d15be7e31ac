package challenge

// ============================================================================
// Document Fields
// ============================================================================

// JSON field names used in store queries
const (
	FieldFromUser = "from_user"
	FieldToUser   = "to_user"
	FieldStatus   = "status"
)

// ============================================================================
// Log Messages
// ============================================================================

// Log operation identifiers
const (
	LogMsgCreateCalled       = "Create challenge called"
	LogMsgRespondCalled      = "Respond to challenge called"
	LogMsgSubmitNumberCalled = "Submit number called"
	LogMsgResolveCalled      = "Resolve challenge called"
)

// Warning/Info messages
const (
	LogMsgChallengeCompleted    = "Challenge completed"
	LogMsgEventNotPublished     = "Challenge event not published"
	LogMsgEventPublishFailed    = "Failed to publish challenge event"
	LogMsgSelectionLookupFailed = "Failed to load number selection, response time unavailable"
	LogMsgChallengeParseFailed  = "Failed to decode challenge document"
)

// Log reasons
const (
	LogReasonEventBusNil = "event bus is nil"
)

// ============================================================================
// Error Messages (local to the challenge service)
// ============================================================================

// Error context messages for wrapped errors
const (
	ErrContextFailedToGetChallenge    = "failed to get challenge"
	ErrContextFailedToCreateChallenge = "failed to create challenge"
	ErrContextFailedToSaveChallenge   = "failed to save challenge"
	ErrContextFailedToSaveSelection   = "failed to save number selection"
	ErrContextFailedToSaveResult      = "failed to save challenge result"
	ErrContextFailedToListChallenges  = "failed to list challenges"
)

// Validation error details wrapped onto domain.ErrInvalidInput
const (
	ErrDetailEmptyUserID         = "user id cannot be empty"
	ErrDetailSelfChallenge       = "cannot create a challenge for yourself"
	ErrDetailEmptyDescription    = "description cannot be empty"
	ErrDetailDescriptionTooLong  = "description exceeds maximum length"
	ErrDetailRangeRequired       = "range is required when accepting"
	ErrDetailNoDeclaredRange     = "challenge has no declared range"
	ErrDetailNumberTooSmall      = "number must be at least 1"
	ErrDetailNumbersCount        = "numbers must be provided for exactly 2 users"
	ErrDetailNumbersParticipants = "numbers must be provided for both challenge participants"
	ErrDetailUnknownStatus       = "unknown challenge status"
)
