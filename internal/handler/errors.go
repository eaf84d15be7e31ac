package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgNotAuthenticated      = "Authentication required"
	ErrMsgInternalServerError   = "Internal server error"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidPagination = "Invalid pagination parameters"
	ErrMsgInvalidSortBy     = "Invalid sort_by parameter"
	ErrMsgInvalidStatus     = "Invalid status filter"

	// Challenge access error messages
	ErrMsgCreateForSelfOnly       = "You can only create challenges for yourself"
	ErrMsgChallengeAccessDenied   = "Access denied to this challenge"
	ErrMsgOnlyRecipientResponds   = "Only the challenge recipient can respond"
	ErrMsgOtherUsersChallenges    = "Access denied to other users' challenges"
	ErrMsgOtherUsersStatsDenied   = "Access denied to other users' statistics"
	ErrMsgChallengeNotFoundHTTP   = "Challenge not found"
	ErrMsgChallengeNotPendingHTTP = "Challenge is no longer pending"
	ErrMsgChallengeNotOpenHTTP    = "Challenge is not accepting numbers"
	ErrMsgChallengeNotResolvable  = "Challenge cannot be resolved in its current state"
	ErrMsgNumberOutsideRange      = "Number is outside the challenge range"
	ErrMsgNumbersBothUsers        = "Numbers must be provided for both users"
	ErrMsgNumbersBothParticipants = "Numbers must be provided for both challenge participants"

	// Statistics access error messages
	ErrMsgViewOtherStats      = "Not authorized to view other user's stats"
	ErrMsgViewOtherHistory    = "Not authorized to view other user's history"
	ErrMsgViewOtherFriends    = "Not authorized to view other user's friends activity"
	ErrMsgViewOtherRecipients = "Not authorized to view other user's challenge recipients"
	ErrMsgCreateResultDenied  = "Not authorized to create this challenge result"
	ErrMsgCreateResultFailed  = "Failed to create challenge result"

	// Statistics lookup error messages
	ErrMsgUserStatsNotFound   = "User statistics not found"
	ErrMsgGlobalStatsNotFound = "Global statistics not found"
	ErrMsgNumberStatsNotFound = "Number statistics not found"
	ErrMsgRangeStatsNotFound  = "Range statistics not found"

	// Fallback messages used by the generic error mapper
	ErrMsgStatsNotFoundHTTP = "Statistics not found"
	ErrMsgResourceNotFound  = "Resource not found"
	ErrMsgSelfOnlyHTTP      = "You can only perform this action for yourself"
	ErrMsgInvalidInputHTTP  = "Invalid request. Please check your inputs."

	// Statistics parameter error messages
	ErrMsgNumberBounds = "Number must be between 1 and 100"
	ErrMsgRangeBounds  = "Range must be between 1 and 100"
	ErrMsgRangeMinMax  = "Range minimum must be less than maximum"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgChallengeResultCreated = "Challenge result created successfully"
)
