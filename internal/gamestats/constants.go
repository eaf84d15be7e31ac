package gamestats

// ============================================================================
// Aggregate Names
// ============================================================================

// Aggregate identifiers used for lock keys, failure metrics and logs
const (
	AggregateUserStats         = "user_stats"
	AggregateGlobalStats       = "global_stats"
	AggregateNumberStats       = "number_stats"
	AggregateRangeStats        = "range_stats"
	AggregatePlayerInteraction = "player_interaction"
	AggregatePlayerPair        = "player_pair"
)

// ============================================================================
// Document Fields
// ============================================================================

// JSON field names used in store queries
const (
	FieldFromUser          = "from_user"
	FieldToUser            = "to_user"
	FieldTimesSelected     = "times_selected"
	FieldTimesUsed         = "times_used"
	FieldTotalInteractions = "total_interactions"
	FieldTotalChallenges   = "total_challenges"
	FieldUser1ID           = "user1_id"
	FieldUser2ID           = "user2_id"
)

// ============================================================================
// Summary Limits
// ============================================================================

// SummaryTopLimit is the number of entries per leaderboard inside the
// analytics summary
const SummaryTopLimit = 5

// ============================================================================
// Error Messages
// ============================================================================

// Validation error messages
const (
	ErrMsgResultRequired    = "challenge result is required"
	ErrMsgChallengeIDEmpty  = "challenge id cannot be empty"
	ErrMsgParticipantsEmpty = "both participant ids are required"
	ErrMsgUnknownSortBy     = "unknown sort key"
)

// Store operation error messages
const (
	ErrMsgSaveResultFailed      = "failed to save challenge result: %w"
	ErrMsgSaveSelectionFailed   = "failed to save number selection: %w"
	ErrMsgGetStatsFailed        = "failed to get statistics: %w"
	ErrMsgQueryStatsFailed      = "failed to query statistics: %w"
	ErrMsgQueryHistoryFailed    = "failed to query challenge history: %w"
	ErrMsgQueryChallengesFailed = "failed to query challenges: %w"
	ErrMsgDecodeAggregateFailed = "failed to decode %s aggregate: %w"
	ErrMsgEncodeAggregateFailed = "failed to encode %s aggregate: %w"
	ErrMsgWriteAggregateFailed  = "failed to write %s aggregate: %w"
	ErrMsgDecodeEventPayload    = "failed to decode challenge completed payload: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

// Service operation log messages
const (
	LogMsgResultRecorded      = "Challenge result recorded"
	LogMsgAggregationEnqueued = "Aggregation job enqueued"
	LogMsgAggregationInline   = "Aggregation running inline, no worker pool configured"
)

// Error and warning log messages
const (
	LogMsgAggregateUpdateFailed = "Aggregate update failed"
	LogMsgDocumentSkipped       = "Skipping undecodable statistics document"
)
