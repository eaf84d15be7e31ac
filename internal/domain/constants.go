package domain

// Challenge validation bounds
const (
	// DescriptionMaxLength caps the challenge description after trimming
	DescriptionMaxLength = 500

	// RangeLowerBound and RangeUpperBound bound the declared number range;
	// a valid range satisfies RangeLowerBound <= min < max <= RangeUpperBound.
	RangeLowerBound = 1
	RangeUpperBound = 100
)

// Pagination and listing limits
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100

	// Challenge history listings
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200

	// Top-N and social listings
	DefaultTopLimit = 10
	MaxTopLimit     = 100
)

// Sort keys accepted by the top-numbers query
const (
	SortByUsage       = "usage"
	SortBySuccessRate = "success_rate"
)
