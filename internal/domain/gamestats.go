package domain

import "time"

// GlobalStatsDocID is the fixed document ID of the global stats singleton
const GlobalStatsDocID = "main"

// ChallengeResult is the immutable record written when a challenge resolves.
// It is the sole input to the statistics pipeline.
type ChallengeResult struct {
	ChallengeID          string      `json:"challenge_id"`
	FromUser             string      `json:"from_user"`
	ToUser               string      `json:"to_user"`
	Description          string      `json:"description"`
	RangeMin             int         `json:"range_min"`
	RangeMax             int         `json:"range_max"`
	FromUserNumber       int         `json:"from_user_number"`
	ToUserNumber         int         `json:"to_user_number"`
	Result               MatchResult `json:"result"`
	Winner               string      `json:"winner,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	CompletedAt          time.Time   `json:"completed_at"`
	ResponseTimeFromUser *float64    `json:"response_time_from_user,omitempty"`
	ResponseTimeToUser   *float64    `json:"response_time_to_user,omitempty"`
}

// NumberSelection records one participant's pick for later analysis
type NumberSelection struct {
	UserID      string    `json:"user_id"`
	Number      int       `json:"number"`
	SelectedAt  time.Time `json:"selected_at"`
	ChallengeID string    `json:"challenge_id"`
	RangeMin    int       `json:"range_min"`
	RangeMax    int       `json:"range_max"`
}

// UserGameStats is the per-user running aggregate
type UserGameStats struct {
	UserID              string    `json:"user_id"`
	TotalChallenges     int       `json:"total_challenges"`
	ChallengesCreated   int       `json:"challenges_created"`
	ChallengesReceived  int       `json:"challenges_received"`
	MatchesWon          int       `json:"matches_won"`
	MatchesLost         int       `json:"matches_lost"`
	WinRate             float64   `json:"win_rate"`
	AverageResponseTime *float64  `json:"average_response_time,omitempty"`
	FastestResponseTime *float64  `json:"fastest_response_time,omitempty"`
	FavoriteNumber      *int      `json:"favorite_number,omitempty"`
	FavoriteRangeMin    *int      `json:"favorite_range_min,omitempty"`
	FavoriteRangeMax    *int      `json:"favorite_range_max,omitempty"`
	LastActive          time.Time `json:"last_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// GlobalGameStats is the site-wide running aggregate, stored as a single document
type GlobalGameStats struct {
	TotalChallenges     int              `json:"total_challenges"`
	TotalMatches        int              `json:"total_matches"`
	TotalParticipants   int              `json:"total_participants"`
	MostUsedNumbers     []int            `json:"most_used_numbers"`
	LeastUsedNumbers    []int            `json:"least_used_numbers"`
	MostUsedRanges      []ChallengeRange `json:"most_used_ranges"`
	OverallSuccessRate  float64          `json:"overall_success_rate"`
	AverageResponseTime float64          `json:"average_response_time"`
	ChallengesToday     int              `json:"challenges_today"`
	ChallengesThisWeek  int              `json:"challenges_this_week"`
	ChallengesThisMonth int              `json:"challenges_this_month"`
	LastUpdated         time.Time        `json:"last_updated"`
}

// NumberStats tracks how often a specific number gets picked and how often it matched
type NumberStats struct {
	Number        int        `json:"number"`
	TimesSelected int        `json:"times_selected"`
	TimesMatched  int        `json:"times_matched"`
	SuccessRate   float64    `json:"success_rate"`
	LastSelected  *time.Time `json:"last_selected,omitempty"`
}

// RangeStats tracks usage of a specific declared range
type RangeStats struct {
	RangeMin              int     `json:"range_min"`
	RangeMax              int     `json:"range_max"`
	TimesUsed             int     `json:"times_used"`
	SuccessRate           float64 `json:"success_rate"`
	AverageNumbersInRange float64 `json:"average_numbers_in_range"`
}

// PlayerInteraction counts how often a user exchanges challenges, keyed by that user
type PlayerInteraction struct {
	UserID             string    `json:"user_id"`
	ChallengesSent     int       `json:"challenges_sent"`
	ChallengesReceived int       `json:"challenges_received"`
	TotalInteractions  int       `json:"total_interactions"`
	LastInteraction    time.Time `json:"last_interaction"`
}

// PlayerPair is the symmetric record of challenges between exactly two users.
// User1ID sorts before User2ID so (A,B) and (B,A) share one record.
type PlayerPair struct {
	User1ID         string    `json:"user1_id"`
	User2ID         string    `json:"user2_id"`
	TotalChallenges int       `json:"total_challenges"`
	User1Initiated  int       `json:"user1_initiated"`
	User2Initiated  int       `json:"user2_initiated"`
	TotalMatches    int       `json:"total_matches"`
	SuccessRate     float64   `json:"success_rate"`
	LastChallenge   time.Time `json:"last_challenge"`
}

// SocialStats groups the social leaderboards inside the analytics summary
type SocialStats struct {
	MostChallengedPlayers []PlayerInteraction `json:"most_challenged_players"`
	MostActivePairs       []PlayerPair        `json:"most_active_pairs"`
}

// AnalyticsSummary is the combined dashboard payload
type AnalyticsSummary struct {
	GlobalStats *GlobalGameStats `json:"global_stats"`
	TopNumbers  []NumberStats    `json:"top_numbers"`
	TopRanges   []RangeStats     `json:"top_ranges"`
	SocialStats SocialStats      `json:"social_stats"`
	Timestamp   time.Time        `json:"timestamp"`
}
