package domain

import "time"

// ChallengeStatus represents where a challenge sits in its lifecycle
type ChallengeStatus string

const (
	StatusPending   ChallengeStatus = "pending"
	StatusAccepted  ChallengeStatus = "accepted"
	StatusRejected  ChallengeStatus = "rejected"
	StatusActive    ChallengeStatus = "active"
	StatusCompleted ChallengeStatus = "completed"
)

// MatchResult represents the outcome of comparing the two submitted numbers
type MatchResult string

const (
	ResultMatch   MatchResult = "match"
	ResultNoMatch MatchResult = "no_match"
)

// ChallengeRange bounds the numbers both participants may pick
type ChallengeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether n falls inside the range, bounds included.
func (r ChallengeRange) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// Challenge represents a single dare between two users
type Challenge struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	FromUser    string `json:"from_user"`
	ToUser      string `json:"to_user"`
	// Display names are filled in on read paths as best-effort enrichment;
	// they are never part of the persisted document.
	FromUserDisplayName string          `json:"from_user_display_name,omitempty"`
	ToUserDisplayName   string          `json:"to_user_display_name,omitempty"`
	Status              ChallengeStatus `json:"status"`
	Range               *ChallengeRange `json:"range,omitempty"`
	Numbers             map[string]int  `json:"numbers,omitempty"` // keyed by participant user ID
	Result              MatchResult     `json:"result,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	AcceptedAt          *time.Time      `json:"accepted_at,omitempty"`
	CompletedAt         *time.Time      `json:"completed_at,omitempty"`
}

// IsParticipant reports whether userID is either side of the challenge.
func (c *Challenge) IsParticipant(userID string) bool {
	return c.FromUser == userID || c.ToUser == userID
}

// Opponent returns the other participant relative to userID.
// Returns an empty string when userID is not a participant.
func (c *Challenge) Opponent(userID string) string {
	switch userID {
	case c.FromUser:
		return c.ToUser
	case c.ToUser:
		return c.FromUser
	}
	return ""
}

// ChallengeList is one page of a user's challenges
type ChallengeList struct {
	Challenges []Challenge `json:"challenges"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PerPage    int         `json:"per_page"`
}

// ChallengeStats summarizes the challenges a user has created
type ChallengeStats struct {
	TotalChallenges     int `json:"total_challenges"`
	PendingChallenges   int `json:"pending_challenges"`
	ActiveChallenges    int `json:"active_challenges"`
	CompletedChallenges int `json:"completed_challenges"`
	MatchesWon          int `json:"matches_won"`
	MatchesLost         int `json:"matches_lost"`
}

// ResolveOutcome is returned to the caller that completed a challenge
type ResolveOutcome struct {
	ChallengeID string         `json:"challenge_id"`
	Result      MatchResult    `json:"result"`
	Numbers     map[string]int `json:"numbers"`
	ResolvedAt  time.Time      `json:"resolved_at"`
}
