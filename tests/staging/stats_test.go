//go:build staging

package staging

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

// TestGameStatsEndpoints records one result through the ingestion endpoint
// and walks the read side that result must show up on.
func TestGameStatsEndpoints(t *testing.T) {
	suffix := time.Now().UnixNano()
	from := fmt.Sprintf("staging-stats-a-%d", suffix)
	to := fmt.Sprintf("staging-stats-b-%d", suffix)
	challengeID := fmt.Sprintf("staging-ch-%d", suffix)

	record := map[string]interface{}{
		"challenge_id":     challengeID,
		"from_user":        from,
		"to_user":          to,
		"description":      "order pizza with a pirate accent",
		"range_min":        1,
		"range_max":        10,
		"from_user_number": 7,
		"to_user_number":   7,
		"result":           "match",
		"winner":           from,
	}
	resp, body := authedRequest(t, "POST", "/api/v1/game-stats/challenge-result", from, record)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Record: expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	t.Run("UserStats", func(t *testing.T) {
		resp, body := authedRequest(t, "GET", "/api/v1/game-stats/user/"+from, from, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}

		var stats struct {
			TotalChallenges int     `json:"total_challenges"`
			MatchesWon      int     `json:"matches_won"`
			WinRate         float64 `json:"win_rate"`
		}
		if err := json.Unmarshal(body, &stats); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if stats.TotalChallenges < 1 {
			t.Errorf("Expected at least 1 challenge, got %d", stats.TotalChallenges)
		}
		if stats.MatchesWon < 1 {
			t.Errorf("Expected at least 1 match won, got %d", stats.MatchesWon)
		}
	})

	t.Run("GlobalStats", func(t *testing.T) {
		resp, body := authedRequest(t, "GET", "/api/v1/game-stats/global", from, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}

		var stats struct {
			TotalChallenges int `json:"total_challenges"`
			TotalMatches    int `json:"total_matches"`
		}
		if err := json.Unmarshal(body, &stats); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if stats.TotalChallenges < 1 {
			t.Errorf("Expected at least 1 challenge globally, got %d", stats.TotalChallenges)
		}
	})

	t.Run("NumberStats", func(t *testing.T) {
		resp, body := authedRequest(t, "GET", "/api/v1/game-stats/numbers/7", from, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}

		var stats struct {
			TimesSelected int `json:"times_selected"`
		}
		if err := json.Unmarshal(body, &stats); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if stats.TimesSelected < 2 {
			t.Errorf("Expected times_selected >= 2, got %d", stats.TimesSelected)
		}
	})

	t.Run("TopNumbers", func(t *testing.T) {
		resp, body := authedRequest(t, "GET", "/api/v1/game-stats/numbers/top?limit=5", from, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}

		var numbers []map[string]interface{}
		if err := json.Unmarshal(body, &numbers); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(numbers) == 0 {
			t.Error("Expected at least one number entry")
		}
	})

	t.Run("RangeStats", func(t *testing.T) {
		resp, body := authedRequest(t, "GET", "/api/v1/game-stats/ranges/1/10", from, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}
	})

	t.Run("History", func(t *testing.T) {
		resp, body := authedRequest(t, "GET", "/api/v1/game-stats/user/"+from+"/history", from, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}

		var history []struct {
			ChallengeID string `json:"challenge_id"`
		}
		if err := json.Unmarshal(body, &history); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		found := false
		for _, entry := range history {
			if entry.ChallengeID == challengeID {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected %s in history", challengeID)
		}
	})

	t.Run("MostChallenged", func(t *testing.T) {
		resp, body := authedRequest(t, "GET", "/api/v1/game-stats/social/most-challenged?limit=10", from, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}
	})

	t.Run("AnalyticsSummary", func(t *testing.T) {
		resp, body := authedRequest(t, "GET", "/api/v1/game-stats/analytics/summary", from, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}

		var summary struct {
			GlobalStats map[string]interface{} `json:"global_stats"`
			TopNumbers  []interface{}          `json:"top_numbers"`
		}
		if err := json.Unmarshal(body, &summary); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if summary.GlobalStats == nil {
			t.Error("Expected global_stats in summary")
		}
	})
}

// TestRecordRejectsNonParticipant ensures the ingestion endpoint cannot be
// used to write results for other people's challenges.
func TestRecordRejectsNonParticipant(t *testing.T) {
	suffix := time.Now().UnixNano()
	outsider := fmt.Sprintf("staging-outsider-%d", suffix)

	record := map[string]interface{}{
		"challenge_id":     fmt.Sprintf("staging-foreign-%d", suffix),
		"from_user":        fmt.Sprintf("staging-x-%d", suffix),
		"to_user":          fmt.Sprintf("staging-y-%d", suffix),
		"description":      "speak only in questions for an hour",
		"range_min":        1,
		"range_max":        10,
		"from_user_number": 3,
		"to_user_number":   4,
		"result":           "no_match",
	}
	resp, _ := authedRequest(t, "POST", "/api/v1/game-stats/challenge-result", outsider, record)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", resp.StatusCode)
	}
}
