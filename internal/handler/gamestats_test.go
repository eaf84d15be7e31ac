package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StavLobel/whats-the-chance-game/internal/concurrency"
	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/gamestats"
	"github.com/StavLobel/whats-the-chance-game/internal/store"
)

func newGameStatsTestSetup(t *testing.T) (http.Handler, gamestats.Service, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	svc := gamestats.NewService(st, concurrency.NewLockManager(), nil)
	h := NewGameStatsHandler(svc)

	r := chi.NewRouter()
	r.Post("/game-stats/challenge-result", h.HandleCreateChallengeResult)
	r.Get("/game-stats/user/{userID}", h.HandleGetUserStats)
	r.Get("/game-stats/user/{userID}/history", h.HandleGetChallengeHistory)
	r.Get("/game-stats/global", h.HandleGetGlobalStats)
	r.Get("/game-stats/numbers/top", h.HandleGetTopNumbers)
	r.Get("/game-stats/numbers/{number}", h.HandleGetNumberStats)
	r.Get("/game-stats/ranges/top", h.HandleGetTopRanges)
	r.Get("/game-stats/ranges/{rangeMin}/{rangeMax}", h.HandleGetRangeStats)
	r.Get("/game-stats/social/most-challenged", h.HandleGetMostChallenged)
	r.Get("/game-stats/social/most-active-pairs", h.HandleGetMostActivePairs)
	r.Get("/game-stats/social/user/{userID}/friends-activity", h.HandleGetFriendsActivity)
	r.Get("/game-stats/social/user/{userID}/challenge-recipients", h.HandleGetChallengeRecipients)
	r.Get("/game-stats/analytics/summary", h.HandleGetAnalyticsSummary)
	return r, svc, st
}

// recordResult seeds a completed alice-vs-bob match through the real service
// so the read endpoints have aggregates to serve.
func recordResult(t *testing.T, svc gamestats.Service, challengeID string) *domain.ChallengeResult {
	t.Helper()
	from := 2.0
	to := 3.5
	result := &domain.ChallengeResult{
		ChallengeID:          challengeID,
		FromUser:             "alice",
		ToUser:               "bob",
		Description:          "sing in the elevator",
		RangeMin:             1,
		RangeMax:             10,
		FromUserNumber:       7,
		ToUserNumber:         7,
		Result:               domain.ResultMatch,
		Winner:               "alice",
		CreatedAt:            time.Now().UTC().Add(-time.Minute),
		CompletedAt:          time.Now().UTC(),
		ResponseTimeFromUser: &from,
		ResponseTimeToUser:   &to,
	}
	require.NoError(t, svc.RecordChallengeResult(context.Background(), result))
	return result
}

func validResultBody() ChallengeResultRequest {
	return ChallengeResultRequest{
		ChallengeID:    "ch-1",
		FromUser:       "alice",
		ToUser:         "bob",
		Description:    "sing in the elevator",
		RangeMin:       1,
		RangeMax:       10,
		FromUserNumber: 7,
		ToUserNumber:   7,
		Result:         "match",
		Winner:         "alice",
	}
}

func TestHandleCreateChallengeResult(t *testing.T) {
	strangerBody := validResultBody()

	invalidResult := validResultBody()
	invalidResult.Result = "draw"

	missingID := validResultBody()
	missingID.ChallengeID = ""

	tests := []struct {
		name           string
		caller         string
		reqBody        any
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success From Initiator",
			caller:         "alice",
			reqBody:        validResultBody(),
			expectedStatus: http.StatusOK,
			expectedBody:   MsgChallengeResultCreated,
		},
		{
			name:           "Success From Recipient",
			caller:         "bob",
			reqBody:        validResultBody(),
			expectedStatus: http.StatusOK,
			expectedBody:   `"success":true`,
		},
		{
			name:           "Not A Participant",
			caller:         "carol",
			reqBody:        strangerBody,
			expectedStatus: http.StatusForbidden,
			expectedBody:   ErrMsgCreateResultDenied,
		},
		{
			name:           "Invalid Result Value",
			caller:         "alice",
			reqBody:        invalidResult,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Must be match or no_match",
		},
		{
			name:           "Missing Challenge ID",
			caller:         "alice",
			reqBody:        missingID,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name:           "Invalid JSON",
			caller:         "alice",
			reqBody:        "not json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Unauthenticated",
			caller:         "",
			reqBody:        validResultBody(),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   ErrMsgNotAuthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, _ := newGameStatsTestSetup(t)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, authedRequest("POST", "/game-stats/challenge-result", tt.caller, tt.reqBody))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleCreateChallengeResult_UpdatesAggregates(t *testing.T) {
	router, svc, _ := newGameStatsTestSetup(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest("POST", "/game-stats/challenge-result", "alice", validResultBody()))
	require.Equal(t, http.StatusOK, rec.Code)

	stats, err := svc.GetUserStats(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalChallenges)
	assert.Equal(t, 1, stats.MatchesWon)

	global, err := svc.GetGlobalStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, global.TotalMatches)
}

func TestHandleGetUserStats(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		router, svc, _ := newGameStatsTestSetup(t)
		recordResult(t, svc, "ch-1")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/user/alice", "alice", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"user_id":"alice"`)
		assert.Contains(t, rec.Body.String(), `"total_challenges":1`)
	})

	t.Run("Not Found", func(t *testing.T) {
		router, _, _ := newGameStatsTestSetup(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/user/alice", "alice", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgUserStatsNotFound)
	})

	t.Run("Other User", func(t *testing.T) {
		router, _, _ := newGameStatsTestSetup(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/user/alice", "bob", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgViewOtherStats)
	})
}

func TestHandleGetGlobalStats(t *testing.T) {
	t.Run("Empty Deployment", func(t *testing.T) {
		router, _, _ := newGameStatsTestSetup(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/global", "alice", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgGlobalStatsNotFound)
	})

	t.Run("Populated", func(t *testing.T) {
		router, svc, _ := newGameStatsTestSetup(t)
		recordResult(t, svc, "ch-1")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/global", "alice", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total_challenges":1`)
		assert.Contains(t, rec.Body.String(), `"total_matches":1`)
	})
}

func TestHandleGetNumberStats(t *testing.T) {
	router, svc, _ := newGameStatsTestSetup(t)
	recordResult(t, svc, "ch-1")

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Found",
			target:         "/game-stats/numbers/7",
			expectedStatus: http.StatusOK,
			expectedBody:   `"times_selected":2`,
		},
		{
			name:           "Never Selected",
			target:         "/game-stats/numbers/3",
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgNumberStatsNotFound,
		},
		{
			name:           "Below Lower Bound",
			target:         "/game-stats/numbers/0",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgNumberBounds,
		},
		{
			name:           "Above Upper Bound",
			target:         "/game-stats/numbers/101",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgNumberBounds,
		},
		{
			name:           "Not A Number",
			target:         "/game-stats/numbers/seven",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgNumberBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest("GET", tt.target, "alice", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleGetRangeStats(t *testing.T) {
	router, svc, _ := newGameStatsTestSetup(t)
	recordResult(t, svc, "ch-1")

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Found",
			target:         "/game-stats/ranges/1/10",
			expectedStatus: http.StatusOK,
			expectedBody:   `"times_used":1`,
		},
		{
			name:           "Never Used",
			target:         "/game-stats/ranges/2/9",
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgRangeStatsNotFound,
		},
		{
			name:           "Below Bounds",
			target:         "/game-stats/ranges/0/10",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgRangeBounds,
		},
		{
			name:           "Inverted",
			target:         "/game-stats/ranges/10/5",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgRangeMinMax,
		},
		{
			name:           "Degenerate",
			target:         "/game-stats/ranges/5/5",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgRangeMinMax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest("GET", tt.target, "alice", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleGetTopNumbers(t *testing.T) {
	router, svc, _ := newGameStatsTestSetup(t)
	recordResult(t, svc, "ch-1")

	t.Run("Default Sort", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/numbers/top", "alice", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"number":7`)
	})

	t.Run("Sort By Success Rate", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/numbers/top?sort_by=success_rate", "alice", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"number":7`)
	})

	t.Run("Invalid Sort", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/numbers/top?sort_by=alphabetical", "alice", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgInvalidSortBy)
	})

	t.Run("Invalid Limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/numbers/top?limit=0", "alice", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgInvalidLimit)
	})

	t.Run("Limit Not A Number", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/numbers/top?limit=many", "alice", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgInvalidLimit)
	})
}

func TestHandleGetTopRanges(t *testing.T) {
	router, svc, _ := newGameStatsTestSetup(t)
	recordResult(t, svc, "ch-1")

	t.Run("Success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/ranges/top", "alice", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"range_min":1`)
		assert.Contains(t, rec.Body.String(), `"range_max":10`)
	})

	t.Run("Limit Above Maximum", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/ranges/top?limit=500", "alice", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgInvalidLimit)
	})
}

func TestHandleGetChallengeHistory(t *testing.T) {
	router, svc, _ := newGameStatsTestSetup(t)
	recordResult(t, svc, "ch-1")

	t.Run("Own History", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/user/alice/history", "alice", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"challenge_id":"ch-1"`)
	})

	t.Run("Other User", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/user/alice/history", "bob", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgViewOtherHistory)
	})

	t.Run("Limit Above Maximum", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/user/alice/history?limit=500", "alice", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgInvalidLimit)
	})
}

func TestHandleGetMostChallenged(t *testing.T) {
	router, svc, _ := newGameStatsTestSetup(t)
	recordResult(t, svc, "ch-1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest("GET", "/game-stats/social/most-challenged", "alice", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_interactions":1`)
}

func TestHandleGetMostActivePairs(t *testing.T) {
	router, svc, _ := newGameStatsTestSetup(t)
	recordResult(t, svc, "ch-1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest("GET", "/game-stats/social/most-active-pairs", "alice", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user1_id":"alice"`)
	assert.Contains(t, rec.Body.String(), `"user2_id":"bob"`)
}

func TestHandleGetFriendsActivity(t *testing.T) {
	router, svc, _ := newGameStatsTestSetup(t)
	recordResult(t, svc, "ch-1")

	t.Run("Own Activity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/social/user/alice/friends-activity", "alice", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"user1_id":"alice"`)
	})

	t.Run("Other User", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/social/user/alice/friends-activity", "bob", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgViewOtherFriends)
	})
}

func TestHandleGetChallengeRecipients(t *testing.T) {
	router, _, st := newGameStatsTestSetup(t)

	ch := domain.Challenge{
		ID:          "ch-sent",
		FromUser:    "alice",
		ToUser:      "bob",
		Description: "hold the door for everyone",
		Status:      domain.StatusPending,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	data, err := store.Encode(ch)
	require.NoError(t, err)
	_, err = st.Create(context.Background(), store.CollectionChallenges, data, ch.ID)
	require.NoError(t, err)

	t.Run("Own Recipients", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/social/user/alice/challenge-recipients", "alice", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"user_id":"bob"`)
		assert.Contains(t, rec.Body.String(), `"challenges_received":1`)
	})

	t.Run("Other User", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/social/user/alice/challenge-recipients", "carol", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgViewOtherRecipients)
	})
}

func TestHandleGetAnalyticsSummary(t *testing.T) {
	t.Run("Populated", func(t *testing.T) {
		router, svc, _ := newGameStatsTestSetup(t)
		recordResult(t, svc, "ch-1")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/analytics/summary", "alice", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"global_stats"`)
		assert.Contains(t, rec.Body.String(), `"number":7`)
	})

	t.Run("Empty Deployment", func(t *testing.T) {
		router, _, _ := newGameStatsTestSetup(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest("GET", "/game-stats/analytics/summary", "alice", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"global_stats":null`)
	})
}
