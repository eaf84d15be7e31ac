package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/gamestats"
	"github.com/StavLobel/whats-the-chance-game/internal/logger"
)

// GameStatsHandler exposes the statistics read APIs and the direct
// challenge-result ingestion endpoint
type GameStatsHandler struct {
	service gamestats.Service
}

// NewGameStatsHandler creates a new game stats handler
func NewGameStatsHandler(service gamestats.Service) *GameStatsHandler {
	return &GameStatsHandler{service: service}
}

// ChallengeResultRequest represents a completed challenge submitted directly
type ChallengeResultRequest struct {
	ChallengeID          string    `json:"challenge_id" validate:"required,max=128,excludesall=\x00\n\r\t"`
	FromUser             string    `json:"from_user" validate:"required,max=128"`
	ToUser               string    `json:"to_user" validate:"required,max=128,nefield=FromUser"`
	Description          string    `json:"description" validate:"max=500"`
	RangeMin             int       `json:"range_min" validate:"min=1,max=100"`
	RangeMax             int       `json:"range_max" validate:"min=1,max=100,gtfield=RangeMin"`
	FromUserNumber       int       `json:"from_user_number" validate:"min=1,max=100"`
	ToUserNumber         int       `json:"to_user_number" validate:"min=1,max=100"`
	Result               string    `json:"result" validate:"required,matchresult"`
	Winner               string    `json:"winner,omitempty" validate:"omitempty,max=128"`
	CreatedAt            time.Time `json:"created_at,omitempty"`
	CompletedAt          time.Time `json:"completed_at,omitempty"`
	ResponseTimeFromUser *float64  `json:"response_time_from_user,omitempty"`
	ResponseTimeToUser   *float64  `json:"response_time_to_user,omitempty"`
}

// GameStatsResponse acknowledges a recorded challenge result
type GameStatsResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HandleCreateChallengeResult handles POST requests that record a completed challenge
// @Summary Record challenge result
// @Description Record a completed challenge result and update all statistics. Participants only.
// @Tags game-stats
// @Accept json
// @Produce json
// @Param request body ChallengeResultRequest true "Challenge result"
// @Success 200 {object} GameStatsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /game-stats/challenge-result [post]
func (h *GameStatsHandler) HandleCreateChallengeResult(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req ChallengeResultRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create challenge result"); err != nil {
		return
	}

	if caller != req.FromUser && caller != req.ToUser {
		respondError(w, http.StatusForbidden, ErrMsgCreateResultDenied)
		return
	}

	now := time.Now().UTC()
	result := domain.ChallengeResult{
		ChallengeID:          req.ChallengeID,
		FromUser:             req.FromUser,
		ToUser:               req.ToUser,
		Description:          req.Description,
		RangeMin:             req.RangeMin,
		RangeMax:             req.RangeMax,
		FromUserNumber:       req.FromUserNumber,
		ToUserNumber:         req.ToUserNumber,
		Result:               domain.MatchResult(req.Result),
		Winner:               req.Winner,
		CreatedAt:            req.CreatedAt,
		CompletedAt:          req.CompletedAt,
		ResponseTimeFromUser: req.ResponseTimeFromUser,
		ResponseTimeToUser:   req.ResponseTimeToUser,
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = now
	}
	if result.CompletedAt.IsZero() {
		result.CompletedAt = now
	}

	if err := h.service.RecordChallengeResult(r.Context(), &result); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondServiceError(w, r, "Create challenge result", err)
			return
		}
		logger.FromContext(r.Context()).Error("Create challenge result failed", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgCreateResultFailed)
		return
	}

	respondJSON(w, http.StatusOK, GameStatsResponse{
		Success:   true,
		Message:   MsgChallengeResultCreated,
		Timestamp: result.CompletedAt,
	})
}

// HandleGetUserStats handles GET requests for a user's aggregate statistics
// @Summary Get user game stats
// @Description Get aggregate game statistics for a user. Self only.
// @Tags game-stats
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} domain.UserGameStats
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /game-stats/user/{userID} [get]
func (h *GameStatsHandler) HandleGetUserStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if _, ok := requireSelf(w, r, userID, ErrMsgViewOtherStats); !ok {
		return
	}

	stats, err := h.service.GetUserStats(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrStatsNotFound) {
			respondError(w, http.StatusNotFound, ErrMsgUserStatsNotFound)
			return
		}
		respondServiceError(w, r, "Get user stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// HandleGetGlobalStats handles GET requests for the site-wide statistics
// @Summary Get global game stats
// @Description Get site-wide aggregate game statistics
// @Tags game-stats
// @Produce json
// @Success 200 {object} domain.GlobalGameStats
// @Failure 404 {object} ErrorResponse
// @Router /game-stats/global [get]
func (h *GameStatsHandler) HandleGetGlobalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetGlobalStats(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrStatsNotFound) {
			respondError(w, http.StatusNotFound, ErrMsgGlobalStatsNotFound)
			return
		}
		respondServiceError(w, r, "Get global stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// HandleGetNumberStats handles GET requests for a single number's statistics
// @Summary Get number stats
// @Description Get selection statistics for one number
// @Tags game-stats
// @Produce json
// @Param number path int true "Number (1-100)"
// @Success 200 {object} domain.NumberStats
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /game-stats/numbers/{number} [get]
func (h *GameStatsHandler) HandleGetNumberStats(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || number < domain.RangeLowerBound || number > domain.RangeUpperBound {
		respondError(w, http.StatusBadRequest, ErrMsgNumberBounds)
		return
	}

	stats, err := h.service.GetNumberStats(r.Context(), number)
	if err != nil {
		if errors.Is(err, domain.ErrStatsNotFound) {
			respondError(w, http.StatusNotFound, ErrMsgNumberStatsNotFound)
			return
		}
		respondServiceError(w, r, "Get number stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// HandleGetRangeStats handles GET requests for a declared range's statistics
// @Summary Get range stats
// @Description Get usage statistics for one declared number range
// @Tags game-stats
// @Produce json
// @Param rangeMin path int true "Range minimum (1-100)"
// @Param rangeMax path int true "Range maximum (1-100)"
// @Success 200 {object} domain.RangeStats
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /game-stats/ranges/{rangeMin}/{rangeMax} [get]
func (h *GameStatsHandler) HandleGetRangeStats(w http.ResponseWriter, r *http.Request) {
	rangeMin, errMin := strconv.Atoi(chi.URLParam(r, "rangeMin"))
	rangeMax, errMax := strconv.Atoi(chi.URLParam(r, "rangeMax"))
	if errMin != nil || errMax != nil ||
		rangeMin < domain.RangeLowerBound || rangeMin > domain.RangeUpperBound ||
		rangeMax < domain.RangeLowerBound || rangeMax > domain.RangeUpperBound {
		respondError(w, http.StatusBadRequest, ErrMsgRangeBounds)
		return
	}
	if rangeMin >= rangeMax {
		respondError(w, http.StatusBadRequest, ErrMsgRangeMinMax)
		return
	}

	stats, err := h.service.GetRangeStats(r.Context(), rangeMin, rangeMax)
	if err != nil {
		if errors.Is(err, domain.ErrStatsNotFound) {
			respondError(w, http.StatusNotFound, ErrMsgRangeStatsNotFound)
			return
		}
		respondServiceError(w, r, "Get range stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// HandleGetTopNumbers handles GET requests for the number leaderboard
// @Summary Top numbers
// @Description List numbers ranked by usage or success rate
// @Tags game-stats
// @Produce json
// @Param limit query int false "Max entries (default 10, max 100)"
// @Param sort_by query string false "Sort key: usage or success_rate (default usage)"
// @Success 200 {array} domain.NumberStats
// @Failure 400 {object} ErrorResponse
// @Router /game-stats/numbers/top [get]
func (h *GameStatsHandler) HandleGetTopNumbers(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetLimitParam(r, w, domain.DefaultTopLimit, domain.MaxTopLimit)
	if !ok {
		return
	}
	sortBy := GetOptionalQueryParam(r, "sort_by", domain.SortByUsage)

	numbers, err := h.service.GetTopNumbers(r.Context(), limit, sortBy)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidSortBy)
			return
		}
		respondServiceError(w, r, "Get top numbers", err)
		return
	}

	respondJSON(w, http.StatusOK, numbers)
}

// HandleGetTopRanges handles GET requests for the range leaderboard
// @Summary Top ranges
// @Description List declared ranges ranked by usage
// @Tags game-stats
// @Produce json
// @Param limit query int false "Max entries (default 10, max 100)"
// @Success 200 {array} domain.RangeStats
// @Failure 400 {object} ErrorResponse
// @Router /game-stats/ranges/top [get]
func (h *GameStatsHandler) HandleGetTopRanges(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetLimitParam(r, w, domain.DefaultTopLimit, domain.MaxTopLimit)
	if !ok {
		return
	}

	ranges, err := h.service.GetTopRanges(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, "Get top ranges", err)
		return
	}

	respondJSON(w, http.StatusOK, ranges)
}

// HandleGetChallengeHistory handles GET requests for a user's completed challenges
// @Summary Challenge history
// @Description List the user's completed challenges, newest first. Self only.
// @Tags game-stats
// @Produce json
// @Param userID path string true "User ID"
// @Param limit query int false "Max entries (default 50, max 200)"
// @Success 200 {array} domain.ChallengeResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /game-stats/user/{userID}/history [get]
func (h *GameStatsHandler) HandleGetChallengeHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if _, ok := requireSelf(w, r, userID, ErrMsgViewOtherHistory); !ok {
		return
	}

	limit, ok := GetLimitParam(r, w, domain.DefaultHistoryLimit, domain.MaxHistoryLimit)
	if !ok {
		return
	}

	history, err := h.service.GetChallengeHistory(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, "Get challenge history", err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// HandleGetMostChallenged handles GET requests for the interaction leaderboard
// @Summary Most challenged players
// @Description List players ranked by total challenge interactions
// @Tags game-stats
// @Produce json
// @Param limit query int false "Max entries (default 10, max 100)"
// @Success 200 {array} domain.PlayerInteraction
// @Failure 400 {object} ErrorResponse
// @Router /game-stats/social/most-challenged [get]
func (h *GameStatsHandler) HandleGetMostChallenged(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetLimitParam(r, w, domain.DefaultTopLimit, domain.MaxTopLimit)
	if !ok {
		return
	}

	players, err := h.service.GetMostChallengedPlayers(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, "Get most challenged players", err)
		return
	}

	respondJSON(w, http.StatusOK, players)
}

// HandleGetMostActivePairs handles GET requests for the pair leaderboard
// @Summary Most active pairs
// @Description List player pairs ranked by challenges exchanged
// @Tags game-stats
// @Produce json
// @Param limit query int false "Max entries (default 10, max 100)"
// @Success 200 {array} domain.PlayerPair
// @Failure 400 {object} ErrorResponse
// @Router /game-stats/social/most-active-pairs [get]
func (h *GameStatsHandler) HandleGetMostActivePairs(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetLimitParam(r, w, domain.DefaultTopLimit, domain.MaxTopLimit)
	if !ok {
		return
	}

	pairs, err := h.service.GetMostActivePairs(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, "Get most active pairs", err)
		return
	}

	respondJSON(w, http.StatusOK, pairs)
}

// HandleGetFriendsActivity handles GET requests for a user's pair activity
// @Summary Friends activity
// @Description List the user's most active challenge partners. Self only.
// @Tags game-stats
// @Produce json
// @Param userID path string true "User ID"
// @Param limit query int false "Max entries (default 10, max 100)"
// @Success 200 {array} domain.PlayerPair
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /game-stats/social/user/{userID}/friends-activity [get]
func (h *GameStatsHandler) HandleGetFriendsActivity(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if _, ok := requireSelf(w, r, userID, ErrMsgViewOtherFriends); !ok {
		return
	}

	limit, ok := GetLimitParam(r, w, domain.DefaultTopLimit, domain.MaxTopLimit)
	if !ok {
		return
	}

	activity, err := h.service.GetUserFriendsActivity(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, "Get friends activity", err)
		return
	}

	respondJSON(w, http.StatusOK, activity)
}

// HandleGetChallengeRecipients handles GET requests for a user's frequent recipients
// @Summary Challenge recipients
// @Description List who the user challenges most often. Self only.
// @Tags game-stats
// @Produce json
// @Param userID path string true "User ID"
// @Param limit query int false "Max entries (default 10, max 100)"
// @Success 200 {array} domain.PlayerInteraction
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /game-stats/social/user/{userID}/challenge-recipients [get]
func (h *GameStatsHandler) HandleGetChallengeRecipients(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if _, ok := requireSelf(w, r, userID, ErrMsgViewOtherRecipients); !ok {
		return
	}

	limit, ok := GetLimitParam(r, w, domain.DefaultTopLimit, domain.MaxTopLimit)
	if !ok {
		return
	}

	recipients, err := h.service.GetUserChallengeRecipients(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, "Get challenge recipients", err)
		return
	}

	respondJSON(w, http.StatusOK, recipients)
}

// HandleGetAnalyticsSummary handles GET requests for the combined dashboard payload
// @Summary Analytics summary
// @Description Get global stats plus the top numbers, ranges and social leaderboards
// @Tags game-stats
// @Produce json
// @Success 200 {object} domain.AnalyticsSummary
// @Failure 500 {object} ErrorResponse
// @Router /game-stats/analytics/summary [get]
func (h *GameStatsHandler) HandleGetAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetAnalyticsSummary(r.Context())
	if err != nil {
		respondServiceError(w, r, "Get analytics summary", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
