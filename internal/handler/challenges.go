package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/StavLobel/whats-the-chance-game/internal/challenge"
	"github.com/StavLobel/whats-the-chance-game/internal/domain"
)

// ChallengeHandler exposes the challenge lifecycle over HTTP
type ChallengeHandler struct {
	service challenge.Service
}

// NewChallengeHandler creates a new challenge handler
func NewChallengeHandler(service challenge.Service) *ChallengeHandler {
	return &ChallengeHandler{service: service}
}

// CreateChallengeRequest represents a request to create a challenge
type CreateChallengeRequest struct {
	FromUser    string `json:"from_user" validate:"required,max=128,excludesall=\x00\n\r\t"`
	ToUser      string `json:"to_user" validate:"required,max=128,nefield=FromUser,excludesall=\x00\n\r\t"`
	Description string `json:"description" validate:"required,max=500"`
}

// RangeRequest carries the declared number range on an accept
type RangeRequest struct {
	Min int `json:"min" validate:"min=1,max=100"`
	Max int `json:"max" validate:"min=1,max=100,gtfield=Min"`
}

// RespondChallengeRequest represents the recipient's accept or reject
type RespondChallengeRequest struct {
	Accepted *bool         `json:"accepted" validate:"required"`
	Range    *RangeRequest `json:"range,omitempty"`
}

// SubmitNumberRequest represents a participant's number pick
type SubmitNumberRequest struct {
	Number int `json:"number" validate:"min=1,max=100"`
}

// ResolveChallengeRequest carries both numbers for direct resolution
type ResolveChallengeRequest struct {
	Numbers map[string]int `json:"numbers" validate:"required,dive,min=1,max=100"`
}

// HandleCreateChallenge handles POST requests to create a challenge
// @Summary Create challenge
// @Description Create a new challenge from the authenticated user to another user
// @Tags challenges
// @Accept json
// @Produce json
// @Param request body CreateChallengeRequest true "Challenge details"
// @Success 201 {object} domain.Challenge
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /challenges [post]
func (h *ChallengeHandler) HandleCreateChallenge(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req CreateChallengeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create challenge"); err != nil {
		return
	}

	if req.FromUser != caller {
		respondError(w, http.StatusForbidden, ErrMsgCreateForSelfOnly)
		return
	}

	ch, err := h.service.Create(r.Context(), req.FromUser, req.ToUser, req.Description)
	if err != nil {
		respondServiceError(w, r, "Create challenge", err)
		return
	}

	respondJSON(w, http.StatusCreated, ch)
}

// HandleGetChallenge handles GET requests for a single challenge
// @Summary Get challenge
// @Description Get a challenge by ID. Participants only.
// @Tags challenges
// @Produce json
// @Param id path string true "Challenge ID"
// @Success 200 {object} domain.Challenge
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /challenges/{id} [get]
func (h *ChallengeHandler) HandleGetChallenge(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	ch, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), caller)
	if err != nil {
		respondServiceError(w, r, "Get challenge", err)
		return
	}

	respondJSON(w, http.StatusOK, ch)
}

// HandleRespondChallenge handles the recipient accepting or rejecting
// @Summary Respond to challenge
// @Description Accept (with a number range) or reject a pending challenge. Recipient only.
// @Tags challenges
// @Accept json
// @Produce json
// @Param id path string true "Challenge ID"
// @Param request body RespondChallengeRequest true "Response details"
// @Success 200 {object} domain.Challenge
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /challenges/{id}/respond [post]
func (h *ChallengeHandler) HandleRespondChallenge(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req RespondChallengeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Respond to challenge"); err != nil {
		return
	}

	var numberRange *domain.ChallengeRange
	if req.Range != nil {
		numberRange = &domain.ChallengeRange{Min: req.Range.Min, Max: req.Range.Max}
	}

	ch, err := h.service.Respond(r.Context(), chi.URLParam(r, "id"), caller, *req.Accepted, numberRange)
	if err != nil {
		respondServiceError(w, r, "Respond to challenge", err)
		return
	}

	respondJSON(w, http.StatusOK, ch)
}

// HandleSubmitNumber handles a participant submitting their pick
// @Summary Submit number
// @Description Submit the caller's number for an accepted challenge. The second submission resolves it.
// @Tags challenges
// @Accept json
// @Produce json
// @Param id path string true "Challenge ID"
// @Param request body SubmitNumberRequest true "Number pick"
// @Success 200 {object} domain.Challenge
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /challenges/{id}/number [post]
func (h *ChallengeHandler) HandleSubmitNumber(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req SubmitNumberRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Submit number"); err != nil {
		return
	}

	ch, err := h.service.SubmitNumber(r.Context(), chi.URLParam(r, "id"), caller, req.Number)
	if err != nil {
		respondServiceError(w, r, "Submit number", err)
		return
	}

	respondJSON(w, http.StatusOK, ch)
}

// HandleResolveChallenge handles direct resolution with both numbers
// @Summary Resolve challenge
// @Description Resolve a challenge by supplying both participants' numbers at once
// @Tags challenges
// @Accept json
// @Produce json
// @Param id path string true "Challenge ID"
// @Param request body ResolveChallengeRequest true "Both numbers, keyed by user ID"
// @Success 200 {object} domain.ResolveOutcome
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /challenges/{id}/resolve [post]
func (h *ChallengeHandler) HandleResolveChallenge(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req ResolveChallengeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Resolve challenge"); err != nil {
		return
	}

	if len(req.Numbers) != 2 {
		respondError(w, http.StatusBadRequest, ErrMsgNumbersBothUsers)
		return
	}

	outcome, err := h.service.Resolve(r.Context(), chi.URLParam(r, "id"), req.Numbers, caller)
	if err != nil {
		// Numbers passed struct validation, so remaining input errors mean
		// the map keys are not the two participants.
		if errors.Is(err, domain.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, ErrMsgNumbersBothParticipants)
			return
		}
		respondServiceError(w, r, "Resolve challenge", err)
		return
	}

	respondJSON(w, http.StatusOK, outcome)
}

// HandleListChallenges handles GET requests for a user's challenges
// @Summary List challenges
// @Description List the authenticated user's challenges, newest first
// @Tags challenges
// @Produce json
// @Param userID path string true "User ID"
// @Param status query string false "Filter by status (pending, accepted, rejected, active, completed)"
// @Param page query int false "Page number (default 1)"
// @Param per_page query int false "Page size (default 10, max 100)"
// @Success 200 {object} domain.ChallengeList
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /challenges/user/{userID} [get]
func (h *ChallengeHandler) HandleListChallenges(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if _, ok := requireSelf(w, r, userID, ErrMsgOtherUsersChallenges); !ok {
		return
	}

	page, perPage, ok := GetPageParams(r, w)
	if !ok {
		return
	}
	status := GetOptionalQueryParam(r, "status", "")

	list, err := h.service.List(r.Context(), userID, status, page, perPage)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidStatus)
			return
		}
		respondServiceError(w, r, "List challenges", err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}

// HandleChallengeStats handles GET requests for a user's challenge counters
// @Summary Challenge stats
// @Description Summarize the challenges the user has created
// @Tags challenges
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} domain.ChallengeStats
// @Failure 403 {object} ErrorResponse
// @Router /challenges/stats/{userID} [get]
func (h *ChallengeHandler) HandleChallengeStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if _, ok := requireSelf(w, r, userID, ErrMsgOtherUsersStatsDenied); !ok {
		return
	}

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get challenge stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
