package challenge

import (
	"context"
	"fmt"
	"sort"

	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/logger"
	"github.com/StavLobel/whats-the-chance-game/internal/store"
)

// Get returns a single challenge. Only its participants may read it.
func (s *service) Get(ctx context.Context, challengeID, requesterID string) (*domain.Challenge, error) {
	ch, err := s.getChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if !ch.IsParticipant(requesterID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotParticipant, challengeID)
	}
	s.enrich(ctx, []*domain.Challenge{ch})
	return ch, nil
}

// List returns one page of the challenges the user participates in, newest
// first, optionally narrowed to a single status.
func (s *service) List(ctx context.Context, userID, statusFilter string, page, perPage int) (*domain.ChallengeList, error) {
	if page < domain.DefaultPage {
		page = domain.DefaultPage
	}
	if perPage < 1 {
		perPage = domain.DefaultPerPage
	}
	if perPage > domain.MaxPerPage {
		perPage = domain.MaxPerPage
	}
	if statusFilter != "" && !validStatus(statusFilter) {
		return nil, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, ErrDetailUnknownStatus, statusFilter)
	}

	challenges, err := s.challengesInvolving(ctx, userID, statusFilter)
	if err != nil {
		return nil, err
	}

	sort.Slice(challenges, func(i, j int) bool {
		if challenges[i].CreatedAt.Equal(challenges[j].CreatedAt) {
			return challenges[i].ID < challenges[j].ID
		}
		return challenges[i].CreatedAt.After(challenges[j].CreatedAt)
	})

	total := len(challenges)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}
	pageSlice := challenges[start:end]
	if pageSlice == nil {
		pageSlice = []domain.Challenge{}
	}

	enrichable := make([]*domain.Challenge, len(pageSlice))
	for i := range pageSlice {
		enrichable[i] = &pageSlice[i]
	}
	s.enrich(ctx, enrichable)

	return &domain.ChallengeList{
		Challenges: pageSlice,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

// Stats summarizes the challenges the user has created
func (s *service) Stats(ctx context.Context, userID string) (*domain.ChallengeStats, error) {
	docs, err := s.store.Query(ctx, store.CollectionChallenges, FieldFromUser, store.OpEqual, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListChallenges, err)
	}

	stats := &domain.ChallengeStats{}
	for _, doc := range docs {
		var ch domain.Challenge
		if err := doc.Decode(&ch); err != nil {
			logger.FromContext(ctx).Warn(LogMsgChallengeParseFailed, "challenge_id", doc.ID, "error", err)
			continue
		}
		stats.TotalChallenges++
		switch ch.Status {
		case domain.StatusPending:
			stats.PendingChallenges++
		case domain.StatusActive:
			stats.ActiveChallenges++
		case domain.StatusCompleted:
			stats.CompletedChallenges++
		}
		switch ch.Result {
		case domain.ResultMatch:
			stats.MatchesWon++
		case domain.ResultNoMatch:
			stats.MatchesLost++
		}
	}
	return stats, nil
}

// challengesInvolving collects challenges where the user is either side.
// Documents that fail to decode are skipped with a warning so one bad row
// cannot break the whole listing.
func (s *service) challengesInvolving(ctx context.Context, userID, statusFilter string) ([]domain.Challenge, error) {
	var out []domain.Challenge
	seen := make(map[string]bool)
	for _, field := range []string{FieldFromUser, FieldToUser} {
		filters := []store.Filter{{Field: field, Op: store.OpEqual, Value: userID}}
		if statusFilter != "" {
			filters = append(filters, store.Filter{Field: FieldStatus, Op: store.OpEqual, Value: statusFilter})
		}
		docs, err := s.store.QueryMulti(ctx, store.CollectionChallenges, filters)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToListChallenges, err)
		}
		for _, doc := range docs {
			if seen[doc.ID] {
				continue
			}
			seen[doc.ID] = true
			var ch domain.Challenge
			if err := doc.Decode(&ch); err != nil {
				logger.FromContext(ctx).Warn(LogMsgChallengeParseFailed, "challenge_id", doc.ID, "error", err)
				continue
			}
			ch.ID = doc.ID
			out = append(out, ch)
		}
	}
	return out, nil
}

// enrich fills participant display names on read paths, best effort
func (s *service) enrich(ctx context.Context, challenges []*domain.Challenge) {
	if s.names == nil || len(challenges) == 0 {
		return
	}
	uids := make([]string, 0, len(challenges)*2)
	for _, ch := range challenges {
		uids = append(uids, ch.FromUser, ch.ToUser)
	}
	names := s.names.DisplayNames(ctx, uids)
	for _, ch := range challenges {
		ch.FromUserDisplayName = names[ch.FromUser]
		ch.ToUserDisplayName = names[ch.ToUser]
	}
}

func validStatus(status string) bool {
	switch domain.ChallengeStatus(status) {
	case domain.StatusPending, domain.StatusAccepted, domain.StatusRejected, domain.StatusActive, domain.StatusCompleted:
		return true
	}
	return false
}
