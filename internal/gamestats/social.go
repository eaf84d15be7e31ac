package gamestats

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/logger"
	"github.com/StavLobel/whats-the-chance-game/internal/store"
)

// GetMostChallengedPlayers returns the users with the most challenge
// exchanges, in either direction
func (s *service) GetMostChallengedPlayers(ctx context.Context, limit int) ([]domain.PlayerInteraction, error) {
	limit = clampLimit(limit, domain.DefaultTopLimit, domain.MaxTopLimit)

	players, err := decodeAll[domain.PlayerInteraction](ctx, s.store, store.CollectionPlayerInteractions, FieldTotalInteractions)
	if err != nil {
		return nil, err
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].TotalInteractions != players[j].TotalInteractions {
			return players[i].TotalInteractions > players[j].TotalInteractions
		}
		return players[i].UserID < players[j].UserID
	})

	return truncate(players, limit), nil
}

// GetMostActivePairs returns the pairs of users who challenge each other most
func (s *service) GetMostActivePairs(ctx context.Context, limit int) ([]domain.PlayerPair, error) {
	limit = clampLimit(limit, domain.DefaultTopLimit, domain.MaxTopLimit)

	pairs, err := decodeAll[domain.PlayerPair](ctx, s.store, store.CollectionPlayerPairs, FieldTotalChallenges)
	if err != nil {
		return nil, err
	}

	sortPairs(pairs)
	return truncate(pairs, limit), nil
}

// GetUserFriendsActivity returns the pair records involving one user, most
// active first
func (s *service) GetUserFriendsActivity(ctx context.Context, userID string, limit int) ([]domain.PlayerPair, error) {
	limit = clampLimit(limit, domain.DefaultTopLimit, domain.MaxTopLimit)

	pairs := []domain.PlayerPair{}
	seen := make(map[string]bool)
	for _, field := range []string{FieldUser1ID, FieldUser2ID} {
		docs, err := s.store.Query(ctx, store.CollectionPlayerPairs, field, store.OpEqual, userID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgQueryStatsFailed, err)
		}
		for _, doc := range docs {
			if seen[doc.ID] {
				continue
			}
			seen[doc.ID] = true
			var pair domain.PlayerPair
			if err := doc.Decode(&pair); err != nil {
				logger.FromContext(ctx).Warn(LogMsgDocumentSkipped, "collection", store.CollectionPlayerPairs, "id", doc.ID, "error", err)
				continue
			}
			pairs = append(pairs, pair)
		}
	}

	sortPairs(pairs)
	return truncate(pairs, limit), nil
}

// GetUserChallengeRecipients returns the users one player challenges most
// often. It scans the player's sent challenges rather than the pair
// aggregates, so it reflects every created challenge, not only completed
// ones.
func (s *service) GetUserChallengeRecipients(ctx context.Context, userID string, limit int) ([]domain.PlayerInteraction, error) {
	limit = clampLimit(limit, domain.DefaultTopLimit, domain.MaxTopLimit)

	docs, err := s.store.Query(ctx, store.CollectionChallenges, FieldFromUser, store.OpEqual, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryChallengesFailed, err)
	}

	counts := make(map[string]int)
	lastSent := make(map[string]time.Time)
	for _, doc := range docs {
		var ch domain.Challenge
		if err := doc.Decode(&ch); err != nil {
			logger.FromContext(ctx).Warn(LogMsgDocumentSkipped, "collection", store.CollectionChallenges, "id", doc.ID, "error", err)
			continue
		}
		counts[ch.ToUser]++
		if ch.CreatedAt.After(lastSent[ch.ToUser]) {
			lastSent[ch.ToUser] = ch.CreatedAt
		}
	}

	recipients := make([]domain.PlayerInteraction, 0, len(counts))
	for recipient, count := range counts {
		recipients = append(recipients, domain.PlayerInteraction{
			UserID:             recipient,
			ChallengesReceived: count,
			TotalInteractions:  count,
			LastInteraction:    lastSent[recipient],
		})
	}

	sort.Slice(recipients, func(i, j int) bool {
		if recipients[i].TotalInteractions != recipients[j].TotalInteractions {
			return recipients[i].TotalInteractions > recipients[j].TotalInteractions
		}
		return recipients[i].UserID < recipients[j].UserID
	})

	return truncate(recipients, limit), nil
}

// GetAnalyticsSummary combines the global aggregate with the top-5
// leaderboards into one dashboard payload. A missing global aggregate is
// reported as nil rather than an error, matching an empty deployment.
func (s *service) GetAnalyticsSummary(ctx context.Context) (*domain.AnalyticsSummary, error) {
	global, err := s.GetGlobalStats(ctx)
	if err != nil && !errors.Is(err, domain.ErrStatsNotFound) {
		return nil, err
	}

	topNumbers, err := s.GetTopNumbers(ctx, SummaryTopLimit, domain.SortByUsage)
	if err != nil {
		return nil, err
	}
	topRanges, err := s.GetTopRanges(ctx, SummaryTopLimit)
	if err != nil {
		return nil, err
	}
	mostChallenged, err := s.GetMostChallengedPlayers(ctx, SummaryTopLimit)
	if err != nil {
		return nil, err
	}
	activePairs, err := s.GetMostActivePairs(ctx, SummaryTopLimit)
	if err != nil {
		return nil, err
	}

	return &domain.AnalyticsSummary{
		GlobalStats: global,
		TopNumbers:  topNumbers,
		TopRanges:   topRanges,
		SocialStats: domain.SocialStats{
			MostChallengedPlayers: mostChallenged,
			MostActivePairs:       activePairs,
		},
		Timestamp: time.Now().UTC(),
	}, nil
}

// sortPairs orders pair records by activity, ties broken by the pair key
func sortPairs(pairs []domain.PlayerPair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].TotalChallenges != pairs[j].TotalChallenges {
			return pairs[i].TotalChallenges > pairs[j].TotalChallenges
		}
		if pairs[i].User1ID != pairs[j].User1ID {
			return pairs[i].User1ID < pairs[j].User1ID
		}
		return pairs[i].User2ID < pairs[j].User2ID
	})
}
