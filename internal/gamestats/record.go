package gamestats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/StavLobel/whats-the-chance-game/internal/cache"
	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/logger"
	"github.com/StavLobel/whats-the-chance-game/internal/store"
)

// RecordChallengeResult persists a finalized result and feeds it through the
// six aggregate updates. The result document and per-role number selections
// are only written when absent, so the event-driven path after Resolve never
// clobbers what the challenge service already stored. Aggregate failures are
// logged and counted but never returned; the completed challenge stands.
func (s *service) RecordChallengeResult(ctx context.Context, result *domain.ChallengeResult) error {
	log := logger.FromContext(ctx)

	if result == nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgResultRequired)
	}
	if result.ChallengeID == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgChallengeIDEmpty)
	}
	if result.FromUser == "" || result.ToUser == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgParticipantsEmpty)
	}

	if err := s.ensureResultStored(ctx, result); err != nil {
		return err
	}
	s.ensureSelectionsStored(ctx, result)

	s.runUpdate(ctx, AggregateUserStats, lockKey(store.CollectionUserGameStats, result.FromUser), func() error {
		return s.updateUserStats(ctx, result, result.FromUser, true)
	})
	s.runUpdate(ctx, AggregateUserStats, lockKey(store.CollectionUserGameStats, result.ToUser), func() error {
		return s.updateUserStats(ctx, result, result.ToUser, false)
	})
	s.runUpdate(ctx, AggregateGlobalStats, lockKey(store.CollectionGlobalGameStats, domain.GlobalStatsDocID), func() error {
		return s.updateGlobalStats(ctx, result)
	})
	for _, number := range []int{result.FromUserNumber, result.ToUserNumber} {
		s.runUpdate(ctx, AggregateNumberStats, lockKey(store.CollectionNumberStats, domain.NumberKey(number)), func() error {
			return s.updateNumberStats(ctx, result, number)
		})
	}
	s.runUpdate(ctx, AggregateRangeStats, lockKey(store.CollectionRangeStats, domain.RangeKey(result.RangeMin, result.RangeMax)), func() error {
		return s.updateRangeStats(ctx, result)
	})
	s.runUpdate(ctx, AggregatePlayerInteraction, lockKey(store.CollectionPlayerInteractions, result.FromUser), func() error {
		return s.updateInteraction(ctx, result, result.FromUser, true)
	})
	s.runUpdate(ctx, AggregatePlayerInteraction, lockKey(store.CollectionPlayerInteractions, result.ToUser), func() error {
		return s.updateInteraction(ctx, result, result.ToUser, false)
	})
	s.runUpdate(ctx, AggregatePlayerPair, lockKey(store.CollectionPlayerPairs, domain.PairKey(result.FromUser, result.ToUser)), func() error {
		return s.updatePlayerPair(ctx, result)
	})

	// Cached read models are stale now.
	s.cache.Delete(ctx, cache.KeyGlobalStats)
	s.cache.DeleteByPrefix(ctx, cache.KeyTopNumbersPrefix)

	log.Info(LogMsgResultRecorded, "challenge_id", result.ChallengeID, "result", result.Result)
	return nil
}

// ensureResultStored writes the result document unless it already exists
func (s *service) ensureResultStored(ctx context.Context, result *domain.ChallengeResult) error {
	_, err := s.store.Get(ctx, store.CollectionChallengeResults, result.ChallengeID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf(ErrMsgSaveResultFailed, err)
	}

	data, err := store.Encode(result)
	if err != nil {
		return fmt.Errorf(ErrMsgSaveResultFailed, err)
	}
	if _, err := s.store.Create(ctx, store.CollectionChallengeResults, data, result.ChallengeID); err != nil {
		return fmt.Errorf(ErrMsgSaveResultFailed, err)
	}
	return nil
}

// ensureSelectionsStored backfills the per-role selection documents when the
// numbers arrived wholesale via Resolve and were never submitted one by one.
// The selection timestamp is the completion time, the closest known moment.
func (s *service) ensureSelectionsStored(ctx context.Context, result *domain.ChallengeResult) {
	log := logger.FromContext(ctx)

	selections := []struct {
		docID  string
		userID string
		number int
	}{
		{result.ChallengeID + domain.SelectionSuffixFrom, result.FromUser, result.FromUserNumber},
		{result.ChallengeID + domain.SelectionSuffixTo, result.ToUser, result.ToUserNumber},
	}

	for _, sel := range selections {
		_, err := s.store.Get(ctx, store.CollectionNumberSelections, sel.docID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn(LogMsgAggregateUpdateFailed, "aggregate", "number_selection", "key", sel.docID, "error", err)
			continue
		}

		doc := domain.NumberSelection{
			UserID:      sel.userID,
			Number:      sel.number,
			SelectedAt:  result.CompletedAt,
			ChallengeID: result.ChallengeID,
			RangeMin:    result.RangeMin,
			RangeMax:    result.RangeMax,
		}
		data, err := store.Encode(doc)
		if err == nil {
			_, err = s.store.Create(ctx, store.CollectionNumberSelections, data, sel.docID)
		}
		if err != nil {
			log.Warn(LogMsgAggregateUpdateFailed, "aggregate", "number_selection", "key", sel.docID, "error", err)
		}
	}
}

// updateUserStats applies one result to one participant's running aggregate
func (s *service) updateUserStats(ctx context.Context, result *domain.ChallengeResult, userID string, isInitiator bool) error {
	now := time.Now().UTC()
	stats := domain.UserGameStats{
		UserID:    userID,
		CreatedAt: now,
	}
	if _, err := s.fetchOrDefault(ctx, store.CollectionUserGameStats, userID, &stats); err != nil {
		return err
	}

	stats.TotalChallenges++
	if isInitiator {
		stats.ChallengesCreated++
	} else {
		stats.ChallengesReceived++
	}

	if result.Result == domain.ResultMatch {
		if result.Winner == userID {
			stats.MatchesWon++
		} else {
			stats.MatchesLost++
		}
	}
	if decided := stats.MatchesWon + stats.MatchesLost; decided > 0 {
		stats.WinRate = float64(stats.MatchesWon) / float64(decided)
	}

	var responseTime *float64
	if isInitiator {
		responseTime = result.ResponseTimeFromUser
	} else {
		responseTime = result.ResponseTimeToUser
	}
	if responseTime != nil {
		x := *responseTime
		if stats.AverageResponseTime == nil {
			stats.AverageResponseTime = &x
		} else {
			n := float64(stats.TotalChallenges)
			avg := (*stats.AverageResponseTime*(n-1) + x) / n
			stats.AverageResponseTime = &avg
		}
		if stats.FastestResponseTime == nil || x < *stats.FastestResponseTime {
			fastest := x
			stats.FastestResponseTime = &fastest
		}
	}

	stats.LastActive = now
	stats.UpdatedAt = now

	return s.writeAggregate(ctx, AggregateUserStats, store.CollectionUserGameStats, userID, &stats)
}

// updateGlobalStats applies one result to the site-wide singleton. The
// today/week/month buckets compare the challenge's creation time against
// boundaries computed now, so a delayed aggregation run buckets by the time
// it runs at.
func (s *service) updateGlobalStats(ctx context.Context, result *domain.ChallengeResult) error {
	var stats domain.GlobalGameStats
	if _, err := s.fetchOrDefault(ctx, store.CollectionGlobalGameStats, domain.GlobalStatsDocID, &stats); err != nil {
		return err
	}

	stats.TotalChallenges++
	if result.Result == domain.ResultMatch {
		stats.TotalMatches++
	}
	stats.OverallSuccessRate = float64(stats.TotalMatches) / float64(stats.TotalChallenges)

	now := time.Now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := todayStart.AddDate(0, 0, -mondayOffset(todayStart))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	createdAt := result.CreatedAt.UTC()
	if !createdAt.Before(todayStart) {
		stats.ChallengesToday++
	}
	if !createdAt.Before(weekStart) {
		stats.ChallengesThisWeek++
	}
	if !createdAt.Before(monthStart) {
		stats.ChallengesThisMonth++
	}

	stats.LastUpdated = now

	return s.writeAggregate(ctx, AggregateGlobalStats, store.CollectionGlobalGameStats, domain.GlobalStatsDocID, &stats)
}

// mondayOffset returns days since the most recent Monday
func mondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// updateNumberStats applies one pick of one number. When both participants
// pick the same number this runs twice, so the counter reflects picks, not
// challenges.
func (s *service) updateNumberStats(ctx context.Context, result *domain.ChallengeResult, number int) error {
	stats := domain.NumberStats{Number: number}
	if _, err := s.fetchOrDefault(ctx, store.CollectionNumberStats, domain.NumberKey(number), &stats); err != nil {
		return err
	}

	stats.TimesSelected++
	if result.Result == domain.ResultMatch {
		stats.TimesMatched++
	}
	stats.SuccessRate = float64(stats.TimesMatched) / float64(stats.TimesSelected)
	completedAt := result.CompletedAt
	stats.LastSelected = &completedAt

	return s.writeAggregate(ctx, AggregateNumberStats, store.CollectionNumberStats, domain.NumberKey(number), &stats)
}

// updateRangeStats applies one result to the declared range's aggregate
func (s *service) updateRangeStats(ctx context.Context, result *domain.ChallengeResult) error {
	key := domain.RangeKey(result.RangeMin, result.RangeMax)
	stats := domain.RangeStats{
		RangeMin: result.RangeMin,
		RangeMax: result.RangeMax,
	}
	if _, err := s.fetchOrDefault(ctx, store.CollectionRangeStats, key, &stats); err != nil {
		return err
	}

	stats.TimesUsed++

	inRange := 0
	for _, n := range []int{result.FromUserNumber, result.ToUserNumber} {
		if n >= result.RangeMin && n <= result.RangeMax {
			inRange++
		}
	}
	fraction := float64(inRange) / 2
	if stats.TimesUsed == 1 {
		stats.AverageNumbersInRange = fraction
	} else {
		n := float64(stats.TimesUsed)
		stats.AverageNumbersInRange = (stats.AverageNumbersInRange*(n-1) + fraction) / n
	}

	return s.writeAggregate(ctx, AggregateRangeStats, store.CollectionRangeStats, key, &stats)
}

// updateInteraction applies one result to one participant's interaction count
func (s *service) updateInteraction(ctx context.Context, result *domain.ChallengeResult, userID string, sent bool) error {
	interaction := domain.PlayerInteraction{UserID: userID}
	if _, err := s.fetchOrDefault(ctx, store.CollectionPlayerInteractions, userID, &interaction); err != nil {
		return err
	}

	if sent {
		interaction.ChallengesSent++
	} else {
		interaction.ChallengesReceived++
	}
	interaction.TotalInteractions = interaction.ChallengesSent + interaction.ChallengesReceived
	interaction.LastInteraction = result.CompletedAt

	return s.writeAggregate(ctx, AggregatePlayerInteraction, store.CollectionPlayerInteractions, userID, &interaction)
}

// updatePlayerPair applies one result to the symmetric pair record
func (s *service) updatePlayerPair(ctx context.Context, result *domain.ChallengeResult) error {
	first, second := domain.SortedPair(result.FromUser, result.ToUser)
	key := domain.PairKey(result.FromUser, result.ToUser)

	pair := domain.PlayerPair{
		User1ID: first,
		User2ID: second,
	}
	if _, err := s.fetchOrDefault(ctx, store.CollectionPlayerPairs, key, &pair); err != nil {
		return err
	}

	pair.TotalChallenges++
	if result.FromUser == pair.User1ID {
		pair.User1Initiated++
	} else {
		pair.User2Initiated++
	}
	if result.Result == domain.ResultMatch {
		pair.TotalMatches++
	}
	pair.SuccessRate = float64(pair.TotalMatches) / float64(pair.TotalChallenges)
	pair.LastChallenge = result.CompletedAt

	return s.writeAggregate(ctx, AggregatePlayerPair, store.CollectionPlayerPairs, key, &pair)
}
