package gamestats

import (
	"context"
	"fmt"
	"sort"

	"github.com/StavLobel/whats-the-chance-game/internal/cache"
	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/logger"
	"github.com/StavLobel/whats-the-chance-game/internal/store"
)

// GetUserStats returns the running aggregate for one user
func (s *service) GetUserStats(ctx context.Context, userID string) (*domain.UserGameStats, error) {
	var stats domain.UserGameStats
	if err := s.getInto(ctx, store.CollectionUserGameStats, userID, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetGlobalStats returns the site-wide aggregate, served from the cache
// when possible
func (s *service) GetGlobalStats(ctx context.Context) (*domain.GlobalGameStats, error) {
	var stats domain.GlobalGameStats
	if s.cache.GetJSON(ctx, cache.KeyGlobalStats, &stats) {
		return &stats, nil
	}

	if err := s.getInto(ctx, store.CollectionGlobalGameStats, domain.GlobalStatsDocID, &stats); err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, cache.KeyGlobalStats, &stats)
	return &stats, nil
}

// GetNumberStats returns the aggregate for one number
func (s *service) GetNumberStats(ctx context.Context, number int) (*domain.NumberStats, error) {
	var stats domain.NumberStats
	if err := s.getInto(ctx, store.CollectionNumberStats, domain.NumberKey(number), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetRangeStats returns the aggregate for one declared range
func (s *service) GetRangeStats(ctx context.Context, rangeMin, rangeMax int) (*domain.RangeStats, error) {
	var stats domain.RangeStats
	if err := s.getInto(ctx, store.CollectionRangeStats, domain.RangeKey(rangeMin, rangeMax), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetTopNumbers returns the most used or most successful numbers
func (s *service) GetTopNumbers(ctx context.Context, limit int, sortBy string) ([]domain.NumberStats, error) {
	limit = clampLimit(limit, domain.DefaultTopLimit, domain.MaxTopLimit)
	if sortBy == "" {
		sortBy = domain.SortByUsage
	}
	if sortBy != domain.SortByUsage && sortBy != domain.SortBySuccessRate {
		return nil, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, ErrMsgUnknownSortBy, sortBy)
	}

	cacheKey := cache.TopNumbersKey(sortBy, limit)
	cached := []domain.NumberStats{}
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	numbers, err := decodeAll[domain.NumberStats](ctx, s.store, store.CollectionNumberStats, FieldTimesSelected)
	if err != nil {
		return nil, err
	}

	sort.Slice(numbers, func(i, j int) bool {
		if sortBy == domain.SortBySuccessRate {
			if numbers[i].SuccessRate != numbers[j].SuccessRate {
				return numbers[i].SuccessRate > numbers[j].SuccessRate
			}
		} else if numbers[i].TimesSelected != numbers[j].TimesSelected {
			return numbers[i].TimesSelected > numbers[j].TimesSelected
		}
		return numbers[i].Number < numbers[j].Number
	})

	numbers = truncate(numbers, limit)
	s.cache.SetJSON(ctx, cacheKey, numbers)
	return numbers, nil
}

// GetTopRanges returns the most used declared ranges
func (s *service) GetTopRanges(ctx context.Context, limit int) ([]domain.RangeStats, error) {
	limit = clampLimit(limit, domain.DefaultTopLimit, domain.MaxTopLimit)

	ranges, err := decodeAll[domain.RangeStats](ctx, s.store, store.CollectionRangeStats, FieldTimesUsed)
	if err != nil {
		return nil, err
	}

	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].TimesUsed != ranges[j].TimesUsed {
			return ranges[i].TimesUsed > ranges[j].TimesUsed
		}
		if ranges[i].RangeMin != ranges[j].RangeMin {
			return ranges[i].RangeMin < ranges[j].RangeMin
		}
		return ranges[i].RangeMax < ranges[j].RangeMax
	})

	return truncate(ranges, limit), nil
}

// GetChallengeHistory returns a user's completed challenges, newest first.
// The user may be either participant, so the history is the union of two
// queries.
func (s *service) GetChallengeHistory(ctx context.Context, userID string, limit int) ([]domain.ChallengeResult, error) {
	limit = clampLimit(limit, domain.DefaultHistoryLimit, domain.MaxHistoryLimit)

	results := []domain.ChallengeResult{}
	seen := make(map[string]bool)
	for _, field := range []string{FieldFromUser, FieldToUser} {
		docs, err := s.store.Query(ctx, store.CollectionChallengeResults, field, store.OpEqual, userID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgQueryHistoryFailed, err)
		}
		for _, doc := range docs {
			if seen[doc.ID] {
				continue
			}
			seen[doc.ID] = true
			var result domain.ChallengeResult
			if err := doc.Decode(&result); err != nil {
				logger.FromContext(ctx).Warn(LogMsgDocumentSkipped, "collection", store.CollectionChallengeResults, "id", doc.ID, "error", err)
				continue
			}
			results = append(results, result)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].CompletedAt.Equal(results[j].CompletedAt) {
			return results[i].ChallengeID < results[j].ChallengeID
		}
		return results[i].CompletedAt.After(results[j].CompletedAt)
	})

	return truncate(results, limit), nil
}

// clampLimit applies the default for unset limits and the ceiling for
// oversized ones
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

func truncate[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

// decodeAll queries a stats collection for documents with activity (counter
// field > 0) and decodes them, skipping broken documents.
func decodeAll[T any](ctx context.Context, st store.Store, collection, counterField string) ([]T, error) {
	docs, err := st.Query(ctx, collection, counterField, store.OpGreaterThan, 0)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryStatsFailed, err)
	}

	items := []T{}
	for _, doc := range docs {
		var item T
		if err := doc.Decode(&item); err != nil {
			logger.FromContext(ctx).Warn(LogMsgDocumentSkipped, "collection", collection, "id", doc.ID, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
