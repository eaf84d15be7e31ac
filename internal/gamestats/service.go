// Package gamestats maintains the running statistics derived from completed
// challenges. One finalized result fans out into six independent aggregate
// updates; each is fetch-or-default, mutate, write-back under a per-document
// lock, and one failing never stops the others.
package gamestats

import (
	"context"
	"errors"
	"fmt"

	"github.com/StavLobel/whats-the-chance-game/internal/cache"
	"github.com/StavLobel/whats-the-chance-game/internal/concurrency"
	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/logger"
	"github.com/StavLobel/whats-the-chance-game/internal/metrics"
	"github.com/StavLobel/whats-the-chance-game/internal/store"
)

// Service defines the interface for statistics aggregation and reads
type Service interface {
	RecordChallengeResult(ctx context.Context, result *domain.ChallengeResult) error

	GetUserStats(ctx context.Context, userID string) (*domain.UserGameStats, error)
	GetGlobalStats(ctx context.Context) (*domain.GlobalGameStats, error)
	GetNumberStats(ctx context.Context, number int) (*domain.NumberStats, error)
	GetRangeStats(ctx context.Context, rangeMin, rangeMax int) (*domain.RangeStats, error)
	GetTopNumbers(ctx context.Context, limit int, sortBy string) ([]domain.NumberStats, error)
	GetTopRanges(ctx context.Context, limit int) ([]domain.RangeStats, error)
	GetChallengeHistory(ctx context.Context, userID string, limit int) ([]domain.ChallengeResult, error)
	GetMostChallengedPlayers(ctx context.Context, limit int) ([]domain.PlayerInteraction, error)
	GetMostActivePairs(ctx context.Context, limit int) ([]domain.PlayerPair, error)
	GetUserFriendsActivity(ctx context.Context, userID string, limit int) ([]domain.PlayerPair, error)
	GetUserChallengeRecipients(ctx context.Context, userID string, limit int) ([]domain.PlayerInteraction, error)
	GetAnalyticsSummary(ctx context.Context) (*domain.AnalyticsSummary, error)
}

type service struct {
	store store.Store
	locks *concurrency.LockManager
	cache *cache.Cache
}

// NewService creates a new game statistics service. The cache may be nil or
// disabled; reads then always go to the store.
func NewService(st store.Store, locks *concurrency.LockManager, c *cache.Cache) Service {
	return &service{
		store: st,
		locks: locks,
		cache: c,
	}
}

// lockKey names the per-aggregate mutex, "collection/docID"
func lockKey(collection, docID string) string {
	return collection + "/" + docID
}

// runUpdate executes one aggregate update under its lock. Failures are
// logged and counted, never propagated: the six updates are independent and
// the caller's state change already happened.
func (s *service) runUpdate(ctx context.Context, aggregate, key string, fn func() error) {
	err := s.locks.WithLock(key, fn)
	if err == nil {
		return
	}
	logger.FromContext(ctx).Error(LogMsgAggregateUpdateFailed,
		"aggregate", aggregate,
		"key", key,
		"error", err,
	)
	metrics.AggregateUpdateFailures.WithLabelValues(aggregate).Inc()
}

// fetchOrDefault loads an aggregate document into dest, leaving dest
// untouched when the document does not exist yet. Returns whether the
// document existed.
func (s *service) fetchOrDefault(ctx context.Context, collection, docID string, dest any) (bool, error) {
	data, err := s.store.Get(ctx, collection, docID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf(ErrMsgGetStatsFailed, err)
	}
	if err := store.Decode(data, dest); err != nil {
		return false, fmt.Errorf(ErrMsgDecodeAggregateFailed, collection, err)
	}
	return true, nil
}

// writeAggregate replaces the aggregate document with the mutated state
func (s *service) writeAggregate(ctx context.Context, aggregate, collection, docID string, doc any) error {
	data, err := store.Encode(doc)
	if err != nil {
		return fmt.Errorf(ErrMsgEncodeAggregateFailed, aggregate, err)
	}
	if _, err := s.store.Create(ctx, collection, data, docID); err != nil {
		return fmt.Errorf(ErrMsgWriteAggregateFailed, aggregate, err)
	}
	return nil
}

// getInto loads a statistics document into dest, mapping a missing document
// onto domain.ErrStatsNotFound for the read APIs.
func (s *service) getInto(ctx context.Context, collection, docID string, dest any) error {
	data, err := s.store.Get(ctx, collection, docID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: %s/%s", domain.ErrStatsNotFound, collection, docID)
		}
		return fmt.Errorf(ErrMsgGetStatsFailed, err)
	}
	if err := store.Decode(data, dest); err != nil {
		return fmt.Errorf(ErrMsgDecodeAggregateFailed, collection, err)
	}
	return nil
}
