package challenge

import (
	"context"
	"errors"
	"fmt"

	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/event"
	"github.com/StavLobel/whats-the-chance-game/internal/identity"
	"github.com/StavLobel/whats-the-chance-game/internal/logger"
	"github.com/StavLobel/whats-the-chance-game/internal/notify"
	"github.com/StavLobel/whats-the-chance-game/internal/store"
)

// Service defines the interface for the challenge lifecycle
type Service interface {
	Create(ctx context.Context, fromUser, toUser, description string) (*domain.Challenge, error)
	Respond(ctx context.Context, challengeID, responderID string, accept bool, numberRange *domain.ChallengeRange) (*domain.Challenge, error)
	SubmitNumber(ctx context.Context, challengeID, userID string, number int) (*domain.Challenge, error)
	Resolve(ctx context.Context, challengeID string, numbers map[string]int, requesterID string) (*domain.ResolveOutcome, error)
	Get(ctx context.Context, challengeID, requesterID string) (*domain.Challenge, error)
	List(ctx context.Context, userID, statusFilter string, page, perPage int) (*domain.ChallengeList, error)
	Stats(ctx context.Context, userID string) (*domain.ChallengeStats, error)
}

type service struct {
	store    store.Store
	eventBus event.Bus
	notifier notify.Notifier
	names    *identity.Resolver
}

// NewService creates a new challenge service
func NewService(st store.Store, eventBus event.Bus, notifier notify.Notifier, names *identity.Resolver) Service {
	return &service{
		store:    st,
		eventBus: eventBus,
		notifier: notifier,
		names:    names,
	}
}

// getChallenge loads a challenge or reports domain.ErrChallengeNotFound
func (s *service) getChallenge(ctx context.Context, challengeID string) (*domain.Challenge, error) {
	data, err := s.store.Get(ctx, store.CollectionChallenges, challengeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrChallengeNotFound, challengeID)
		}
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetChallenge, err)
	}

	var ch domain.Challenge
	if err := store.Decode(data, &ch); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetChallenge, err)
	}
	ch.ID = challengeID
	return &ch, nil
}

// saveChallenge merges the challenge's current state into its document
func (s *service) saveChallenge(ctx context.Context, ch *domain.Challenge) error {
	data, err := store.Encode(ch)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToSaveChallenge, err)
	}
	if err := s.store.Update(ctx, store.CollectionChallenges, ch.ID, data); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToSaveChallenge, err)
	}
	return nil
}

// notifyUsers pushes a realtime message, fire and forget
func (s *service) notifyUsers(ctx context.Context, userIDs []string, msgType string, data map[string]any) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, userIDs, notify.Message{Type: msgType, Data: data})
}

// publishEvent puts a lifecycle event on the bus, logging instead of failing
func (s *service) publishEvent(ctx context.Context, evt event.Event) {
	log := logger.FromContext(ctx)
	if s.eventBus == nil {
		log.Warn(LogMsgEventNotPublished, "type", evt.Type, "reason", LogReasonEventBusNil)
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		log.Error(LogMsgEventPublishFailed, "type", evt.Type, "error", err)
	}
}

// challengeData is the notification payload shared by lifecycle messages
func challengeData(ch *domain.Challenge) map[string]any {
	return map[string]any{
		"challenge_id": ch.ID,
		"from_user":    ch.FromUser,
		"to_user":      ch.ToUser,
		"status":       string(ch.Status),
		"description":  ch.Description,
	}
}
