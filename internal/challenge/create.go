package challenge

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/event"
	"github.com/StavLobel/whats-the-chance-game/internal/logger"
	"github.com/StavLobel/whats-the-chance-game/internal/notify"
	"github.com/StavLobel/whats-the-chance-game/internal/store"
)

// Create opens a new challenge from one user to another. The challenge
// starts out pending until the recipient responds.
func (s *service) Create(ctx context.Context, fromUser, toUser, description string) (*domain.Challenge, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCreateCalled, "from_user", fromUser, "to_user", toUser)

	fromUser = strings.TrimSpace(fromUser)
	toUser = strings.TrimSpace(toUser)
	description = strings.TrimSpace(description)

	if fromUser == "" || toUser == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrDetailEmptyUserID)
	}
	if fromUser == toUser {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrDetailSelfChallenge)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrDetailEmptyDescription)
	}
	if utf8.RuneCountInString(description) > domain.DescriptionMaxLength {
		return nil, fmt.Errorf("%w: %s (%d characters)", domain.ErrInvalidInput, ErrDetailDescriptionTooLong, utf8.RuneCountInString(description))
	}

	now := time.Now().UTC()
	ch := &domain.Challenge{
		ID:          uuid.NewString(),
		Description: description,
		FromUser:    fromUser,
		ToUser:      toUser,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	data, err := store.Encode(ch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCreateChallenge, err)
	}
	if _, err := s.store.Create(ctx, store.CollectionChallenges, data, ch.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCreateChallenge, err)
	}

	s.notifyUsers(ctx, []string{ch.ToUser}, notify.TypeChallengeCreated, challengeData(ch))
	s.publishEvent(ctx, event.NewChallengeCreatedEvent(*ch, fromUser))

	return ch, nil
}
