package challenge

import (
	"context"
	"fmt"
	"time"

	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/event"
	"github.com/StavLobel/whats-the-chance-game/internal/logger"
	"github.com/StavLobel/whats-the-chance-game/internal/notify"
	"github.com/StavLobel/whats-the-chance-game/internal/store"
)

// SubmitNumber records one participant's pick for an accepted or active
// challenge. The first submission moves the challenge to active; the second
// completes it through the resolution path. Resubmitting before the other
// side has picked overwrites the earlier pick.
func (s *service) SubmitNumber(ctx context.Context, challengeID, userID string, number int) (*domain.Challenge, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSubmitNumberCalled, "challenge_id", challengeID, "user_id", userID)

	ch, err := s.getChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if !ch.IsParticipant(userID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotParticipant, challengeID)
	}
	if ch.Status != domain.StatusAccepted && ch.Status != domain.StatusActive {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrChallengeNotOpen, ch.Status)
	}
	if ch.Range == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrChallengeNotOpen, ErrDetailNoDeclaredRange)
	}
	if number < domain.RangeLowerBound {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrDetailNumberTooSmall)
	}
	if !ch.Range.Contains(number) {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", domain.ErrNumberOutside, number, ch.Range.Min, ch.Range.Max)
	}

	now := time.Now().UTC()
	if err := s.saveSelection(ctx, ch, userID, number, now); err != nil {
		return nil, err
	}

	if ch.Numbers == nil {
		ch.Numbers = make(map[string]int, 2)
	}
	ch.Numbers[userID] = number
	ch.UpdatedAt = now

	// Second distinct pick is in: complete the challenge.
	if len(ch.Numbers) == 2 {
		if _, err := s.finalize(ctx, ch, now); err != nil {
			return nil, err
		}
		return ch, nil
	}

	ch.Status = domain.StatusActive
	if err := s.saveChallenge(ctx, ch); err != nil {
		return nil, err
	}

	data := challengeData(ch)
	data["submitted_by"] = userID
	s.notifyUsers(ctx, []string{ch.Opponent(userID)}, notify.TypeChallengeUpdated, data)
	s.publishEvent(ctx, event.NewChallengeUpdatedEvent(*ch, userID))

	return ch, nil
}

// saveSelection upserts the participant's pick under its per-role document id
func (s *service) saveSelection(ctx context.Context, ch *domain.Challenge, userID string, number int, now time.Time) error {
	sel := domain.NumberSelection{
		UserID:      userID,
		Number:      number,
		SelectedAt:  now,
		ChallengeID: ch.ID,
		RangeMin:    ch.Range.Min,
		RangeMax:    ch.Range.Max,
	}
	data, err := store.Encode(sel)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToSaveSelection, err)
	}
	if _, err := s.store.Create(ctx, store.CollectionNumberSelections, data, selectionDocID(ch, userID)); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToSaveSelection, err)
	}
	return nil
}

// selectionDocID keys the selection document by challenge and role
func selectionDocID(ch *domain.Challenge, userID string) string {
	if userID == ch.FromUser {
		return ch.ID + domain.SelectionSuffixFrom
	}
	return ch.ID + domain.SelectionSuffixTo
}
