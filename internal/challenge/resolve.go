package challenge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/event"
	"github.com/StavLobel/whats-the-chance-game/internal/logger"
	"github.com/StavLobel/whats-the-chance-game/internal/notify"
	"github.com/StavLobel/whats-the-chance-game/internal/store"
)

// Resolve completes a challenge with both participants' numbers supplied in
// one call. The numbers map must hold exactly the two participant user IDs.
// Completing an already completed or rejected challenge is refused so each
// challenge feeds the statistics pipeline once.
func (s *service) Resolve(ctx context.Context, challengeID string, numbers map[string]int, requesterID string) (*domain.ResolveOutcome, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgResolveCalled, "challenge_id", challengeID, "requester", requesterID)

	ch, err := s.getChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if !ch.IsParticipant(requesterID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotParticipant, challengeID)
	}
	if len(numbers) != 2 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrDetailNumbersCount)
	}
	fromNumber, fromOK := numbers[ch.FromUser]
	toNumber, toOK := numbers[ch.ToUser]
	if !fromOK || !toOK {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrDetailNumbersParticipants)
	}
	if fromNumber < domain.RangeLowerBound || toNumber < domain.RangeLowerBound {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrDetailNumberTooSmall)
	}
	if ch.Status != domain.StatusAccepted && ch.Status != domain.StatusActive {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrInvalidState, ch.Status)
	}

	ch.Numbers = numbers
	return s.finalize(ctx, ch, time.Now().UTC())
}

// finalize completes a challenge whose two numbers are in. It computes the
// outcome, persists the terminal state and the result snapshot, then fans
// out notifications and the completion event.
func (s *service) finalize(ctx context.Context, ch *domain.Challenge, now time.Time) (*domain.ResolveOutcome, error) {
	log := logger.FromContext(ctx)

	if ch.Numbers[ch.FromUser] == ch.Numbers[ch.ToUser] {
		ch.Result = domain.ResultMatch
	} else {
		ch.Result = domain.ResultNoMatch
	}
	ch.Status = domain.StatusCompleted
	ch.CompletedAt = &now
	ch.UpdatedAt = now

	if err := s.saveChallenge(ctx, ch); err != nil {
		return nil, err
	}

	result := s.buildResult(ctx, ch, now)
	data, err := store.Encode(result)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSaveResult, err)
	}
	if _, err := s.store.Create(ctx, store.CollectionChallengeResults, data, ch.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSaveResult, err)
	}

	log.Info(LogMsgChallengeCompleted, "challenge_id", ch.ID, "result", ch.Result)

	notifyData := challengeData(ch)
	notifyData["result"] = string(ch.Result)
	notifyData["numbers"] = ch.Numbers
	if result.Winner != "" {
		notifyData["winner"] = result.Winner
	}
	s.notifyUsers(ctx, []string{ch.FromUser, ch.ToUser}, notify.TypeChallengeCompleted, notifyData)
	s.publishEvent(ctx, event.NewChallengeCompletedEvent(result))

	return &domain.ResolveOutcome{
		ChallengeID: ch.ID,
		Result:      ch.Result,
		Numbers:     ch.Numbers,
		ResolvedAt:  now,
	}, nil
}

// buildResult snapshots the completed challenge for the statistics pipeline.
// Response times need both the acceptance time and a stored selection, so
// either side may be absent.
func (s *service) buildResult(ctx context.Context, ch *domain.Challenge, now time.Time) domain.ChallengeResult {
	result := domain.ChallengeResult{
		ChallengeID:    ch.ID,
		FromUser:       ch.FromUser,
		ToUser:         ch.ToUser,
		Description:    ch.Description,
		FromUserNumber: ch.Numbers[ch.FromUser],
		ToUserNumber:   ch.Numbers[ch.ToUser],
		Result:         ch.Result,
		CreatedAt:      ch.CreatedAt,
		CompletedAt:    now,
	}
	if ch.Range != nil {
		result.RangeMin = ch.Range.Min
		result.RangeMax = ch.Range.Max
	}
	if ch.Result == domain.ResultMatch {
		result.Winner = ch.FromUser
	}
	if ch.AcceptedAt != nil {
		result.ResponseTimeFromUser = s.responseTime(ctx, ch, ch.ID+domain.SelectionSuffixFrom)
		result.ResponseTimeToUser = s.responseTime(ctx, ch, ch.ID+domain.SelectionSuffixTo)
	}
	return result
}

// responseTime computes seconds from acceptance to number selection
func (s *service) responseTime(ctx context.Context, ch *domain.Challenge, docID string) *float64 {
	data, err := s.store.Get(ctx, store.CollectionNumberSelections, docID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.FromContext(ctx).Warn(LogMsgSelectionLookupFailed, "doc_id", docID, "error", err)
		}
		return nil
	}
	var sel domain.NumberSelection
	if err := store.Decode(data, &sel); err != nil {
		logger.FromContext(ctx).Warn(LogMsgSelectionLookupFailed, "doc_id", docID, "error", err)
		return nil
	}
	seconds := sel.SelectedAt.Sub(*ch.AcceptedAt).Seconds()
	if seconds < 0 {
		return nil
	}
	return &seconds
}
