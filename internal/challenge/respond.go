package challenge

import (
	"context"
	"fmt"
	"time"

	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/event"
	"github.com/StavLobel/whats-the-chance-game/internal/logger"
	"github.com/StavLobel/whats-the-chance-game/internal/notify"
)

// Respond records the recipient's decision on a pending challenge. Accepting
// requires a number range and moves the challenge to accepted; declining
// moves it to rejected. Only the recipient may respond, and only while the
// challenge is still pending.
func (s *service) Respond(ctx context.Context, challengeID, responderID string, accept bool, numberRange *domain.ChallengeRange) (*domain.Challenge, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRespondCalled, "challenge_id", challengeID, "responder", responderID, "accept", accept)

	ch, err := s.getChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if ch.ToUser != responderID {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotRecipient, challengeID)
	}
	if ch.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrChallengeNotPending, ch.Status)
	}

	now := time.Now().UTC()
	if accept {
		if numberRange == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrDetailRangeRequired)
		}
		if err := validateRange(*numberRange); err != nil {
			return nil, err
		}
		ch.Status = domain.StatusAccepted
		ch.Range = numberRange
		ch.AcceptedAt = &now
	} else {
		ch.Status = domain.StatusRejected
	}
	ch.UpdatedAt = now

	if err := s.saveChallenge(ctx, ch); err != nil {
		return nil, err
	}

	s.notifyUsers(ctx, []string{ch.FromUser, ch.ToUser}, notify.TypeChallengeUpdated, challengeData(ch))
	s.publishEvent(ctx, event.NewChallengeUpdatedEvent(*ch, responderID))

	return ch, nil
}

// validateRange enforces the declared game range bounds
func validateRange(r domain.ChallengeRange) error {
	if r.Min < domain.RangeLowerBound || r.Max > domain.RangeUpperBound || r.Min >= r.Max {
		return fmt.Errorf("%w: range must satisfy %d <= min < max <= %d, got [%d, %d]",
			domain.ErrInvalidInput, domain.RangeLowerBound, domain.RangeUpperBound, r.Min, r.Max)
	}
	return nil
}
