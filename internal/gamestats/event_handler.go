package gamestats

import (
	"context"
	"fmt"

	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/event"
	"github.com/StavLobel/whats-the-chance-game/internal/logger"
	"github.com/StavLobel/whats-the-chance-game/internal/worker"
)

// AggregationJob carries one finalized result through the aggregate updates
// on a worker
type AggregationJob struct {
	Service Service
	Result  domain.ChallengeResult
}

// Process implements worker.Job
func (j *AggregationJob) Process(ctx context.Context) error {
	return j.Service.RecordChallengeResult(ctx, &j.Result)
}

// EventHandler feeds completion events into the statistics pipeline
type EventHandler struct {
	service Service
	pool    *worker.Pool
}

// NewEventHandler creates a new gamestats event handler. The pool may be
// nil; aggregation then runs inline on the publishing goroutine.
func NewEventHandler(service Service, pool *worker.Pool) *EventHandler {
	return &EventHandler{
		service: service,
		pool:    pool,
	}
}

// Register subscribes the handler to relevant events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.ChallengeCompleted, h.HandleChallengeCompleted)
}

// HandleChallengeCompleted enqueues the aggregation work so the request
// that completed the challenge never waits on the six updates
func (h *EventHandler) HandleChallengeCompleted(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.ChallengeCompletedPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf(ErrMsgDecodeEventPayload, err)
	}

	if h.pool == nil {
		log.Debug(LogMsgAggregationInline, "challenge_id", payload.Result.ChallengeID)
		return h.service.RecordChallengeResult(ctx, &payload.Result)
	}

	h.pool.Enqueue(&AggregationJob{Service: h.service, Result: payload.Result})
	log.Debug(LogMsgAggregationEnqueued, "challenge_id", payload.Result.ChallengeID)
	return nil
}
