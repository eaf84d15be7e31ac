package metrics

import (
	"context"

	"github.com/StavLobel/whats-the-chance-game/internal/event"
	"github.com/StavLobel/whats-the-chance-game/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.ChallengeCreated,
		event.ChallengeUpdated,
		event.ChallengeCompleted,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.ChallengeCreated:
		ChallengesCreated.Inc()

	case event.ChallengeUpdated:
		// The status metadata distinguishes accept/reject responses from
		// number submissions; only the former count as decisions.
		if status, ok := evt.GetMetadataValue("status").(string); ok {
			if status == "accepted" || status == "rejected" {
				ChallengesResponded.WithLabelValues(status).Inc()
			}
		}

	case event.ChallengeCompleted:
		payload, err := event.DecodePayload[event.ChallengeCompletedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		ChallengesResolved.WithLabelValues(string(payload.Result.Result)).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
