package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/StavLobel/whats-the-chance-game/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}

	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}

	return nil
}

// Common event types
const (
	ChallengeCreated   Type = "challenge.created"
	ChallengeUpdated   Type = "challenge.updated"
	ChallengeCompleted Type = "challenge.completed"
)

// Typed event payloads for type safety

// ChallengePayloadV1 is the typed payload for challenge lifecycle events.
// Actor is the user whose action caused the transition; subscribers use it
// to decide which participant should be told about the change.
type ChallengePayloadV1 struct {
	Challenge domain.Challenge `json:"challenge"`
	Actor     string           `json:"actor"`
	Timestamp int64            `json:"timestamp"`
}

// ChallengeCompletedPayloadV1 is the typed payload for challenge completion events.
// It carries the finalized result record that feeds the statistics pipeline.
type ChallengeCompletedPayloadV1 struct {
	Result    domain.ChallengeResult `json:"result"`
	Timestamp int64                  `json:"timestamp"`
}

// Type-safe event constructors

// NewChallengeCreatedEvent creates a new challenge created event
func NewChallengeCreatedEvent(challenge domain.Challenge, actor string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ChallengeCreated,
		Payload: ChallengePayloadV1{
			Challenge: challenge,
			Actor:     actor,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewChallengeUpdatedEvent creates a new challenge updated event
func NewChallengeUpdatedEvent(challenge domain.Challenge, actor string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ChallengeUpdated,
		Payload: ChallengePayloadV1{
			Challenge: challenge,
			Actor:     actor,
			Timestamp: time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			"status": string(challenge.Status),
		},
	}
}

// NewChallengeCompletedEvent creates a new challenge completed event
func NewChallengeCompletedEvent(result domain.ChallengeResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ChallengeCompleted,
		Payload: ChallengeCompletedPayloadV1{
			Result:    result,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers execute synchronously; long-running work belongs in a worker
	// pool job enqueued by the handler, not in the handler itself.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
