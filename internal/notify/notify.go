// Package notify defines the realtime notification contract. The challenge
// lifecycle depends only on this interface, transport lives elsewhere, and
// every send is fire-and-forget: a notification failure never fails the
// state change that triggered it.
package notify

import "context"

// Message types pushed to clients
const (
	TypeChallengeCreated   = "challenge_created"
	TypeChallengeUpdated   = "challenge_updated"
	TypeChallengeCompleted = "challenge_completed"
	TypeUserOnline         = "user_online"
	TypeUserOffline        = "user_offline"
)

// Message is a notification addressed to one or more users
type Message struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// Notifier pushes messages to connected clients. Delivery is at most once
// and best effort; implementations must never block the caller.
type Notifier interface {
	Notify(ctx context.Context, userIDs []string, msg Message)
}

// Noop discards every notification, used in tests and when no realtime
// transport is wired.
type Noop struct{}

func (Noop) Notify(context.Context, []string, Message) {}

// Compile-time check that Noop satisfies Notifier
var _ Notifier = Noop{}
