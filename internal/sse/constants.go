package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the delivery channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Stream-level event types. Lifecycle notifications carry the message
// types from the notify package; these are the hub's own.
const (
	// EventTypeConnected is the first event on every new stream
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgDeliveryDropped    = "SSE delivery dropped, buffer full"
)
