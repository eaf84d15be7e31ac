package sse

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/StavLobel/whats-the-chance-game/internal/metrics"
	"github.com/StavLobel/whats-the-chance-game/internal/notify"
)

// Event represents an event sent over SSE
type Event struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Payload   any    `json:"payload"`
}

// Client represents one connected stream. A user may hold several clients
// at once (multiple tabs); targeted events reach all of them.
type Client struct {
	ID           string
	UserID       string
	EventChannel chan Event
	EventFilter  map[string]bool // nil means all events, otherwise only specified types
}

// delivery is an event addressed to a set of users. A nil UserIDs slice
// means every connected user except Exclude.
type delivery struct {
	UserIDs []string
	Exclude string
	Event   Event
}

// Hub manages SSE client connections and routes events to the users they
// are addressed to. It implements notify.Notifier, so the challenge
// lifecycle pushes through the hub without knowing about SSE.
type Hub struct {
	clients    map[string]*Client
	users      map[string]map[string]*Client
	deliveries chan delivery
	register   chan *Client
	unregister chan string
	mu         sync.RWMutex
	shutdown   chan struct{}
	wg         sync.WaitGroup
}

// NewHub creates a new SSE Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		users:      make(map[string]map[string]*Client),
		deliveries: make(chan delivery, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
	}
}

// Start starts the hub's delivery loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() {
	close(h.shutdown)
	h.wg.Wait()

	h.mu.Lock()
	for _, client := range h.clients {
		close(client.EventChannel)
	}
	h.clients = make(map[string]*Client)
	h.users = make(map[string]map[string]*Client)
	h.mu.Unlock()

	metrics.SSEClientsConnected.Set(0)
}

// run is the main delivery loop
func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case clientID := <-h.unregister:
			h.removeClient(clientID)

		case del := <-h.deliveries:
			h.deliver(del)

		case <-h.shutdown:
			return
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	siblings := h.users[client.UserID]
	if siblings == nil {
		siblings = make(map[string]*Client)
		h.users[client.UserID] = siblings
	}
	first := len(siblings) == 0
	siblings[client.ID] = client
	h.mu.Unlock()

	metrics.SSEClientsConnected.Inc()

	// The user's first connection announces presence to everyone else.
	if first {
		h.deliver(delivery{
			Exclude: client.UserID,
			Event:   newEvent(notify.TypeUserOnline, PresencePayload{UserID: client.UserID}),
		})
	}
}

func (h *Hub) removeClient(clientID string) {
	h.mu.Lock()
	client, ok := h.clients[clientID]
	if !ok {
		h.mu.Unlock()
		return
	}
	close(client.EventChannel)
	delete(h.clients, clientID)

	last := false
	if siblings, ok := h.users[client.UserID]; ok {
		delete(siblings, clientID)
		if len(siblings) == 0 {
			delete(h.users, client.UserID)
			last = true
		}
	}
	h.mu.Unlock()

	metrics.SSEClientsConnected.Dec()

	if last {
		h.deliver(delivery{
			Exclude: client.UserID,
			Event:   newEvent(notify.TypeUserOffline, PresencePayload{UserID: client.UserID}),
		})
	}
}

func (h *Hub) deliver(del delivery) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if del.UserIDs == nil {
		for _, client := range h.clients {
			if client.UserID == del.Exclude {
				continue
			}
			h.send(client, del.Event)
		}
		return
	}

	for _, userID := range del.UserIDs {
		for _, client := range h.users[userID] {
			h.send(client, del.Event)
		}
	}
}

// send is non-blocking; a client that cannot keep up loses events rather
// than stalling the loop.
func (h *Hub) send(client *Client, event Event) {
	if client.EventFilter != nil && !client.EventFilter[event.Type] {
		return
	}
	select {
	case client.EventChannel <- event:
	default:
	}
}

// Register adds a new client stream for the given user
func (h *Hub) Register(userID string, eventTypes []string) *Client {
	client := &Client{
		ID:           uuid.New().String(),
		UserID:       userID,
		EventChannel: make(chan Event, ClientEventBuffer),
	}

	if len(eventTypes) > 0 {
		client.EventFilter = make(map[string]bool)
		for _, t := range eventTypes {
			client.EventFilter[t] = true
		}
	}

	select {
	case h.register <- client:
	case <-h.shutdown:
	}
	return client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Notify queues a message for every client of the addressed users. It
// never blocks; when the delivery buffer is full the message is dropped.
func (h *Hub) Notify(_ context.Context, userIDs []string, msg notify.Message) {
	if len(userIDs) == 0 {
		return
	}

	for range userIDs {
		metrics.NotificationsSent.WithLabelValues(msg.Type).Inc()
	}

	del := delivery{
		UserIDs: userIDs,
		Event:   newEvent(msg.Type, msg.Data),
	}
	select {
	case h.deliveries <- del:
	default:
		slog.Warn(LogMsgDeliveryDropped, "type", msg.Type, "users", len(userIDs))
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// UserOnline reports whether the user has at least one open stream
func (h *Hub) UserOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID]) > 0
}

func newEvent(eventType string, payload any) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}
}

// FormatSSEMessage formats an SSE event for transmission
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	// SSE format: "id: <id>\nevent: <type>\ndata: <json>\n\n"
	msg := "id: " + event.ID + "\n"
	msg += "event: " + event.Type + "\n"
	msg += "data: " + string(data) + "\n\n"

	return []byte(msg), nil
}

// Compile-time check that Hub satisfies notify.Notifier
var _ notify.Notifier = (*Hub)(nil)
