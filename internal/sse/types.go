package sse

// PresencePayload announces a user coming online or going offline
type PresencePayload struct {
	UserID string `json:"user_id"`
}

// ConnectedPayload is the payload of the first event on a new stream
type ConnectedPayload struct {
	ClientID string   `json:"client_id"`
	UserID   string   `json:"user_id"`
	Filters  []string `json:"filters,omitempty"`
}
