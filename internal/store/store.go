package store

import (
	"context"
	"encoding/json"
)

// Collection names. Every collection maps to one document table.
const (
	CollectionChallenges         = "challenges"
	CollectionChallengeResults   = "challenge_results"
	CollectionNumberSelections   = "number_selections"
	CollectionUserGameStats      = "user_game_stats"
	CollectionGlobalGameStats    = "global_game_stats"
	CollectionNumberStats        = "number_stats"
	CollectionRangeStats         = "range_stats"
	CollectionPlayerInteractions = "player_interactions"
	CollectionPlayerPairs        = "player_pairs"
)

// Collections lists every known collection. Implementations reject
// anything else so collection names can be spliced into SQL safely.
var Collections = []string{
	CollectionChallenges,
	CollectionChallengeResults,
	CollectionNumberSelections,
	CollectionUserGameStats,
	CollectionGlobalGameStats,
	CollectionNumberStats,
	CollectionRangeStats,
	CollectionPlayerInteractions,
	CollectionPlayerPairs,
}

// Comparison operators accepted by Query and QueryMulti
const (
	OpEqual          = "=="
	OpNotEqual       = "!="
	OpGreaterThan    = ">"
	OpGreaterOrEqual = ">="
	OpLessThan       = "<"
	OpLessOrEqual    = "<="
)

// Document is a stored document together with its ID
type Document struct {
	ID   string
	Data map[string]any
}

// Decode unmarshals the document data into dest
func (d Document) Decode(dest any) error {
	return Decode(d.Data, dest)
}

// Filter is a single field comparison. QueryMulti combines filters with AND.
type Filter struct {
	Field string
	Op    string
	Value any
}

// Store is the document-store contract the services are written against.
// Documents are schemaless JSON objects addressed by collection and ID.
type Store interface {
	// Create writes a document. An empty id asks the store to generate one;
	// an explicit id upserts, replacing any existing document. Returns the
	// document ID.
	Create(ctx context.Context, collection string, data map[string]any, id string) (string, error)

	// Get returns the document data or domain.ErrNotFound
	Get(ctx context.Context, collection, id string) (map[string]any, error)

	// Update merges partial into an existing document's data.
	// Returns domain.ErrNotFound when the document does not exist.
	Update(ctx context.Context, collection, id string, partial map[string]any) error

	// Delete removes a document. Returns domain.ErrNotFound when absent.
	Delete(ctx context.Context, collection, id string) error

	// Query returns all documents where field op value holds
	Query(ctx context.Context, collection, field, op string, value any) ([]Document, error)

	// QueryMulti returns all documents matching every filter
	QueryMulti(ctx context.Context, collection string, filters []Filter) ([]Document, error)

	// Ping reports whether the backing store is reachable
	Ping(ctx context.Context) error
}

// Encode converts a struct into the map form documents are stored as.
// Going through JSON keeps types canonical: numbers become float64 and
// timestamps become RFC3339 strings, so comparisons behave the same in
// every implementation.
func Encode(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Decode converts stored document data back into a struct
func Decode(m map[string]any, dest any) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
