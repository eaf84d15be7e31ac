package store

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/StavLobel/whats-the-chance-game/internal/domain"
)

// Memory is an in-memory Store used by unit tests and local development.
// Documents are deep-copied on the way in and out so callers never share
// state with the store.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	collections := make(map[string]map[string]map[string]any, len(Collections))
	for _, c := range Collections {
		collections[c] = make(map[string]map[string]any)
	}
	return &Memory{collections: collections}
}

func (m *Memory) docs(collection string) (map[string]map[string]any, error) {
	docs, ok := m.collections[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
	return docs, nil
}

// Create writes a document, generating a UUID when id is empty
func (m *Memory) Create(ctx context.Context, collection string, data map[string]any, id string) (string, error) {
	copied, err := cloneDoc(data)
	if err != nil {
		return "", err
	}
	if id == "" {
		id = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	docs, err := m.docs(collection)
	if err != nil {
		return "", err
	}
	docs[id] = copied
	return id, nil
}

// Get returns a copy of the document data
func (m *Memory) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs, err := m.docs(collection)
	if err != nil {
		return nil, err
	}
	doc, ok := docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneDoc(doc)
}

// Update merges partial into an existing document
func (m *Memory) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	copied, err := cloneDoc(partial)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	docs, err := m.docs(collection)
	if err != nil {
		return err
	}
	doc, ok := docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	for k, v := range copied {
		doc[k] = v
	}
	return nil
}

// Delete removes a document
func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	docs, err := m.docs(collection)
	if err != nil {
		return err
	}
	if _, ok := docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(docs, id)
	return nil
}

// Query returns all documents where field op value holds
func (m *Memory) Query(ctx context.Context, collection, field, op string, value any) ([]Document, error) {
	return m.QueryMulti(ctx, collection, []Filter{{Field: field, Op: op, Value: value}})
}

// QueryMulti returns all documents matching every filter, sorted by ID
func (m *Memory) QueryMulti(ctx context.Context, collection string, filters []Filter) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs, err := m.docs(collection)
	if err != nil {
		return nil, err
	}

	var results []Document
	for id, doc := range docs {
		if matchesAll(doc, filters) {
			copied, err := cloneDoc(doc)
			if err != nil {
				return nil, err
			}
			results = append(results, Document{ID: id, Data: copied})
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

// Ping always succeeds for the in-memory store
func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

func matchesAll(doc map[string]any, filters []Filter) bool {
	for _, f := range filters {
		val, ok := doc[f.Field]
		if !ok {
			return false
		}
		if !compare(val, f.Op, f.Value) {
			return false
		}
	}
	return true
}

// compare evaluates have op want across the JSON type system. Numbers
// compare numerically regardless of Go type; strings lexicographically,
// which orders RFC3339 timestamps chronologically.
func compare(have any, op string, want any) bool {
	if hf, ok := toFloat(have); ok {
		if wf, ok := toFloat(want); ok {
			switch op {
			case OpEqual:
				return hf == wf
			case OpNotEqual:
				return hf != wf
			case OpGreaterThan:
				return hf > wf
			case OpGreaterOrEqual:
				return hf >= wf
			case OpLessThan:
				return hf < wf
			case OpLessOrEqual:
				return hf <= wf
			}
			return false
		}
	}

	hs, hok := have.(string)
	ws, wok := want.(string)
	if hok && wok {
		switch op {
		case OpEqual:
			return hs == ws
		case OpNotEqual:
			return hs != ws
		case OpGreaterThan:
			return hs > ws
		case OpGreaterOrEqual:
			return hs >= ws
		case OpLessThan:
			return hs < ws
		case OpLessOrEqual:
			return hs <= ws
		}
		return false
	}

	switch op {
	case OpEqual:
		return reflect.DeepEqual(have, want)
	case OpNotEqual:
		return !reflect.DeepEqual(have, want)
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func cloneDoc(data map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var copied map[string]any
	if err := json.Unmarshal(raw, &copied); err != nil {
		return nil, err
	}
	if copied == nil {
		copied = make(map[string]any)
	}
	return copied, nil
}

// Ensure Memory implements Store at compile time
var _ Store = (*Memory)(nil)
