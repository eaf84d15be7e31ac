package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StavLobel/whats-the-chance-game/internal/domain"
)

func TestMemory_CreateAndGet(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	t.Run("generates id when empty", func(t *testing.T) {
		id, err := s.Create(ctx, CollectionChallenges, map[string]any{"status": "pending"}, "")
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		data, err := s.Get(ctx, CollectionChallenges, id)
		require.NoError(t, err)
		assert.Equal(t, "pending", data["status"])
	})

	t.Run("uses explicit id", func(t *testing.T) {
		id, err := s.Create(ctx, CollectionUserGameStats, map[string]any{"total_challenges": 1}, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", id)
	})

	t.Run("explicit id replaces existing document", func(t *testing.T) {
		_, err := s.Create(ctx, CollectionNumberStats, map[string]any{"times_selected": 1, "number": 7}, "7")
		require.NoError(t, err)
		_, err = s.Create(ctx, CollectionNumberStats, map[string]any{"times_selected": 5}, "7")
		require.NoError(t, err)

		data, err := s.Get(ctx, CollectionNumberStats, "7")
		require.NoError(t, err)
		assert.EqualValues(t, 5, data["times_selected"])
		assert.NotContains(t, data, "number", "Replace should drop fields absent from the new document")
	})

	t.Run("get missing document returns ErrNotFound", func(t *testing.T) {
		_, err := s.Get(ctx, CollectionChallenges, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown collection is rejected", func(t *testing.T) {
		_, err := s.Create(ctx, "bogus", map[string]any{}, "")
		assert.Error(t, err)
	})
}

func TestMemory_Update(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, err := s.Create(ctx, CollectionUserGameStats, map[string]any{
		"total_challenges": 2,
		"matches_won":      1,
	}, "user-1")
	require.NoError(t, err)

	t.Run("merges partial data", func(t *testing.T) {
		err := s.Update(ctx, CollectionUserGameStats, "user-1", map[string]any{"matches_won": 2})
		require.NoError(t, err)

		data, err := s.Get(ctx, CollectionUserGameStats, "user-1")
		require.NoError(t, err)
		assert.EqualValues(t, 2, data["matches_won"])
		assert.EqualValues(t, 2, data["total_challenges"], "Untouched fields survive a partial update")
	})

	t.Run("missing document returns ErrNotFound", func(t *testing.T) {
		err := s.Update(ctx, CollectionUserGameStats, "ghost", map[string]any{"matches_won": 1})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMemory_Delete(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	id, err := s.Create(ctx, CollectionChallenges, map[string]any{"status": "pending"}, "")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, CollectionChallenges, id))

	_, err = s.Get(ctx, CollectionChallenges, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = s.Delete(ctx, CollectionChallenges, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemory_Query(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	seed := []map[string]any{
		{"status": "pending", "from_user": "alice", "to_user": "bob"},
		{"status": "completed", "from_user": "alice", "to_user": "carol"},
		{"status": "completed", "from_user": "bob", "to_user": "alice"},
	}
	for i, doc := range seed {
		_, err := s.Create(ctx, CollectionChallenges, doc, string(rune('a'+i)))
		require.NoError(t, err)
	}

	t.Run("equality filter", func(t *testing.T) {
		docs, err := s.Query(ctx, CollectionChallenges, "status", OpEqual, "completed")
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("multi filter is AND", func(t *testing.T) {
		docs, err := s.QueryMulti(ctx, CollectionChallenges, []Filter{
			{Field: "status", Op: OpEqual, Value: "completed"},
			{Field: "from_user", Op: OpEqual, Value: "alice"},
		})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "carol", docs[0].Data["to_user"])
	})

	t.Run("no match returns empty", func(t *testing.T) {
		docs, err := s.Query(ctx, CollectionChallenges, "status", OpEqual, "rejected")
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("missing field never matches", func(t *testing.T) {
		docs, err := s.Query(ctx, CollectionChallenges, "winner", OpEqual, "alice")
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("results sorted by id", func(t *testing.T) {
		docs, err := s.Query(ctx, CollectionChallenges, "from_user", OpEqual, "alice")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Less(t, docs[0].ID, docs[1].ID)
	})
}

func TestMemory_QueryNumericComparison(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	for id, count := range map[string]int{"1": 0, "2": 3, "3": 10} {
		_, err := s.Create(ctx, CollectionNumberStats, map[string]any{"times_selected": count}, id)
		require.NoError(t, err)
	}

	docs, err := s.Query(ctx, CollectionNumberStats, "times_selected", OpGreaterThan, 0)
	require.NoError(t, err)
	assert.Len(t, docs, 2, "Ints stored through JSON should still compare numerically")
}

func TestMemory_QueryTimestampOrdering(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	_, err := s.Create(ctx, CollectionChallengeResults, map[string]any{"completed_at": older}, "old")
	require.NoError(t, err)
	_, err = s.Create(ctx, CollectionChallengeResults, map[string]any{"completed_at": newer}, "new")
	require.NoError(t, err)

	docs, err := s.Query(ctx, CollectionChallengeResults, "completed_at", OpGreaterThan, older)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "new", docs[0].ID)
}

func TestMemory_DocumentsAreCopied(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	original := map[string]any{"status": "pending"}
	id, err := s.Create(ctx, CollectionChallenges, original, "")
	require.NoError(t, err)

	// Mutating the caller's map must not leak into the store
	original["status"] = "hacked"

	data, err := s.Get(ctx, CollectionChallenges, id)
	require.NoError(t, err)
	assert.Equal(t, "pending", data["status"])

	// Mutating a read result must not leak either
	data["status"] = "hacked"
	again, err := s.Get(ctx, CollectionChallenges, id)
	require.NoError(t, err)
	assert.Equal(t, "pending", again["status"])
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	ch := domain.Challenge{
		ID:          "c1",
		Description: "bark like a dog",
		FromUser:    "alice",
		ToUser:      "bob",
		Status:      domain.StatusPending,
		CreatedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := Encode(ch)
	require.NoError(t, err)
	assert.Equal(t, "alice", data["from_user"])
	assert.Equal(t, "pending", data["status"])

	var back domain.Challenge
	require.NoError(t, Decode(data, &back))
	assert.Equal(t, ch.ID, back.ID)
	assert.Equal(t, ch.Status, back.Status)
	assert.True(t, ch.CreatedAt.Equal(back.CreatedAt))
}
