package gamestats

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/StavLobel/whats-the-chance-game/internal/concurrency"
	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/store"
)

func init() {
	// Set log level to WARN for benchmarks (reduces noise)
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	handler := slog.NewTextHandler(os.Stdout, opts)
	slog.SetDefault(slog.New(handler))
}

// benchResult rotates participants and numbers so successive results touch
// different aggregate documents, like real traffic does.
func benchResult(i int) *domain.ChallengeResult {
	users := []string{"alice", "bob", "carol", "dave"}
	from := users[i%len(users)]
	to := users[(i+1)%len(users)]
	fromPick := 1 + i%10
	toPick := 1 + (i*3)%10

	now := time.Now().UTC()
	result := &domain.ChallengeResult{
		ChallengeID:    fmt.Sprintf("bench-%d", i),
		FromUser:       from,
		ToUser:         to,
		Description:    "order pizza with a pirate accent",
		RangeMin:       1,
		RangeMax:       10,
		FromUserNumber: fromPick,
		ToUserNumber:   toPick,
		Result:         domain.ResultNoMatch,
		CreatedAt:      now.Add(-time.Minute),
		CompletedAt:    now,
	}
	if fromPick == toPick {
		result.Result = domain.ResultMatch
		result.Winner = from
	}
	return result
}

func BenchmarkService_RecordChallengeResult(b *testing.B) {
	svc := NewService(store.NewMemory(), concurrency.NewLockManager(), nil)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := svc.RecordChallengeResult(ctx, benchResult(i)); err != nil {
			b.Fatalf("RecordChallengeResult failed: %v", err)
		}
	}
}

// BenchmarkService_GetAnalyticsSummary measures the uncached read path over
// a populated store.
func BenchmarkService_GetAnalyticsSummary(b *testing.B) {
	svc := NewService(store.NewMemory(), concurrency.NewLockManager(), nil)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		if err := svc.RecordChallengeResult(ctx, benchResult(i)); err != nil {
			b.Fatalf("RecordChallengeResult failed: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.GetAnalyticsSummary(ctx); err != nil {
			b.Fatalf("GetAnalyticsSummary failed: %v", err)
		}
	}
}
