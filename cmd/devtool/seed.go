package main

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/StavLobel/whats-the-chance-game/internal/challenge"
	"github.com/StavLobel/whats-the-chance-game/internal/concurrency"
	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/event"
	"github.com/StavLobel/whats-the-chance-game/internal/gamestats"
	"github.com/StavLobel/whats-the-chance-game/internal/store/postgres"
	"github.com/StavLobel/whats-the-chance-game/internal/worker"
)

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Seed the database with game data (demo, load <count>)"
}

func (c *SeedCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: demo, load")
	}
	subcmd := args[0]

	ctx := context.Background()

	pool, err := postgres.NewPool(databaseURL(), 4, time.Minute, 10*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	st := postgres.New(pool)
	if err := st.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	switch subcmd {
	case "demo":
		return c.seedDemo(ctx, st)
	case "load":
		count := 500
		if len(args) > 1 {
			count, err = strconv.Atoi(args[1])
			if err != nil || count < 1 {
				return fmt.Errorf("invalid count: %s", args[1])
			}
		}
		return c.seedLoad(ctx, st, count)
	default:
		return fmt.Errorf("unknown subcommand: %s", subcmd)
	}
}

// seedDemo plays a handful of rounds through the real service stack, so the
// seeded rows look exactly like live play: challenge documents, results,
// selections, and every aggregate the event handler maintains.
func (c *SeedCommand) seedDemo(ctx context.Context, st *postgres.Store) error {
	PrintInfo("Seeding demo challenges...")

	bus := event.NewMemoryBus()
	stats := gamestats.NewService(st, concurrency.NewLockManager(), nil)
	workers := worker.NewPool(2, 16)
	workers.Start()
	gamestats.NewEventHandler(stats, workers).Register(bus)
	challenges := challenge.NewService(st, bus, nil, nil)

	// One invitation still waiting for an answer
	if _, err := challenges.Create(ctx, "demo-noa", "demo-omer", "hop to the kitchen on one leg"); err != nil {
		return fmt.Errorf("seed pending challenge: %w", err)
	}

	// One accepted and waiting for numbers
	accepted, err := challenges.Create(ctx, "demo-maya", "demo-noa", "sing the anthem in the elevator")
	if err != nil {
		return fmt.Errorf("seed accepted challenge: %w", err)
	}
	if _, err := challenges.Respond(ctx, accepted.ID, "demo-noa", true, &domain.ChallengeRange{Min: 1, Max: 10}); err != nil {
		return fmt.Errorf("seed accepted challenge: %w", err)
	}

	// Completed rounds, played end to end
	rounds := []struct {
		from, to, dare   string
		fromPick, toPick int
	}{
		{"demo-noa", "demo-maya", "order pizza with a pirate accent", 4, 4},
		{"demo-omer", "demo-noa", "do twenty pushups right now", 7, 2},
		{"demo-maya", "demo-omer", "text a dinosaur emoji to your mom", 3, 9},
	}
	for _, round := range rounds {
		ch, err := challenges.Create(ctx, round.from, round.to, round.dare)
		if err != nil {
			return fmt.Errorf("seed round %q: %w", round.dare, err)
		}
		if _, err := challenges.Respond(ctx, ch.ID, round.to, true, &domain.ChallengeRange{Min: 1, Max: 10}); err != nil {
			return fmt.Errorf("seed round %q: %w", round.dare, err)
		}
		if _, err := challenges.SubmitNumber(ctx, ch.ID, round.to, round.toPick); err != nil {
			return fmt.Errorf("seed round %q: %w", round.dare, err)
		}
		if _, err := challenges.SubmitNumber(ctx, ch.ID, round.from, round.fromPick); err != nil {
			return fmt.Errorf("seed round %q: %w", round.dare, err)
		}
	}

	// Stop drains queued aggregation jobs before the pool goes away
	workers.Stop()

	PrintSuccess("Demo data seeded: 1 pending, 1 accepted, %d completed", len(rounds))
	return nil
}

// seedLoad writes bulk results straight through the aggregation service,
// spread over the past month, for exercising the analytics endpoints.
func (c *SeedCommand) seedLoad(ctx context.Context, st *postgres.Store, count int) error {
	PrintInfo("Seeding %d challenge results...", count)

	stats := gamestats.NewService(st, concurrency.NewLockManager(), nil)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	users := []string{
		"load-user-1", "load-user-2", "load-user-3", "load-user-4",
		"load-user-5", "load-user-6", "load-user-7", "load-user-8",
	}
	rangeMaxes := []int{10, 20, 50, 100}

	for i := 0; i < count; i++ {
		from := users[rng.Intn(len(users))]
		to := users[rng.Intn(len(users))]
		for to == from {
			to = users[rng.Intn(len(users))]
		}

		rangeMax := rangeMaxes[rng.Intn(len(rangeMaxes))]
		fromPick := 1 + rng.Intn(rangeMax)
		toPick := 1 + rng.Intn(rangeMax)
		completedAt := time.Now().Add(-time.Duration(rng.Intn(30*24)) * time.Hour)

		fromResponse := 1 + rng.Float64()*60
		toResponse := 1 + rng.Float64()*60

		result := domain.ChallengeResult{
			ChallengeID:          uuid.NewString(),
			FromUser:             from,
			ToUser:               to,
			Description:          fmt.Sprintf("load test dare %d", i+1),
			RangeMin:             1,
			RangeMax:             rangeMax,
			FromUserNumber:       fromPick,
			ToUserNumber:         toPick,
			Result:               domain.ResultNoMatch,
			CreatedAt:            completedAt.Add(-5 * time.Minute),
			CompletedAt:          completedAt,
			ResponseTimeFromUser: &fromResponse,
			ResponseTimeToUser:   &toResponse,
		}
		if fromPick == toPick {
			result.Result = domain.ResultMatch
			result.Winner = from
		}

		if err := stats.RecordChallengeResult(ctx, &result); err != nil {
			return fmt.Errorf("seed result %d: %w", i+1, err)
		}

		if (i+1)%100 == 0 {
			PrintInfo("Seeded %d/%d results", i+1, count)
		}
	}

	PrintSuccess("Load data seeded")
	return nil
}
