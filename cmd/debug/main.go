package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/StavLobel/whats-the-chance-game/internal/config"
	"github.com/StavLobel/whats-the-chance-game/internal/store"
	"github.com/StavLobel/whats-the-chance-game/internal/store/postgres"
)

// Dumps a quick view of the document tables: per-collection counts, the
// latest challenges and results, and the global stats document.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := postgres.NewPool(cfg.GetDBConnString(), 4, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()

	fmt.Println("--- Collection counts ---")
	for _, collection := range store.Collections {
		var count int
		if err := pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", collection)).Scan(&count); err != nil {
			log.Printf("Failed to count %s: %v", collection, err)
			continue
		}
		fmt.Printf("%-22s %d\n", collection, count)
	}

	fmt.Println("\n--- Latest challenges ---")
	dumpLatest(ctx, pool, store.CollectionChallenges, "status", "created_at")

	fmt.Println("\n--- Latest results ---")
	dumpLatest(ctx, pool, store.CollectionChallengeResults, "result", "completed_at")

	fmt.Println("\n--- Global stats ---")
	var doc string
	err = pool.QueryRow(ctx, fmt.Sprintf("SELECT jsonb_pretty(data) FROM %s LIMIT 1", store.CollectionGlobalGameStats)).Scan(&doc)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		fmt.Println("(none yet)")
	case err != nil:
		log.Printf("Failed to read global stats: %v", err)
	default:
		fmt.Println(doc)
	}
}

// dumpLatest prints the five most recent documents in a collection. The
// state column is "status" for challenges, "result" for results; ordering
// uses whichever timestamp field the collection carries.
func dumpLatest(ctx context.Context, pool *pgxpool.Pool, collection, stateField, orderField string) {
	query := fmt.Sprintf(
		"SELECT id, data->>'from_user', data->>'to_user', COALESCE(data->>'%s', ''), COALESCE(data->>'%s', '') FROM %s ORDER BY data->>'%s' DESC LIMIT 5",
		stateField, orderField, collection, orderField)

	rows, err := pool.Query(ctx, query)
	if err != nil {
		log.Printf("Failed to query %s: %v", collection, err)
		return
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var id, fromUser, toUser, state, at string
		if err := rows.Scan(&id, &fromUser, &toUser, &state, &at); err != nil {
			log.Printf("Failed to scan %s row: %v", collection, err)
			return
		}
		found = true
		fmt.Printf("%s  %s -> %s  [%s]  %s\n", id, fromUser, toUser, state, at)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Failed to read %s rows: %v", collection, err)
		return
	}
	if !found {
		fmt.Println("(none yet)")
	}
}
