package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/StavLobel/whats-the-chance-game/internal/store/postgres"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	dbName := getEnv("DB_NAME", "whats_the_chance")

	// Connect to the postgres maintenance database to manage the target one
	serverConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
	)

	serverPool, err := postgres.NewPool(serverConnString, 2, 30*time.Minute, time.Hour)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL server: %v", err)
	}
	defer serverPool.Close()

	ctx := context.Background()

	// Terminate existing connections to the database
	log.Printf("Terminating existing connections to database %s...\n", dbName)
	_, err = serverPool.Exec(ctx, `
		SELECT pg_terminate_backend(pg_stat_activity.pid)
		FROM pg_stat_activity
		WHERE pg_stat_activity.datname = $1
		AND pid <> pg_backend_pid()
	`, dbName)
	if err != nil {
		log.Printf("Warning: Failed to terminate connections: %v\n", err)
	}

	// Drop database if exists
	log.Printf("Dropping database %s if it exists...\n", dbName)
	_, err = serverPool.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName))
	if err != nil {
		log.Fatalf("Failed to drop database: %v", err)
	}
	log.Printf("Database %s dropped successfully.\n", dbName)

	// Create database
	log.Printf("Creating database %s...\n", dbName)
	_, err = serverPool.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", dbName))
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	log.Printf("Database %s created successfully.\n", dbName)

	log.Println("\n✅ Database reset complete!")
	log.Println("Next step: Run 'make migrate-up' to apply migrations")
}
