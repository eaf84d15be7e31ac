package main

import (
	"database/sql"
	"fmt"
	"os"
)

// getEnv returns the environment value or a fallback
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// databaseURL builds the connection string from DB_URL or the individual
// DB_* variables, with the same defaults the server config uses.
func databaseURL() string {
	if dbURL := os.Getenv("DB_URL"); dbURL != "" {
		return dbURL
	}

	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "whats_the_chance")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
}

// pingDatabase opens a connection and pings once
func pingDatabase(dbURL string) error {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Ping()
}
