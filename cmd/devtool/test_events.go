package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/StavLobel/whats-the-chance-game/internal/identity"
	"github.com/StavLobel/whats-the-chance-game/internal/notify"
)

type TestEventsCommand struct{}

func (c *TestEventsCommand) Name() string {
	return "test-events"
}

func (c *TestEventsCommand) Description() string {
	return "Fire a challenge and watch it arrive on the event stream"
}

// Run opens an event stream as one user, creates a challenge targeting that
// user from another, and waits for the push. Covers token auth, the stream
// endpoint, and the notifier wiring in one go.
func (c *TestEventsCommand) Run(args []string) error {
	apiURL := getEnv("API_URL", "http://localhost:8080")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return fmt.Errorf("JWT_SECRET not set (check .env file)")
	}
	issuer := getEnv("JWT_ISSUER", "whats-the-chance")

	const (
		listener = "devtool-listener"
		sender   = "devtool-sender"
	)

	listenerToken, err := identity.GenerateToken(secret, issuer, listener, listener+"@example.com", "Devtool Listener", 15*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to mint listener token: %w", err)
	}
	senderToken, err := identity.GenerateToken(secret, issuer, sender, sender+"@example.com", "Devtool Sender", 15*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to mint sender token: %w", err)
	}

	PrintHeader("Testing the event stream...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Connect the listener first so the push cannot be missed
	streamURL := apiURL + "/api/v1/events?types=" + notify.TypeChallengeCreated
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create stream request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+listenerToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to event stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("event stream returned %s", resp.Status)
	}
	PrintInfo("Connected to %s", streamURL)

	fireErr := make(chan error, 1)
	go func() {
		// Give the hub a moment to register the client
		time.Sleep(500 * time.Millisecond)
		fireErr <- c.fireChallenge(ctx, apiURL, senderToken, sender, listener)
	}()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			fmt.Println("  " + line)
		}

		if strings.HasPrefix(line, "event: "+notify.TypeChallengeCreated) {
			PrintSuccess("challenge_created arrived on the stream")
			return nil
		}

		select {
		case err := <-fireErr:
			if err != nil {
				return err
			}
		default:
		}
	}

	if ctx.Err() != nil {
		return fmt.Errorf("no challenge_created event within 30s")
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("event stream read failed: %w", err)
	}
	return fmt.Errorf("event stream closed before the event arrived")
}

func (c *TestEventsCommand) fireChallenge(ctx context.Context, apiURL, token, from, to string) error {
	body, err := json.Marshal(map[string]string{
		"from_user":   from,
		"to_user":     to,
		"description": "devtool says hi",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal challenge: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/v1/challenges", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create challenge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to create challenge: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("challenge creation returned %s", resp.Status)
	}

	PrintInfo("Challenge fired from %s to %s", from, to)
	return nil
}
