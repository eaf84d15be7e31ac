package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check API health (healthz, readyz, version)"
}

func (c *HealthCheckCommand) Run(args []string) error {
	baseURL := os.Getenv("API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if len(args) > 0 {
		baseURL = args[0]
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", baseURL))

	client := &http.Client{Timeout: 10 * time.Second}

	start := time.Now()
	if err := c.checkEndpoint(client, baseURL+"/healthz"); err != nil {
		PrintError("healthz failed: %v", err)
		return err
	}
	duration := time.Since(start)

	if duration > 1*time.Second {
		PrintWarning("healthz OK but slow (%v)", duration)
	} else {
		PrintSuccess("healthz OK (%v)", duration)
	}

	if err := c.checkEndpoint(client, baseURL+"/readyz"); err != nil {
		PrintError("readyz failed: %v", err)
		return err
	}
	PrintSuccess("readyz OK (database reachable)")

	version, err := c.fetchBody(client, baseURL+"/version")
	if err != nil {
		PrintError("version failed: %v", err)
		return err
	}
	PrintSuccess("version: %s", version)

	return nil
}

func (c *HealthCheckCommand) checkEndpoint(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return nil
}

func (c *HealthCheckCommand) fetchBody(client *http.Client, url string) (string, error) {
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
