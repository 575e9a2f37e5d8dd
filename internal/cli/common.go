package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"capgate/internal/config"
	"capgate/internal/server"
)

// DetectHealthEndpoint builds the /healthz URL of a server running with cfg.
func DetectHealthEndpoint(cfg config.ServerConfig) string {
	host := cfg.Host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = config.GetDefaultConfig().Server.Port
	}
	return fmt.Sprintf("http://%s:%d/healthz", host, port)
}

// FetchHealth queries the /healthz endpoint of a running server.
func FetchHealth(ctx context.Context, endpoint string) (server.Health, error) {
	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return server.Health{}, fmt.Errorf("build health request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return server.Health{}, ClassifyConnectionError(err, endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return server.Health{}, fmt.Errorf("capgate server is not responding correctly (status: %d). Try restarting with: capgate serve", resp.StatusCode)
	}

	var health server.Health
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return server.Health{}, fmt.Errorf("decode health response: %w", err)
	}
	return health, nil
}

// FormatError formats an error message for CLI output
func FormatError(err error) string {
	return fmt.Sprintf("Error: %v", err)
}

// FormatSuccess formats a success message for CLI output
func FormatSuccess(msg string) string {
	return fmt.Sprintf("✓ %s", msg)
}

// FormatWarning formats a warning message for CLI output
func FormatWarning(msg string) string {
	return fmt.Sprintf("⚠ %s", msg)
}
