package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/swaplens/swaplens/internal/output"
	"github.com/swaplens/swaplens/internal/server/handlers"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of a running swaplens server",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
	healthCmd.Flags().String("url", "http://localhost:8080", "base URL of the server to check")
	healthCmd.Flags().Duration("timeout", 5*time.Second, "request timeout")
}

func runHealth(cmd *cobra.Command, args []string) error {
	baseURL, _ := cmd.Flags().GetString("url")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read health response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Unhealthy servers answer with an error envelope, print it as is.
		fmt.Println(string(body))
		return fmt.Errorf("server reported unhealthy (HTTP %d)", resp.StatusCode)
	}

	var health handlers.HealthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		return fmt.Errorf("failed to decode health response: %w", err)
	}
	return render(output.HealthTable(health.Data), health)
}
