// workers/server_status_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"cobblemon-community-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ServerStatusClient polls the Minecraft status API and mirrors the result
// into the server_statuses singleton row.
type ServerStatusClient struct {
	StatusURL  string
	HTTPClient *http.Client
	DB         *gorm.DB
}

func NewServerStatusClient(db *gorm.DB) *ServerStatusClient {
	statusURL := os.Getenv("MC_STATUS_URL")
	if statusURL == "" {
		host := os.Getenv("MC_SERVER_HOST")
		if host == "" {
			host = "localhost"
		}
		statusURL = fmt.Sprintf("https://api.mcsrvstat.us/2/%s", host)
	}

	return &ServerStatusClient{
		StatusURL: statusURL,
		DB:        db,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type statusResponse struct {
	Online  bool `json:"online"`
	Players struct {
		Online int `json:"online"`
		Max    int `json:"max"`
	} `json:"players"`
	MOTD struct {
		Clean []string `json:"clean"`
	} `json:"motd"`
	Version string `json:"version"`
}

func (c *ServerStatusClient) fetchStatus(ctx context.Context) (*statusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.StatusURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create status request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call status API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("status API returned %d: %s", resp.StatusCode, string(body))
	}

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode status response: %w", err)
	}

	return &status, nil
}

// PollServerStatus runs until ctx is cancelled, upserting the singleton row
// each tick. A failed poll is recorded as offline so the website never shows
// a stale "online".
func PollServerStatus(ctx context.Context, client *ServerStatusClient, pollInterval time.Duration) {
	log.Println("[STATUS] Starting Minecraft status polling...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[STATUS] Status polling stopped.")
			return
		case <-ticker.C:
			now := time.Now()
			row := models.ServerStatus{
				ID:        models.ServerStatusID,
				CheckedAt: now,
			}

			status, err := client.fetchStatus(ctx)
			if err != nil {
				log.Printf("[STATUS] Poll failed: %v", err)
			} else {
				row.Online = status.Online
				row.PlayerCount = status.Players.Online
				row.MaxPlayers = status.Players.Max
				row.MOTD = strings.Join(status.MOTD.Clean, "\n")
				row.Version = status.Version
			}

			err = client.DB.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"online",
					"player_count",
					"max_players",
					"motd",
					"version",
					"checked_at",
					"updated_at",
				}),
			}).Create(&row).Error
			if err != nil {
				log.Printf("[STATUS] Failed to persist server status: %v", err)
			}
		}
	}
}
