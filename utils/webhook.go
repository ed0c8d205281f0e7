// utils/webhook.go
package utils

import (
	"bytes"
	"encoding/json"
	"log"
)

// DiscordEmbed mirrors the subset of Discord's embed object we send.
type DiscordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
	Thumbnail   *DiscordEmbedImage  `json:"thumbnail,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type DiscordEmbedImage struct {
	URL string `json:"url"`
}

// SendDiscordWebhook posts embeds to a Discord webhook URL. Failures are
// logged and swallowed; announcements never block the caller's request.
func SendDiscordWebhook(url string, content string, embeds []DiscordEmbed) {
	if url == "" {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"content": content,
		"embeds":  embeds,
	})
	if err != nil {
		log.Printf("[WEBHOOK] marshal failed: %v", err)
		return
	}
	resp, err := HTTPClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Printf("[WEBHOOK] post failed: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Printf("[WEBHOOK] discord returned status %d", resp.StatusCode)
	}
}
