// cobblemon-community-api/services/persona_client.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"cobblemon-community-api/utils"
)

// PersonaClient talks to an OpenAI-compatible chat-completions endpoint
// (Groq in production) to turn questionnaire answers into starter picks.
type PersonaClient struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewPersonaClient() *PersonaClient {
	baseURL := os.Getenv("GROQ_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	model := os.Getenv("GROQ_MODEL")
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return &PersonaClient{
		BaseURL: baseURL,
		APIKey:  os.Getenv("GROQ_API_KEY"),
		Model:   model,
		Client:  utils.HTTPClient,
	}
}

// Complete sends a single-user-message completion and returns the raw text.
func (c *PersonaClient) Complete(prompt string) (string, error) {
	url := fmt.Sprintf("%s/chat/completions", c.BaseURL)

	reqBody := map[string]interface{}{
		"model":       c.Model,
		"messages":    []chatMessage{{Role: "user", Content: prompt}},
		"temperature": 0.8,
		"max_tokens":  150,
	}
	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Printf("[GACHA] completions returned %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("chat completion failed: %d", resp.StatusCode)
	}

	var out chatCompletionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}
