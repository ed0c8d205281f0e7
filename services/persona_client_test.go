package services

import (
	"testing"

	"cobblemon-community-api/utils"

	"github.com/stretchr/testify/assert"
)

func TestNewPersonaClientDefaults(t *testing.T) {
	t.Setenv("GROQ_BASE_URL", "")
	t.Setenv("GROQ_MODEL", "")

	c := NewPersonaClient()
	assert.Equal(t, "https://api.groq.com/openai/v1", c.BaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", c.Model)
	assert.Same(t, utils.HTTPClient, c.Client)
}
