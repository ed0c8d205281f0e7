package services

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"cobblemon-community-api/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The roll endpoints act on the proxy-authenticated identity. A discordId in
// the request body must never override it.
func TestRollIdentityComesFromRequestContext(t *testing.T) {
	app := fiber.New()
	app.Post("/roll", middleware.UserContextMiddleware(), middleware.RequireDiscordID(), func(c *fiber.Ctx) error {
		id, name := requestIdentity(c)
		return c.JSON(fiber.Map{"id": id, "name": name})
	})

	body := strings.NewReader(`{"discordId":"spoofed","discordUsername":"Spoof"}`)
	req := httptest.NewRequest("POST", "/roll", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Discord-ID", "1234567890")
	req.Header.Set("X-Discord-Username", "ash")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "1234567890", got["id"])
	assert.Equal(t, "ash", got["name"])
}

func TestRollIdentityRejectedWithoutHeader(t *testing.T) {
	app := fiber.New()
	app.Post("/roll", middleware.UserContextMiddleware(), middleware.RequireDiscordID(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	req := httptest.NewRequest("POST", "/roll", strings.NewReader(`{"discordId":"spoofed"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
