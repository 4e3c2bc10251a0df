package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMXEnv(t *testing.T) {
	app := fiber.New()
	app.Post("/copy", func(c fiber.Ctx) error {
		if err := (htmxEnv{c}).CopyText("https://sho.rt/abc123"); err != nil {
			return err
		}
		return c.SendString("")
	})
	app.Post("/reset", func(c fiber.Ctx) error {
		htmxEnv{c}.ResetView()
		return c.SendString("")
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/copy", nil))
	require.NoError(t, err)

	var trigger map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(resp.Header.Get("HX-Trigger")), &trigger))
	assert.Equal(t, "https://sho.rt/abc123", trigger[CopyTextEvent]["text"])
	assert.Empty(t, resp.Header.Get("HX-Refresh"))

	resp, err = app.Test(httptest.NewRequest("POST", "/reset", nil))
	require.NoError(t, err)
	assert.Equal(t, "true", resp.Header.Get("HX-Refresh"))
}
