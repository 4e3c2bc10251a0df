package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"
)

// CopyTextEvent is the HX-Trigger event static/js/app.js turns into a
// clipboard write and a toast.
const CopyTextEvent = "copy-text"

// htmxEnv drives the browser through HTMX response headers.
type htmxEnv struct {
	c fiber.Ctx
}

func (e htmxEnv) CopyText(text string) error {
	payload, err := json.Marshal(map[string]map[string]string{
		CopyTextEvent: {"text": text},
	})
	if err != nil {
		return err
	}
	e.c.Set("HX-Trigger", string(payload))
	return nil
}

func (e htmxEnv) ResetView() {
	e.c.Set("HX-Refresh", "true")
}
