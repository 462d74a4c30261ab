package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func send(t *testing.T, h fiber.Handler) (int, map[string]any) {
	t.Helper()

	app := fiber.New()
	app.Get("/", h)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestBareBodies(t *testing.T) {
	code, out := send(t, func(c *fiber.Ctx) error { return Created(c, fiber.Map{"id": "x"}) })
	assert.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, map[string]any{"id": "x"}, out)
}

func TestErrorEnvelope(t *testing.T) {
	code, out := send(t, func(c *fiber.Ctx) error {
		return ValidationFailed(c, "missing required fields: date", []string{"date"})
	})
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "missing required fields: date", out["message"])
	assert.Equal(t, []any{"date"}, out["fields"])

	code, out = send(t, func(c *fiber.Ctx) error { return NotFound(c, "client not found") })
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.NotContains(t, out, "fields")
	assert.NotContains(t, out, "data")
}
