package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/ping", func(c *fiber.Ctx) error {
		rid, _ := c.Locals(RequestIDLocalKey).(string)
		return c.SendString(rid)
	})

	t.Run("generates an id when missing", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
		require.NoError(t, err)

		header := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, header)

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, header, string(body), "locals and response header must agree")
	})

	t.Run("keeps an incoming id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set(RequestIDHeader, "upstream-id-42")

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, "upstream-id-42", resp.Header.Get(RequestIDHeader))
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "upstream-id-42", string(body))
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer

	app := fiber.New()
	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, time.UTC))
	app.Get("/api/documentos/:cpf", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/documentos/12345678900", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.NotEmpty(t, entry["ts"])
	assert.NotEmpty(t, entry["request_id"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/documentos/12345678900", entry["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), entry["status"])
	assert.NotNil(t, entry["latency"])
}
