package handlers

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProjectUpdate(t *testing.T) {
	t.Run("keeps title and scenes", func(t *testing.T) {
		req, err := parseProjectUpdate([]byte(`{"title":"X","scenes":[{"id":"a","dialogue":"hi"}],"extraField":1}`))
		require.NoError(t, err)
		require.NotNil(t, req.Title)
		assert.Equal(t, "X", *req.Title)
		require.Len(t, req.Scenes, 1)
		assert.Equal(t, "a", req.Scenes[0].ID)
		assert.Equal(t, "hi", req.Scenes[0].Dialogue)
	})

	t.Run("drops wrongly typed fields", func(t *testing.T) {
		req, err := parseProjectUpdate([]byte(`{"title":42,"scenes":{"id":"a"}}`))
		require.NoError(t, err)
		assert.Nil(t, req.Title)
		assert.Nil(t, req.Scenes)
		assert.True(t, req.Empty())
	})

	t.Run("null title is ignored", func(t *testing.T) {
		req, err := parseProjectUpdate([]byte(`{"title":null}`))
		require.NoError(t, err)
		assert.Nil(t, req.Title)
	})

	t.Run("empty scene list clears", func(t *testing.T) {
		req, err := parseProjectUpdate([]byte(`{"scenes": [ ]}`))
		require.NoError(t, err)
		require.NotNil(t, req.Scenes)
		assert.Empty(t, req.Scenes)
	})

	t.Run("rejects non-objects", func(t *testing.T) {
		for _, body := range []string{``, `not json`, `null`, `[1,2]`, `"title"`} {
			_, err := parseProjectUpdate([]byte(body))
			assert.Error(t, err, body)
		}
	})
}

func TestJSONKind(t *testing.T) {
	assert.Equal(t, byte('"'), jsonKind([]byte(` "x"`)))
	assert.Equal(t, byte('['), jsonKind([]byte("\n\t[]")))
	assert.Equal(t, byte(0), jsonKind([]byte("   ")))
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/client", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/server", func(c *fiber.Ctx) error {
		return errors.New("pq: relation \"projects\" does not exist")
	})
	app.Get("/unavailable", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "db pool exhausted")
	})

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/client", fiber.StatusTeapot, `{"error":true,"message":"short and stout"}`},
		{"/server", fiber.StatusInternalServerError, `{"error":true,"message":"Internal server error"}`},
		{"/unavailable", fiber.StatusServiceUnavailable, `{"error":true,"message":"Internal server error"}`},
		{"/missing", fiber.StatusNotFound, `{"error":true,"message":"Cannot GET /missing"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.JSONEq(t, tt.body, string(body))
		})
	}
}
