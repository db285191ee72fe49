package middlewares

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestContext_BindsDeadlineToUserContext(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContext(5 * time.Second))

	var (
		sawDeadline bool
		deadline    time.Time
		reqid       string
	)
	app.Get("/x", func(c *fiber.Ctx) error {
		deadline, sawDeadline = c.UserContext().Deadline()
		reqid, _ = c.Locals("reqid").(string)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.True(t, sawDeadline, "le contexte utilisateur doit porter une échéance")
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, 2*time.Second)
	assert.NotEmpty(t, reqid)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRequestContext_KeepsCallerRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContext(time.Second))
	app.Get("/x", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}
