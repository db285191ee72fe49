package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"syndicapp_backend/internals/configs"
)

// RequestContext tags every request with an id, logs it on completion and
// binds a deadline to the user context handed to the DB layer.
func RequestContext(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)

		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()

		configs.Log.WithFields(map[string]interface{}{
			"reqid":  id,
			"method": c.Method(),
			"path":   c.OriginalURL(),
			"status": c.Response().StatusCode(),
			"dur":    time.Since(start).String(),
		}).Info("requête traitée")
		return err
	}
}
