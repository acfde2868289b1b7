// Package auth rejects requests that do not carry the expected Basic credentials.
package auth

import (
	"crypto/subtle"

	"tag-reconciler/core/remote"

	"github.com/gofiber/fiber/v2"
)

// Config holds the accepted credentials. Both empty lets every request through.
type Config struct {
	ClientID     string
	ClientSecret string
}

// New returns the authorization middleware.
func New(cfg Config) fiber.Handler {
	if cfg.ClientID == "" && cfg.ClientSecret == "" {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	want := []byte(remote.BasicAuthorization(cfg.ClientID, cfg.ClientSecret))
	return func(c *fiber.Ctx) error {
		got := []byte(c.Get(fiber.HeaderAuthorization))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="device-management"`)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid client credentials"})
		}
		return c.Next()
	}
}
