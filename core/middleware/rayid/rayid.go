// Package rayid tags every request with a Ray ID.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the Ray ID in requests and responses.
const Header = "X-Ray-ID"

// LocalsKey is where the Ray ID is stored in the Fiber context.
const LocalsKey = "ray_id"

// New returns the middleware. An incoming X-Ray-ID is kept, otherwise a new
// uuid is generated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}
