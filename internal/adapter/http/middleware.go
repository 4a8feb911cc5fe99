package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// IdentityResolver validates a bearer credential with the auth provider.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

const identityKey = "identity"

// AuthRequired resolves the caller's identity from the Authorization
// header and stores it in request locals. Every pipeline route sits behind
// this; nothing downstream runs without an identity.
func AuthRequired(resolver IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		identity, err := resolver.Resolve(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

func identityFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(identityKey).(string)
	return id
}
