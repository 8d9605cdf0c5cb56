package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/furnistore/internal/config"
	"github.com/example/furnistore/internal/utils"
)

const (
	principalIDKey   = "principalID"
	principalRoleKey = "principalRole"
)

// AuthMiddleware validates JWT tokens and loads the principal id and role
// into the request context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		principalID, role, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(principalIDKey, principalID)
		c.Locals(principalRoleKey, role)
		return c.Next()
	}
}

// RequireRole allows only principals whose token carries one of the given roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := CurrentRole(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}
}

// CurrentPrincipalID extracts the authenticated principal id from context.
func CurrentPrincipalID(c *fiber.Ctx) (uuid.UUID, bool) {
	value := c.Locals(principalIDKey)
	if value == nil {
		return uuid.Nil, false
	}

	if id, ok := value.(uuid.UUID); ok {
		return id, true
	}

	return uuid.Nil, false
}

// CurrentRole extracts the authenticated principal role from context.
func CurrentRole(c *fiber.Ctx) (string, bool) {
	value := c.Locals(principalRoleKey)
	if value == nil {
		return "", false
	}

	if role, ok := value.(string); ok {
		return role, true
	}

	return "", false
}
