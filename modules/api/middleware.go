package api

import (
	"strings"

	"github.com/example/taskboard/domain/user"
	"github.com/example/taskboard/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// ActorContextKey is the key used to store actor claims in the Fiber context.
	ActorContextKey = "actor"
)

// AuthMiddleware creates a middleware that validates JWT tokens.
func AuthMiddleware(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Token is required",
			})
		}

		claims, err := authAdapter.ValidateToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired token",
			})
		}

		c.Locals(ActorContextKey, claims)

		return c.Next()
	}
}

// claimsFromContext returns the authenticated actor's claims.
func claimsFromContext(c *fiber.Ctx) *user.Claims {
	claims, ok := c.Locals(ActorContextKey).(*user.Claims)
	if !ok {
		return nil
	}
	return claims
}
