package middleware

import (
	"strings"

	"biblioteca-api/internal/config"
	"biblioteca-api/internal/pkg/jwt"
	"biblioteca-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the bearer credential and attaches the
// identified user to the request context. The Authorization header
// may carry either a bare token or a "Bearer "-prefixed one.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "token not provided",
				"you must be logged in to access this resource")
		}

		token := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}

		claims, err := jwt.ValidateToken(token, cfg.JWT.Secret)
		if err != nil {
			return response.Unauthorized(c, "invalid token",
				"your token is expired or invalid, please log in again")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)

		return c.Next()
	}
}
