// Package middleware holds fiber middleware shared by the HTTP handlers.
package middleware

import (
	"errors"
	"log/slog"

	"github.com/amirasaad/finhub/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// RoleClaim is the token claim compared with the configured admin role.
const RoleClaim = "role"

// Protected guards administrative routes with an HS256 bearer token whose
// role claim equals cfg.AdminRole. Without a secret the routes stay open.
func Protected(cfg *config.Jwt) fiber.Handler {
	if cfg == nil || cfg.Secret == "" {
		slog.Warn("AUTH_JWT_SECRET is not set; administrative routes are unprotected")
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	role := cfg.AdminRole
	if role == "" {
		role = "admin"
	}
	return jwtware.New(jwtware.Config{
		SigningKey:     jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Secret)},
		ErrorHandler:   jwtError,
		SuccessHandler: requireRole(role),
	})
}

func requireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return problem(c, fiber.StatusUnauthorized, "Unauthorized", "missing token")
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims[RoleClaim] != role {
			return problem(c, fiber.StatusForbidden, "Forbidden", "admin role required")
		}
		return c.Next()
	}
}

func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) || err.Error() == "Missing or malformed JWT" {
		return problem(c, fiber.StatusBadRequest, "Bad Request", "Missing or malformed JWT")
	}
	return problem(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid or expired JWT")
}

func problem(c *fiber.Ctx, status int, title, detail string) error {
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(fiber.Map{
		"type":     "about:blank",
		"title":    title,
		"status":   status,
		"detail":   detail,
		"instance": c.OriginalURL(),
	})
}
