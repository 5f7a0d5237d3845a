package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"proposal-backend/internal/models"
	"proposal-backend/internal/services"
)

// LoginHandler authenticates the admin and returns a bearer token.
func LoginHandler(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}

		res, err := auth.Login(req)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(res)
	}
}

// AuthRequired verifies the admin JWT before the request proceeds.
func AuthRequired(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ""
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			token = authHeader[7:]
		}
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing token")
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Locals("admin_email", sub)
		} else {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		return c.Next()
	}
}
