package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"proposal-backend/internal/services"
)

// RandomProposalHandler serves one random complete category with the
// global music settings.
func RandomProposalHandler(proposals *services.ProposalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := proposals.PickRandom(c.Context())
		if err != nil {
			if errors.Is(err, services.ErrNoCompleteCategories) {
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(res)
	}
}

// PublicSettingsHandler exposes the music URLs without auth.
func PublicSettingsHandler(settings *services.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := settings.Get(c.Context())
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(s)
	}
}
