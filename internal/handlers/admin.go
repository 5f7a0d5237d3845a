package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"proposal-backend/internal/models"
	"proposal-backend/internal/repository"
	"proposal-backend/internal/services"
	"proposal-backend/internal/upload"
)

// GetSettingsHandler returns the global music settings.
func GetSettingsHandler(settings *services.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := settings.Get(c.Context())
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(s)
	}
}

// UpdateSettingsHandler upserts the global music settings.
func UpdateSettingsHandler(settings *services.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateSettingsRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}

		s, err := settings.Update(c.Context(), req)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(s)
	}
}

// CreateCategoryHandler creates an empty category.
func CreateCategoryHandler(categories *services.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateCategoryRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}

		category, err := categories.Create(c.Context(), req)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(http.StatusCreated).JSON(category)
	}
}

// ListCategoriesHandler returns all categories with their photos.
func ListCategoriesHandler(categories *services.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := categories.List(c.Context())
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if list == nil {
			list = []models.Category{}
		}
		return c.JSON(list)
	}
}

// GetCategoryHandler returns one category by id.
func GetCategoryHandler(categories *services.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		category, err := categories.Get(c.Context(), c.Params("category_id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(category)
	}
}

// UpdateCategoryHandler updates name and/or sentences.
func UpdateCategoryHandler(categories *services.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateCategoryRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}

		category, err := categories.Update(c.Context(), c.Params("category_id"), req)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(category)
	}
}

// DeleteCategoryHandler deletes a category and, best-effort, its
// stored photos.
func DeleteCategoryHandler(categories *services.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := categories.Delete(c.Context(), c.Params("category_id")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Category deleted successfully"})
	}
}

// UploadPhotoHandler ingests a photo for one side of a category.
// Expects a multipart form file named "file".
func UploadPhotoHandler(photos *services.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		side := models.PhotoSide(c.Params("side"))
		if !side.Valid() {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": services.ErrInvalidSide.Error()})
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "photo file is required"})
		}

		f, err := fileHeader.Open()
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read file"})
		}
		defer f.Close()
		content, err := io.ReadAll(f)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read file"})
		}

		photo, err := photos.Ingest(c.Context(), c.Params("category_id"), side, models.UploadAttempt{
			Content:  content,
			Filename: fileHeader.Filename,
			MimeType: fileHeader.Header.Get("Content-Type"),
		})
		if err != nil {
			return serviceError(c, err)
		}

		return c.Status(http.StatusCreated).JSON(models.UploadResponse{
			Success: true,
			Photo:   photo,
			Message: "Photo uploaded successfully",
		})
	}
}

// DeletePhotoHandler removes one photo; the channel-side delete is
// best-effort and never blocks the metadata removal.
func DeletePhotoHandler(photos *services.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if side := c.Query("side"); side != "" && !models.PhotoSide(side).Valid() {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": services.ErrInvalidSide.Error()})
		}

		if err := photos.RemovePhoto(c.Context(), c.Params("photo_id")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Photo deleted successfully"})
	}
}

// serviceError maps a service failure onto an HTTP status with a
// specific, human-readable reason.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case upload.IsRejection(err),
		errors.Is(err, services.ErrInvalidSide),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrNoFields):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
