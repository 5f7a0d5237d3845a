package repository

import (
	"context"
	"errors"

	"proposal-backend/internal/models"
)

// ErrNotFound is returned when a category or photo does not exist.
var ErrNotFound = errors.New("not found")

// Store is the metadata persistence boundary. Photos are append-only
// from the caller's perspective; concurrent uploads to one category
// are safe without any compare-and-swap.
type Store interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id string, upd models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	AddPhoto(ctx context.Context, photo *models.Photo) error
	GetPhoto(ctx context.Context, id string) (*models.Photo, error)
	DeletePhoto(ctx context.Context, id string) error

	GetSettings(ctx context.Context) (*models.GlobalSettings, error)
	UpdateSettings(ctx context.Context, upd models.UpdateSettingsRequest) (*models.GlobalSettings, error)
}
