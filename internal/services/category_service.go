package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"proposal-backend/internal/models"
	"proposal-backend/internal/repository"
)

var (
	ErrNameRequired = errors.New("category name is required")
	ErrNoFields     = errors.New("no fields to update")
)

// CategoryService manages the admin-facing category CRUD.
type CategoryService struct {
	store repository.Store
	cdn   ObjectStore
}

func NewCategoryService(store repository.Store, cdn ObjectStore) *CategoryService {
	return &CategoryService{store: store, cdn: cdn}
}

func (s *CategoryService) Create(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	sentences := req.Sentences
	if sentences == nil {
		sentences = []string{}
	}

	category := &models.Category{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Sentences:    sentences,
		PhotosBefore: []models.Photo{},
		PhotosAfter:  []models.Photo{},
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	return s.store.GetCategory(ctx, id)
}

func (s *CategoryService) Update(ctx context.Context, id string, req models.UpdateCategoryRequest) (*models.Category, error) {
	if req.Name == nil && req.Sentences == nil {
		return nil, ErrNoFields
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, ErrNameRequired
	}
	return s.store.UpdateCategory(ctx, id, req)
}

// Delete removes the category and its metadata. Owned photos are
// cleaned out of the channel best-effort first; failures are logged
// and do not block the delete.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return err
	}

	for _, photo := range append(category.PhotosBefore, category.PhotosAfter...) {
		if err := s.cdn.Delete(ctx, photo.TelegramMessageID); err != nil {
			log.Printf("channel delete for photo %s failed during category delete, blob orphaned: %v",
				photo.ID, err)
		}
	}

	return s.store.DeleteCategory(ctx, id)
}
