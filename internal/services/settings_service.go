package services

import (
	"context"

	"proposal-backend/internal/models"
	"proposal-backend/internal/repository"
)

// SettingsService manages the singleton global music settings.
type SettingsService struct {
	store repository.Store
}

func NewSettingsService(store repository.Store) *SettingsService {
	return &SettingsService{store: store}
}

// Get returns the settings, defaulted if none were written yet.
func (s *SettingsService) Get(ctx context.Context) (*models.GlobalSettings, error) {
	return s.store.GetSettings(ctx)
}

// Update upserts the provided fields only.
func (s *SettingsService) Update(ctx context.Context, req models.UpdateSettingsRequest) (*models.GlobalSettings, error) {
	if req.BeforeAcceptMusic == nil && req.AfterAcceptMusic == nil {
		return nil, ErrNoFields
	}
	return s.store.UpdateSettings(ctx, req)
}
