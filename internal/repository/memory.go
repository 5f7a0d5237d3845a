package repository

import (
	"context"
	"sort"
	"sync"

	"proposal-backend/internal/models"
)

// Memory is an in-memory Store used by tests and as a stand-in when no
// database is configured.
type Memory struct {
	mu         sync.RWMutex
	categories map[string]models.Category
	photos     map[string]models.Photo
	settings   *models.GlobalSettings
}

func NewMemory() *Memory {
	return &Memory{
		categories: map[string]models.Category{},
		photos:     map[string]models.Photo{},
	}
}

func (m *Memory) CreateCategory(ctx context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = *category
	return nil
}

func (m *Memory) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	m.attach(&c)
	return &c, nil
}

func (m *Memory) ListCategories(ctx context.Context) ([]models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Category
	for _, c := range m.categories {
		c := c
		m.attach(&c)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) UpdateCategory(ctx context.Context, id string, upd models.UpdateCategoryRequest) (*models.Category, error) {
	m.mu.Lock()
	c, ok := m.categories[id]
	if !ok {
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Sentences != nil {
		c.Sentences = append([]string(nil), (*upd.Sentences)...)
	}
	m.categories[id] = c
	m.mu.Unlock()
	return m.GetCategory(ctx, id)
}

func (m *Memory) DeleteCategory(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return ErrNotFound
	}
	delete(m.categories, id)
	for pid, ph := range m.photos {
		if ph.CategoryID == id {
			delete(m.photos, pid)
		}
	}
	return nil
}

func (m *Memory) AddPhoto(ctx context.Context, photo *models.Photo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[photo.CategoryID]; !ok {
		return ErrNotFound
	}
	m.photos[photo.ID] = *photo
	return nil
}

func (m *Memory) GetPhoto(ctx context.Context, id string) (*models.Photo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ph, ok := m.photos[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &ph, nil
}

func (m *Memory) DeletePhoto(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.photos[id]; !ok {
		return ErrNotFound
	}
	delete(m.photos, id)
	return nil
}

func (m *Memory) GetSettings(ctx context.Context) (*models.GlobalSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.settings == nil {
		return &models.GlobalSettings{ID: models.SettingsID}, nil
	}
	s := *m.settings
	return &s, nil
}

func (m *Memory) UpdateSettings(ctx context.Context, upd models.UpdateSettingsRequest) (*models.GlobalSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		m.settings = &models.GlobalSettings{ID: models.SettingsID}
	}
	if upd.BeforeAcceptMusic != nil {
		m.settings.BeforeAcceptMusic = *upd.BeforeAcceptMusic
	}
	if upd.AfterAcceptMusic != nil {
		m.settings.AfterAcceptMusic = *upd.AfterAcceptMusic
	}
	s := *m.settings
	return &s, nil
}

// attach fills the per-side photo lists; callers hold at least the
// read lock.
func (m *Memory) attach(c *models.Category) {
	var photos []models.Photo
	for _, ph := range m.photos {
		if ph.CategoryID == c.ID {
			photos = append(photos, ph)
		}
	}
	sort.Slice(photos, func(i, j int) bool { return photos[i].UploadedAt.Before(photos[j].UploadedAt) })
	c.PhotosBefore, c.PhotosAfter = nil, nil
	for _, ph := range photos {
		if ph.Side == models.SideBefore {
			c.PhotosBefore = append(c.PhotosBefore, ph)
		} else {
			c.PhotosAfter = append(c.PhotosAfter, ph)
		}
	}
}
