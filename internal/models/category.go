package models

import (
	"strings"
	"time"
)

// Category is a themed bundle of sentences and photos shown during the
// proposal flow.
type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Sentences    []string  `json:"sentences"`
	PhotosBefore []Photo   `json:"photos_before"`
	PhotosAfter  []Photo   `json:"photos_after"`
	CreatedAt    time.Time `json:"created_at"`
}

// Complete reports whether the category is eligible for public
// serving: at least one non-blank sentence and one before-photo.
func (c *Category) Complete() bool {
	if len(c.PhotosBefore) == 0 {
		return false
	}
	for _, s := range c.Sentences {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}

// CreateCategoryRequest is the admin payload for creating a category.
type CreateCategoryRequest struct {
	Name      string   `json:"name"`
	Sentences []string `json:"sentences"`
}

// UpdateCategoryRequest updates only the provided fields.
type UpdateCategoryRequest struct {
	Name      *string   `json:"name"`
	Sentences *[]string `json:"sentences"`
}

// ProposalResponse is the public random-proposal payload: one complete
// category plus the global music URLs.
type ProposalResponse struct {
	Category    *Category `json:"category"`
	MusicBefore string    `json:"music_before,omitempty"`
	MusicAfter  string    `json:"music_after,omitempty"`
}
