package services

import (
	"context"
	"errors"
	"math/rand"

	"proposal-backend/internal/models"
	"proposal-backend/internal/repository"
)

// ErrNoCompleteCategories signals an empty selection pool, distinct
// from a generic not-found: the public page shows "no content
// configured" rather than a transport error.
var ErrNoCompleteCategories = errors.New("no content configured")

// ProposalService picks what the public page renders.
type ProposalService struct {
	store repository.Store
}

func NewProposalService(store repository.Store) *ProposalService {
	return &ProposalService{store: store}
}

// PickRandom returns one uniformly random complete category together
// with the global music URLs. Incomplete categories never reach the
// public page.
func (s *ProposalService) PickRandom(ctx context.Context) (*models.ProposalResponse, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	var pool []models.Category
	for _, c := range categories {
		c := c
		if c.Complete() {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		return nil, ErrNoCompleteCategories
	}

	picked := pool[rand.Intn(len(pool))]

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	return &models.ProposalResponse{
		Category:    &picked,
		MusicBefore: settings.BeforeAcceptMusic,
		MusicAfter:  settings.AfterAcceptMusic,
	}, nil
}
